package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestAskQuestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/query/" {
			t.Errorf("path = %s, want /query/", r.URL.Path)
		}

		var body struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body.Question != "What is the capital of Italy?" {
			t.Errorf("question = %q", body.Question)
		}

		json.NewEncoder(w).Encode(map[string]string{"answer": "Rome"})
	})

	answer, err := client.AskQuestion(context.Background(), "What is the capital of Italy?")
	if err != nil {
		t.Fatalf("AskQuestion failed: %v", err)
	}
	if answer != "Rome" {
		t.Errorf("answer = %q, want %q", answer, "Rome")
	}
}

func TestAskQuestionServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"detail": "Il sistema non è pronto. Carica prima un documento.",
		})
	})

	_, err := client.AskQuestion(context.Background(), "anything")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", svcErr.StatusCode)
	}
	if !strings.Contains(svcErr.Error(), "non è pronto") {
		t.Errorf("error message = %q, want the service detail", svcErr.Error())
	}
}

func TestServiceErrorWithoutDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.AskQuestion(context.Background(), "anything")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if got := svcErr.Error(); got != "backend returned status 502" {
		t.Errorf("error message = %q", got)
	}
}

func TestAskQuestionTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := New(srv.URL, time.Second)

	_, err := client.AskQuestion(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		t.Errorf("transport failure misclassified as service error: %v", err)
	}
}

func TestUploadDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload-document/" {
			t.Errorf("path = %s, want /upload-document/", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()

		if header.Filename != "contract.pdf" {
			t.Errorf("filename = %q, want contract.pdf", header.Filename)
		}
		content, _ := io.ReadAll(f)
		if string(content) != "%PDF-fake" {
			t.Errorf("file content = %q", content)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"filename": header.Filename,
			"message":  "Knowledge base updated.",
		})
	})

	result, err := client.UploadDocument(context.Background(), "contract.pdf", strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if result.Filename != "contract.pdf" {
		t.Errorf("filename = %q", result.Filename)
	}
	if result.Message != "Knowledge base updated." {
		t.Errorf("message = %q", result.Message)
	}
}

func TestRenderReportReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.7 rendered")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-pdf/" {
			t.Errorf("path = %s, want /generate-pdf/", r.URL.Path)
		}

		var body struct {
			HTMLContent string `json:"html_content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if !strings.Contains(body.HTMLContent, "<h1>") {
			t.Errorf("html_content = %q, want the composed template", body.HTMLContent)
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	})

	data, err := client.RenderReport(context.Background(), "<html><h1>Report</h1></html>")
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if string(data) != string(pdf) {
		t.Errorf("rendered bytes = %q, want %q", data, pdf)
	}
}

func TestSendReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send-email/" {
			t.Errorf("path = %s, want /send-email/", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		for field, want := range map[string]string{
			"recipient": "someone@example.com",
			"subject":   "Your report",
			"body":      "See attachment.",
		} {
			if got := r.FormValue(field); got != want {
				t.Errorf("%s = %q, want %q", field, got, want)
			}
		}

		f, header, err := r.FormFile("pdf_file")
		if err != nil {
			t.Fatalf("missing pdf_file part: %v", err)
		}
		defer f.Close()
		if header.Filename != "aegis_report.pdf" {
			t.Errorf("attachment filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(f)
		if string(content) != "%PDF-fake" {
			t.Errorf("attachment content = %q", content)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"message": "Email inviata a someone@example.com",
		})
	})

	message, err := client.SendReport(
		context.Background(),
		"someone@example.com", "Your report", "See attachment.",
		"aegis_report.pdf", []byte("%PDF-fake"),
	)
	if err != nil {
		t.Fatalf("SendReport failed: %v", err)
	}
	if !strings.Contains(message, "someone@example.com") {
		t.Errorf("message = %q", message)
	}
}
