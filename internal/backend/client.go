// Package backend provides the HTTP client for the Aegis backend service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ServiceError is returned when the backend answers with a non-success
// status. Detail carries the structured error the service included in
// its response body, if any.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// UploadResult is the backend's confirmation for an ingested document.
type UploadResult struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// Client communicates with the Aegis backend over HTTP.
// All calls share one transport; the timeout applies per request.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// UploadDocument submits a document for ingestion as a multipart upload.
// On success it returns the service's confirmation.
func (c *Client) UploadDocument(ctx context.Context, name string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("backend: building upload payload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("backend: reading document: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("backend: finalizing upload payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-document/", &buf)
	if err != nil {
		return nil, fmt.Errorf("backend: creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: uploading document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serviceError(resp)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("backend: decoding upload response: %w", err)
	}
	return &result, nil
}

// AskQuestion submits a question and returns the assistant's answer.
func (c *Client) AskQuestion(ctx context.Context, question string) (string, error) {
	resp, err := c.postJSON(ctx, "/query/", map[string]string{"question": question})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", serviceError(resp)
	}

	var result struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("backend: decoding answer: %w", err)
	}
	return result.Answer, nil
}

// RenderReport asks the backend to render the given HTML into a PDF and
// returns the raw document bytes. The artifact is opaque to the client.
func (c *Client) RenderReport(ctx context.Context, htmlContent string) ([]byte, error) {
	resp, err := c.postJSON(ctx, "/generate-pdf/", map[string]string{"html_content": htmlContent})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serviceError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: reading rendered report: %w", err)
	}
	return data, nil
}

// SendReport asks the backend to email the rendered report to recipient.
// The attachment is sent as a multipart file part under the given filename.
func (c *Client) SendReport(ctx context.Context, recipient, subject, body, filename string, pdf []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"recipient": recipient,
		"subject":   subject,
		"body":      body,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("backend: building email payload: %w", err)
		}
	}

	part, err := w.CreateFormFile("pdf_file", filename)
	if err != nil {
		return "", fmt.Errorf("backend: building email payload: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return "", fmt.Errorf("backend: attaching report: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("backend: finalizing email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-email/", &buf)
	if err != nil {
		return "", fmt.Errorf("backend: creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend: sending email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", serviceError(resp)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("backend: decoding email response: %w", err)
	}
	return result.Message, nil
}

// postJSON issues a POST with a JSON body to the given backend path.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("backend: marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("backend: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: sending request: %w", err)
	}
	return resp, nil
}

// serviceError builds a *ServiceError from a non-success response,
// extracting the service-supplied detail when the body carries one.
func serviceError(resp *http.Response) error {
	svcErr := &ServiceError{StatusCode: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		svcErr.Detail = body.Detail
	}
	return svcErr
}
