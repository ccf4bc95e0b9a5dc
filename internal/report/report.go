// Package report assembles the HTML payload sent to the rendering
// service and handles the local copy of the returned document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fixed delivery constants. The artifact always travels under the same
// filename, whether saved locally or attached to an email.
const (
	ArtifactFilename = "aegis_report.pdf"
	DeliverySubject  = "Your Aegis conversation report"
	DeliveryBody     = "Attached is the report generated from your Aegis session."
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { color: #333; }
pre { white-space: pre-wrap; background: #f5f5f5; padding: 1em; }
</style>
</head>
<body>
<h1>%s</h1>
<p>Generated: %s</p>
<pre>%s</pre>
</body>
</html>
`

// anglesReplacer escapes the two characters that would break the
// surrounding markup. Nothing else in the transcript is altered.
var anglesReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeAngles replaces < and > with their named entities.
func EscapeAngles(s string) string {
	return anglesReplacer.Replace(s)
}

// Compose wraps the flattened transcript in the fixed report template.
// Only the transcript body segment is escaped; title and timestamp are
// trusted values supplied by the client itself.
func Compose(title string, generatedAt time.Time, transcript string) string {
	return fmt.Sprintf(htmlShell,
		title,
		title,
		generatedAt.Format("2006-01-02 15:04:05"),
		EscapeAngles(transcript),
	)
}

// Save writes the rendered document into dir under the fixed artifact
// filename and returns the path written.
func Save(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ArtifactFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}
