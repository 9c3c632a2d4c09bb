// Package ingestion reads the applicant's own résumé and pulls contact
// details out of it, so the setup wizard can offer prefilled answers
// instead of an empty prompt for every field.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxResumeBytes bounds how much of a text résumé is read. Anything
// larger is not a résumé.
const maxResumeBytes = 2 << 20

// ReadResume extracts plain text from a résumé file. PDF is handled via
// its text layer; everything else is treated as UTF-8 text.
func ReadResume(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &ReadError{Path: path, Message: "file not accessible", Cause: err}
	}
	if info.IsDir() {
		return "", &ReadError{Path: path, Message: "is a directory"}
	}
	if info.Size() > maxResumeBytes {
		return "", &ReadError{Path: path, Message: fmt.Sprintf("file too large (%d bytes)", info.Size())}
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Message: "read failed", Cause: err}
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", &ReadError{Path: path, Message: "PDF has no extractable text layer", Cause: err}
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", &ReadError{Path: path, Message: "failed to extract PDF text", Cause: err}
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", &ReadError{Path: path, Message: "PDF contains no text (scanned image?)"}
	}
	return text, nil
}
