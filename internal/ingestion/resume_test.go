package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadResume_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleResume), 0o600))

	text, err := ReadResume(path)
	require.NoError(t, err)
	assert.Contains(t, text, "jane.doe@example.com")
}

func TestReadResume_Missing(t *testing.T) {
	_, err := ReadResume(filepath.Join(t.TempDir(), "absent.txt"))

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, readErr.Error(), "not accessible")
}

func TestReadResume_Directory(t *testing.T) {
	_, err := ReadResume(t.TempDir())

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
}

func TestReadResume_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, maxResumeBytes+1), 0o600))

	_, err := ReadResume(path)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, readErr.Error(), "too large")
}

func TestReadResume_BrokenPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

	_, err := ReadResume(path)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
}
