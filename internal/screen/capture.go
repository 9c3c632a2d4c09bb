// Package screen fills forms that exist only as pixels: a desktop
// application, a form inside a remote session, a browser the tool is
// not driving. The pipeline is screenshot → OCR → layout heuristics →
// the same matching engine the web path uses → synthetic input. It
// leans on external binaries (a screenshot tool, tesseract, xdotool)
// rather than bindings; all three are probed before anything runs.
package screen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// CaptureTimeout bounds one screenshot invocation.
const CaptureTimeout = 15 * time.Second

// captureTools lists the supported screenshot programs in preference
// order with the arguments that make them write a PNG to a path
// non-interactively.
var captureTools = []struct {
	name string
	args func(outPath string) []string
}{
	{"gnome-screenshot", func(out string) []string { return []string{"-f", out} }},
	{"scrot", func(out string) []string { return []string{"-o", out} }},
	{"screencapture", func(out string) []string { return []string{"-x", out} }},
	{"import", func(out string) []string { return []string{"-window", "root", out} }},
}

// FindCaptureTool returns the first available screenshot program.
func FindCaptureTool() (string, error) {
	for _, tool := range captureTools {
		if _, err := exec.LookPath(tool.name); err == nil {
			return tool.name, nil
		}
	}
	return "", &CaptureError{
		Tool:    "(none)",
		Message: "no screenshot tool found in PATH (tried gnome-screenshot, scrot, screencapture, import)",
	}
}

// Capture takes a full-screen screenshot and returns the PNG path. The
// file lands in a fresh temp directory; callers own cleanup.
func Capture(ctx context.Context) (string, error) {
	toolName, err := FindCaptureTool()
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "autofill-screen-*")
	if err != nil {
		return "", &CaptureError{Tool: toolName, Message: "failed to create temp directory", Cause: err}
	}
	outPath := filepath.Join(dir, "screen.png")

	var args []string
	for _, tool := range captureTools {
		if tool.name == toolName {
			args = tool.args(outPath)
			break
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CaptureTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, toolName, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", &CaptureError{
			Tool:    toolName,
			Message: fmt.Sprintf("screenshot failed: %s", string(output)),
			Cause:   err,
		}
	}

	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return "", &CaptureError{Tool: toolName, Message: "screenshot produced no image"}
	}
	return outPath, nil
}
