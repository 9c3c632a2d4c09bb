package screen

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// OCRTimeout bounds one tesseract invocation.
const OCRTimeout = 60 * time.Second

// Word is one OCR-recognized token with its screen position and the
// engine's 0-100 confidence.
type Word struct {
	Text   string
	X      int
	Y      int
	Width  int
	Height int
	Conf   float64
	// Block, Par and Line are tesseract's layout grouping; words
	// sharing all three sit on one visual line.
	Block int
	Par   int
	Line  int
}

// minWordConf drops recognition noise. The original used the same bar
// for its upload-keyword scan.
const minWordConf = 30

// CheckOCR verifies tesseract is installed. Called before capture so the
// operator hears about a missing binary before the screen flashes.
func CheckOCR() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return &OCRError{
			Message: "tesseract not found in PATH. Install tesseract-ocr to use screen mode",
			Cause:   err,
		}
	}
	return nil
}

// Recognize runs tesseract over a screenshot and returns positioned
// words above the confidence floor, in reading order.
func Recognize(ctx context.Context, imagePath string) ([]Word, error) {
	if err := CheckOCR(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, OCRTimeout)
	defer cancel()

	// TSV output carries the geometry the layout analysis needs; psm 11
	// reads sparse text, which is what a form screenshot is.
	cmd := exec.CommandContext(ctx, "tesseract", imagePath, "stdout", "--psm", "11", "tsv")
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &OCRError{
			Message: "tesseract failed: " + strings.TrimSpace(stderr.String()),
			Cause:   err,
		}
	}

	words := ParseTSV(stdout.String())
	if len(words) == 0 {
		return nil, &OCRError{Message: "no text recognized on screen"}
	}
	return words, nil
}

// ParseTSV decodes tesseract's TSV format: one row per detected item,
// word rows at level 5. Malformed rows are skipped, not fatal; OCR
// output is best-effort by nature.
func ParseTSV(tsv string) []Word {
	var words []Word

	lines := strings.Split(tsv, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}

		level, err := strconv.Atoi(cols[0])
		if err != nil || level != 5 {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < minWordConf {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}

		block, _ := strconv.Atoi(cols[2])
		par, _ := strconv.Atoi(cols[3])
		lineNum, _ := strconv.Atoi(cols[4])
		x, _ := strconv.Atoi(cols[6])
		y, _ := strconv.Atoi(cols[7])
		w, _ := strconv.Atoi(cols[8])
		h, _ := strconv.Atoi(cols[9])

		words = append(words, Word{
			Text:  text,
			X:     x,
			Y:     y,
			Width: w, Height: h,
			Conf:  conf,
			Block: block,
			Par:   par,
			Line:  lineNum,
		})
	}
	return words
}
