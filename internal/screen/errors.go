package screen

import "fmt"

// CaptureError represents a failure to take a screenshot.
type CaptureError struct {
	Tool    string
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error (%s): %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error (%s): %s", e.Tool, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// OCRError represents a failure to run or parse text recognition.
type OCRError struct {
	Message string
	Cause   error
}

func (e *OCRError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ocr error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ocr error: %s", e.Message)
}

func (e *OCRError) Unwrap() error {
	return e.Cause
}

// InjectError represents a failure to deliver synthetic input to one
// on-screen field.
type InjectError struct {
	Locator string
	Message string
	Cause   error
}

func (e *InjectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inject error at %s: %s: %v", e.Locator, e.Message, e.Cause)
	}
	return fmt.Sprintf("inject error at %s: %s", e.Locator, e.Message)
}

func (e *InjectError) Unwrap() error {
	return e.Cause
}
