// Package detect - platform.go provides ATS platform detection and
// platform-specific form-container selectors.
package detect

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant-tracking-system platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the ATS platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	// Greenhouse patterns
	if strings.Contains(host, "greenhouse.io") ||
		strings.Contains(host, "boards.greenhouse.io") {
		return PlatformGreenhouse
	}

	// Lever patterns
	if strings.Contains(host, "lever.co") ||
		strings.Contains(host, "jobs.lever.co") {
		return PlatformLever
	}

	// Workday patterns
	if strings.Contains(host, "workday.com") ||
		strings.Contains(host, "myworkdayjobs.com") {
		return PlatformWorkday
	}

	return PlatformUnknown
}

// PlatformFormSelectors returns the selectors that locate the
// application form container on a specific platform. Searching inside
// the container keeps site chrome (search boxes, newsletter signups)
// out of the detected fields.
func PlatformFormSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			"#application-form",
			"#application_form",
			".application--container",
			".application-form",
		}
	case PlatformLever:
		return []string{
			".lever-application-form",
			".application-form",
			".postings-apply",
			".posting-apply",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='applicationForm']",
			"[data-automation-id='jobApplication']",
			".application-section",
		}
	default:
		return nil
	}
}
