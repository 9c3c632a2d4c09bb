package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/application-autofill/internal/llm"
)

// ContactProfile holds whatever contact and education details could be
// pulled from résumé text. Every field is optional; the wizard shows
// each found value as a default and the applicant confirms or retypes.
type ContactProfile struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Website        string `json:"website,omitempty"`
	University     string `json:"university,omitempty"`
	Degree         string `json:"degree,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?(\(?\d{3}\)?[\s.\-]?)\d{3}[\s.\-]?\d{4}`)
	linkedinRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_\-]+/?`)
	urlRe      = regexp.MustCompile(`https?://[^\s|,;)]+`)
	// nameLineRe matches a line of two to four capitalized words, the
	// shape of a name heading at the top of a résumé.
	nameLineRe = regexp.MustCompile(`^([A-Z][a-zA-Z'.\-]+)(\s+[A-Z][a-zA-Z'.\-]+){1,3}$`)
)

// ExtractContacts scans résumé text with pattern matching alone. It is
// the always-available path; ExtractContactsWithLLM refines it when an
// API key is configured.
func ExtractContacts(text string) ContactProfile {
	var p ContactProfile

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		p.Phone = strings.TrimSpace(m)
	}
	if m := linkedinRe.FindString(text); m != "" {
		p.LinkedIn = m
	}

	// First non-LinkedIn URL is taken as the personal site.
	for _, u := range urlRe.FindAllString(text, 5) {
		if !strings.Contains(strings.ToLower(u), "linkedin.com") {
			p.Website = u
			break
		}
	}

	// Name heuristic: the first short all-capitalized-words line near
	// the top, skipping lines that carry contact details.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 10 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		if nameLineRe.MatchString(line) {
			words := strings.Fields(line)
			p.FirstName = words[0]
			p.LastName = words[len(words)-1]
			break
		}
	}

	return p
}

// ExtractContactsWithLLM asks the model for the contact profile,
// including the education fields pattern matching cannot reach. The
// caller falls back to ExtractContacts on any error.
func ExtractContactsWithLLM(ctx context.Context, text string, apiKey string) (*ContactProfile, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for LLM extraction")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return extractContacts(ctx, client, text)
}

func extractContacts(ctx context.Context, client llm.Client, text string) (*ContactProfile, error) {
	schema := llm.ContactProfileSchema()
	prompt := llm.BuildExtractionPrompt(schema, text)

	// Extraction needs to copy values verbatim from messy layouts, a
	// notch above what the lite tier does reliably.
	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var profile ContactProfile
	if err := json.Unmarshal([]byte(jsonResp), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w (content: %s)", err, jsonResp)
	}
	return &profile, nil
}
