// Package llm wraps the Gemini API behind a small client interface so
// the matcher and the résumé extractor can be tested against stubs.
// Field classification runs on the lite tier; heavier tiers exist for
// tasks like extracting a contact profile from résumé text.
package llm

// ModelTier names a capability level rather than a model, so callers
// say what the task needs and the config decides which model serves it.
type ModelTier string

const (
	// TierLite handles single-field classification.
	TierLite ModelTier = "lite"
	// TierStandard handles structured extraction from documents.
	TierStandard ModelTier = "standard"
	// TierAdvanced is unused by default but configurable.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock tier assignments.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back to standard
// and then lite so a sparse config still answers every tier.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier reassigned.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
