// Package llm provides the LLM client abstraction used for question phrasing and profile extraction,
// a Gemini implementation, and a guard that rate-limits and circuit-breaks calls.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short generations such as rewording a question
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction of résumés and job descriptions
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for long-form reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature for free-text generation. JSON generation always runs at JSONTemperature.
	Temperature float32
}

// JSONTemperature keeps structured output stable
const JSONTemperature float32 = 0.1

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.4,
	}
}

// GetModel returns the model name for a tier, falling back to standard and then lite
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithSingleModel returns a copy of c that uses model for every tier.
// This is how an explicit GEMINI_MODEL setting is applied.
func (c *Config) WithSingleModel(model string) *Config {
	out := c.clone()
	if model == "" {
		return out
	}
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		out.Models[tier] = model
	}
	return out
}

func (c *Config) clone() *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return out
}
