// Package llm wraps the model provider behind a small Client interface and
// maps agent workloads onto model tiers.
package llm

import (
	"os"
	"strings"
)

// ModelTier represents the capability level an agent call needs.
type ModelTier string

const (
	// TierLite is for cheap text conversion such as profile import.
	TierLite ModelTier = "lite"
	// TierStandard is for scoring and structured review output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for resume generation.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one implemented.
const ProviderGemini Provider = "gemini"

// Environment variables read by FromEnv and APIKey.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvModelPrefix = "RESUME_REVIEWER_MODEL_"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.2,
	}
}

// FromEnv returns DefaultConfig with per-tier model overrides taken from
// RESUME_REVIEWER_MODEL_LITE, _STANDARD and _ADVANCED.
func FromEnv(getenv func(string) string) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		if model := strings.TrimSpace(getenv(EnvModelPrefix + strings.ToUpper(string(tier)))); model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}

// APIKey returns flagValue when set, otherwise GEMINI_API_KEY.
func APIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvAPIKey)
}

// GetModel returns the model name for a tier, falling back to the standard
// and then the lite model.
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

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
