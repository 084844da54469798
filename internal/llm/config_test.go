package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}
	assert.Equal(t, "fallback-model", config.GetModel(TierAdvanced))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", next.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", next.GetModel(TierLite))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"RESUME_REVIEWER_MODEL_ADVANCED": "gemini-exp",
		"RESUME_REVIEWER_MODEL_LITE":     "  ",
	}
	config := FromEnv(func(key string) string { return env[key] })

	assert.Equal(t, "gemini-exp", config.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}

func TestAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")

	assert.Equal(t, "from-flag", APIKey("from-flag"))
	assert.Equal(t, "from-env", APIKey(""))
}
