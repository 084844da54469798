package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllAgentPrompts(t *testing.T) {
	ClearCache()

	tests := []struct {
		file string
		key  string
		want []string
	}{
		{ReviewFile, GeneralReview, []string{"{{.Resume}}", "overallScore"}},
		{ReviewFile, JobFitReview, []string{"{{.Resume}}", "{{.Company}}", "{{.Job}}", "fitRating"}},
		{BuilderFile, BuildResume, []string{"{{.Profile}}", "{{.Company}}", "{{.Job}}", "emphasizedSkills"}},
		{ProfileFile, ProfileFromText, []string{"{{.Text}}", "# <Full Name>"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, prompt, s)
			}
		})
	}
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(ReviewFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(BuilderFile, BuildResume))
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	result := Format(template, map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_MissingValueKeepsPlaceholder(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
	assert.Equal(t, "No placeholders", Format("No placeholders", map[string]string{"Key": "v"}))
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{
		"A": "{{.B}}",
		"B": "b",
	})
	assert.Equal(t, "{{.B}} b", result)
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(ReviewFile)
	require.NoError(t, err)
	assert.Equal(t, []string{GeneralReview, JobFitReview}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get(ProfileFile, ProfileFromText)
	require.NoError(t, err)

	cacheMu.RLock()
	_, cached := cache[ProfileFile]
	cacheMu.RUnlock()
	assert.True(t, cached)

	second, err := Get(ProfileFile, ProfileFromText)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
