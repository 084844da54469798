package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{Review, JobFitReview, BuildResult} {
		t.Run(name, func(t *testing.T) {
			schema, err := Get(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(schema), &v))
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nonexistent")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateAgainst_Review(t *testing.T) {
	valid := `{
		"overallScore": 72,
		"summary": "Decent",
		"strengths": ["Concise"],
		"improvements": ["Quantify"],
		"categories": [{"name": "Impact", "score": 60, "feedback": "Vague"}]
	}`
	assert.NoError(t, ValidateAgainst(Review, valid))

	missing := `{"overallScore": 72, "summary": "Decent"}`
	err := ValidateAgainst(Review, missing)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateAgainst_ScoreOutOfRange(t *testing.T) {
	doc := `{
		"overallScore": 140,
		"summary": "x",
		"strengths": [],
		"improvements": [],
		"categories": []
	}`
	err := ValidateAgainst(Review, doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "overallScore", validationErr.Errors[0].Field)
}

func TestValidateAgainst_JobFitReviewRating(t *testing.T) {
	doc := `{
		"overallScore": 80,
		"summary": "x",
		"strengths": [],
		"improvements": [],
		"categories": [],
		"fitRating": "perfect"
	}`
	err := ValidateAgainst(JobFitReview, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fitRating")
}

func TestValidateAgainst_BuildResult(t *testing.T) {
	valid := `{"summary": "s", "emphasizedSkills": ["Go"], "selectedExperiences": [], "resume": "# R"}`
	assert.NoError(t, ValidateAgainst(BuildResult, valid))

	err := ValidateAgainst(BuildResult, `{"summary": "s"}`)
	assert.Error(t, err)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{not json`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
