package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/schemas"
	"github.com/jonathan/resume-reviewer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewJSON = `{
	"overallScore": 78,
	"summary": "Solid backend resume.",
	"strengths": ["Clear impact"],
	"improvements": ["Add metrics to the migration bullet"],
	"categories": [{"name": "Impact", "score": 70, "feedback": "Some numbers"}]
}`

const jobFitJSON = `{
	"overallScore": 64,
	"summary": "Partial fit.",
	"strengths": ["Go"],
	"improvements": ["Kubernetes"],
	"categories": [{"name": "Skills Match", "score": 60, "feedback": "Missing k8s"}],
	"fitRating": "moderate",
	"missingKeywords": ["Kubernetes"],
	"transferableSkills": ["Docker"],
	"targetedSuggestions": ["Mention container orchestration"]
}`

const buildJSON = "```json\n" + `{
	"summary": "Led with platform work.",
	"emphasizedSkills": ["Go", "PostgreSQL"],
	"selectedExperiences": ["Staff Engineer at Acme"],
	"resume": "# Jane Doe\n\n## Experience\n"
}` + "\n```"

func TestReviewer_Review(t *testing.T) {
	client := &fakeClient{json: reviewJSON}

	result, err := NewReviewer(client).Review(context.Background(), "# Jane Doe")
	require.NoError(t, err)

	assert.Equal(t, 78.0, result.OverallScore)
	assert.Equal(t, types.KindReview, result.Kind())
	require.Len(t, result.Categories, 1)
	assert.Equal(t, "Impact", result.Categories[0].Name)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "# Jane Doe")
	assert.NotContains(t, client.prompts[0], "{{.Resume}}")
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestReviewer_ReviewForTarget(t *testing.T) {
	client := &fakeClient{json: jobFitJSON}

	result, err := NewReviewer(client).ReviewForTarget(context.Background(), "# Jane", "", "# Backend Engineer")
	require.NoError(t, err)

	assert.Equal(t, types.FitModerate, result.FitRating)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingKeywords)
	assert.Equal(t, 64.0, result.OverallScore)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "# Backend Engineer")
	assert.Contains(t, prompt, NoContext)
}

func TestReviewer_ReviewForTarget_RequiresContext(t *testing.T) {
	client := &fakeClient{json: jobFitJSON}

	_, err := NewReviewer(client).ReviewForTarget(context.Background(), "# Jane", " ", "")
	require.Error(t, err)

	var outErr *OutputError
	assert.ErrorAs(t, err, &outErr)
	assert.Empty(t, client.prompts)
}

func TestReviewer_SchemaFailure(t *testing.T) {
	client := &fakeClient{json: `{"overallScore": 50}`}

	_, err := NewReviewer(client).Review(context.Background(), "# Jane")
	require.Error(t, err)

	var outErr *OutputError
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, reviewerName, outErr.Agent)
	assert.Equal(t, `{"overallScore": 50}`, outErr.Raw)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReviewer_InvalidFitRating(t *testing.T) {
	client := &fakeClient{json: `{
		"overallScore": 50, "summary": "x", "strengths": [], "improvements": [],
		"categories": [], "fitRating": "excellent"
	}`}

	_, err := NewReviewer(client).ReviewForTarget(context.Background(), "# Jane", "# Acme", "")
	var outErr *OutputError
	require.ErrorAs(t, err, &outErr)
}

func TestReviewer_APIError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &fakeClient{err: cause}

	_, err := NewReviewer(client).Review(context.Background(), "# Jane")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestBuilder_Build(t *testing.T) {
	client := &fakeClient{json: buildJSON}

	result, err := NewBuilder(client).Build(context.Background(), "# Jane Doe\n\nprofile", "# Acme", "# Staff Engineer")
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.EmphasizedSkills)
	assert.Equal(t, "# Jane Doe\n\n## Experience\n", result.Resume)
	assert.Equal(t, llm.TierAdvanced, client.tiers[0])

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "profile")
	assert.Contains(t, prompt, "# Acme")
	assert.Contains(t, prompt, "# Staff Engineer")
}

func TestBuilder_MissingResume(t *testing.T) {
	client := &fakeClient{json: `{"summary": "s", "emphasizedSkills": [], "selectedExperiences": [], "resume": ""}`}

	_, err := NewBuilder(client).Build(context.Background(), "p", "", "")
	var outErr *OutputError
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, builderName, outErr.Agent)
}

func TestImporter_ProfileFromText(t *testing.T) {
	client := &fakeClient{text: "```markdown\n# Jane Doe\n\n## Skills\n- Go\n```"}

	profile, err := NewImporter(client).ProfileFromText(context.Background(), "Jane Doe, Go developer")
	require.NoError(t, err)

	assert.Equal(t, "# Jane Doe\n\n## Skills\n- Go\n", profile)
	assert.Equal(t, llm.TierLite, client.tiers[0])
	assert.Contains(t, client.prompts[0], "Jane Doe, Go developer")
}

func TestImporter_Errors(t *testing.T) {
	_, err := NewImporter(&fakeClient{}).ProfileFromText(context.Background(), "  ")
	var outErr *OutputError
	assert.ErrorAs(t, err, &outErr)

	_, err = NewImporter(&fakeClient{text: "Jane Doe is a developer"}).ProfileFromText(context.Background(), "text")
	assert.ErrorAs(t, err, &outErr)

	_, err = NewImporter(&fakeClient{err: errors.New("down")}).ProfileFromText(context.Background(), "text")
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestStripMarkdownFence(t *testing.T) {
	assert.Equal(t, "# A", stripMarkdownFence("```md\n# A\n```"))
	assert.Equal(t, "# A", stripMarkdownFence("  # A  "))
}
