// Package agents turns project documents into LLM calls and validated results.
//
// Each agent renders a prompt from the embedded catalogue, calls the model at
// a fixed tier, then checks the JSON against its schema and the result type's
// validator tags before returning it.
package agents

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/prompts"
	"github.com/jonathan/resume-reviewer/internal/schemas"
	"github.com/jonathan/resume-reviewer/internal/types"
)

// Agent names used in errors.
const (
	reviewerName = "reviewer"
	builderName  = "builder"
	importerName = "importer"
)

// NoContext stands in for a missing company or job section in prompts.
const NoContext = "(none provided)"

// Reviewer scores resumes, optionally against a company and job.
type Reviewer struct {
	client llm.Client
}

// NewReviewer creates a Reviewer.
func NewReviewer(client llm.Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review performs a general review of resume.
func (r *Reviewer) Review(ctx context.Context, resume string) (*types.ReviewResult, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.ReviewFile, prompts.GeneralReview), map[string]string{
		"Resume": resume,
	})

	var result types.ReviewResult
	if err := generate(ctx, r.client, reviewerName, prompt, llm.TierStandard, schemas.Review, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReviewForTarget reviews resume against a company profile and/or job
// posting. Either may be empty but not both.
func (r *Reviewer) ReviewForTarget(ctx context.Context, resume, companyProfile, jobPosting string) (*types.JobFitReview, error) {
	if strings.TrimSpace(companyProfile) == "" && strings.TrimSpace(jobPosting) == "" {
		return nil, &OutputError{Agent: reviewerName, Message: "a company profile or job posting is required"}
	}

	prompt := prompts.Format(prompts.MustGet(prompts.ReviewFile, prompts.JobFitReview), map[string]string{
		"Resume":  resume,
		"Company": orNoContext(companyProfile),
		"Job":     quoteExternal(reviewerName, "job posting", jobPosting),
	})

	var result types.JobFitReview
	if err := generate(ctx, r.client, reviewerName, prompt, llm.TierStandard, schemas.JobFitReview, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Builder writes tailored resumes from a candidate profile.
type Builder struct {
	client llm.Client
}

// NewBuilder creates a Builder.
func NewBuilder(client llm.Client) *Builder {
	return &Builder{client: client}
}

// Build generates a resume from profile tailored to the company and job.
func (b *Builder) Build(ctx context.Context, profile, companyProfile, jobPosting string) (*types.BuildResult, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.BuilderFile, prompts.BuildResume), map[string]string{
		"Profile": profile,
		"Company": orNoContext(companyProfile),
		"Job":     quoteExternal(builderName, "job posting", jobPosting),
	})

	var result types.BuildResult
	if err := generate(ctx, b.client, builderName, prompt, llm.TierAdvanced, schemas.BuildResult, &result); err != nil {
		return nil, err
	}
	result.Resume = strings.TrimSpace(result.Resume) + "\n"
	return &result, nil
}

// Importer converts free text into a markdown profile.
type Importer struct {
	client llm.Client
}

// NewImporter creates an Importer.
func NewImporter(client llm.Client) *Importer {
	return &Importer{client: client}
}

// ProfileFromText converts text (an old resume, notes) into profile markdown.
func (i *Importer) ProfileFromText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &OutputError{Agent: importerName, Message: "source text is empty"}
	}

	prompt := prompts.Format(prompts.MustGet(prompts.ProfileFile, prompts.ProfileFromText), map[string]string{
		"Text": quoteExternal(importerName, "source text", text),
	})

	out, err := i.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &APICallError{Agent: importerName, Message: "failed to generate profile", Cause: err}
	}

	markdown := stripMarkdownFence(out)
	if !strings.HasPrefix(markdown, "# ") {
		return "", &OutputError{Agent: importerName, Message: "profile must start with a level-one heading", Raw: out}
	}
	return markdown + "\n", nil
}

// generate calls the model for JSON and decodes it into out after schema and
// struct validation.
func generate(ctx context.Context, client llm.Client, agent, prompt string, tier llm.ModelTier, schema string, out types.Result) error {
	raw, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return &APICallError{Agent: agent, Message: "failed to generate " + string(out.Kind()), Cause: err}
	}

	doc := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateAgainst(schema, doc); err != nil {
		return &OutputError{Agent: agent, Message: "response does not match schema", Raw: raw, Cause: err}
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return &OutputError{Agent: agent, Message: "failed to parse JSON response", Raw: raw, Cause: err}
	}
	if err := out.Validate(); err != nil {
		return &OutputError{Agent: agent, Message: "response failed validation", Raw: raw, Cause: err}
	}
	return nil
}

func orNoContext(s string) string {
	if strings.TrimSpace(s) == "" {
		return NoContext
	}
	return strings.TrimSpace(s)
}

func stripMarkdownFence(text string) string {
	text = strings.TrimSpace(text)
	for _, fence := range []string{"```markdown", "```md", "```"} {
		if strings.HasPrefix(text, fence) {
			text = strings.TrimPrefix(text, fence)
			text = strings.TrimSuffix(strings.TrimSpace(text), "```")
			break
		}
	}
	return strings.TrimSpace(text)
}
