package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-reviewer/internal/types"
)

var titles = map[ResultType]string{
	TypeGeneral: "Resume Review",
	TypeCompany: "Company Fit Review",
	TypeJob:     "Job Fit Review",
	TypeReview:  "Targeted Review",
	TypeBuild:   "Resume Build",
}

// RenderBody renders the markdown body for result. The branch is chosen by
// the result's shape, not by the metadata type.
func RenderBody(resultType ResultType, result types.Result) (string, error) {
	var sb strings.Builder
	if title, ok := titles[resultType]; ok {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}

	switch r := result.(type) {
	case *types.BuildResult:
		renderBuild(&sb, r)
	case *types.JobFitReview:
		renderReview(&sb, &r.ReviewResult, r)
	case *types.ReviewResult:
		renderReview(&sb, r, nil)
	default:
		return "", fmt.Errorf("results: unsupported result %T", result)
	}
	return sb.String(), nil
}

func renderBuild(sb *strings.Builder, r *types.BuildResult) {
	section(sb, "Summary", r.Summary)
	if len(r.EmphasizedSkills) > 0 {
		section(sb, "Emphasized Skills", codeSpans(r.EmphasizedSkills))
	}
	if len(r.SelectedExperiences) > 0 {
		section(sb, "Selected Experiences", bullets(r.SelectedExperiences))
	}
	sb.WriteString("---\n\n")
	sb.WriteString(r.Resume)
	if !strings.HasSuffix(r.Resume, "\n") {
		sb.WriteString("\n")
	}
}

func renderReview(sb *strings.Builder, r *types.ReviewResult, fit *types.JobFitReview) {
	fmt.Fprintf(sb, "**Overall Score:** %s/100\n", formatScore(r.OverallScore))
	if fit != nil && fit.FitRating != "" {
		fmt.Fprintf(sb, "**Fit Rating:** %s\n", fit.FitRating)
	}
	sb.WriteString("\n")

	section(sb, "Summary", r.Summary)
	section(sb, "Strengths", bullets(r.Strengths))
	section(sb, "Areas for Improvement", bullets(r.Improvements))

	if fit != nil {
		if len(fit.MissingKeywords) > 0 {
			section(sb, "Missing Keywords", codeSpans(fit.MissingKeywords))
		}
		if len(fit.TransferableSkills) > 0 {
			section(sb, "Transferable Skills", bullets(fit.TransferableSkills))
		}
		if len(fit.TargetedSuggestions) > 0 {
			section(sb, "Targeted Suggestions", bullets(fit.TargetedSuggestions))
		}
	}

	if len(r.Categories) > 0 {
		sb.WriteString("## Category Scores\n\n")
		for _, c := range r.Categories {
			fmt.Fprintf(sb, "### %s (%s/100)\n\n", c.Name, formatScore(c.Score))
			if c.Feedback != "" {
				sb.WriteString(c.Feedback)
				sb.WriteString("\n\n")
			}
		}
	}
}

func section(sb *strings.Builder, heading, content string) {
	fmt.Fprintf(sb, "## %s\n\n", heading)
	if content != "" {
		sb.WriteString(strings.TrimRight(content, "\n"))
		sb.WriteString("\n\n")
	}
}

func bullets(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s\n", item)
	}
	return sb.String()
}

func codeSpans(items []string) string {
	spans := make([]string, len(items))
	for i, item := range items {
		spans[i] = "`" + item + "`"
	}
	return strings.Join(spans, ", ")
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
