// Package observability provides formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReview outputs the score, summary and category breakdown of a review.
func (p *Printer) PrintReview(r *types.ReviewResult) {
	if r == nil {
		return
	}
	var sb strings.Builder
	writeReview(&sb, r)
	p.printBox("RESUME REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobFitReview outputs a targeted review with its fit rating and gaps.
func (p *Printer) PrintJobFitReview(r *types.JobFitReview) {
	if r == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fit:      %s\n", strings.ToUpper(r.FitRating))
	writeReview(&sb, &r.ReviewResult)
	writeList(&sb, "Missing keywords", r.MissingKeywords)
	writeList(&sb, "Transferable skills", r.TransferableSkills)
	writeList(&sb, "Suggestions", r.TargetedSuggestions)
	p.printBox("JOB FIT REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult dispatches on the result's shape.
func (p *Printer) PrintResult(r types.Result) {
	switch v := r.(type) {
	case *types.JobFitReview:
		p.PrintJobFitReview(v)
	case *types.ReviewResult:
		p.PrintReview(v)
	case *types.BuildResult:
		p.PrintBuild(v)
	}
}

// PrintBuild outputs what the builder emphasized.
func (p *Printer) PrintBuild(r *types.BuildResult) {
	if r == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", r.Summary)
	writeList(&sb, "Emphasized skills", r.EmphasizedSkills)
	writeList(&sb, "Selected experiences", r.SelectedExperiences)
	fmt.Fprintf(&sb, "Resume: %d lines\n", strings.Count(strings.TrimSuffix(r.Resume, "\n"), "\n")+1)
	p.printBox("RESUME BUILD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs a result listing, newest first, followed by the
// filenames accepted by LoadResult.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResults(saved []results.SavedResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total results: %d\n", len(saved))
	for _, r := range saved {
		target := strings.Trim(strings.Join([]string{r.Company, r.Job}, "/"), "/")
		if target == "" {
			target = "-"
		}
		fmt.Fprintf(&sb, "%-19s %-8s %-12s %s\n", shortTimestamp(r.Timestamp), r.Type, r.Person, target)
	}
	p.printBox("RESULTS", strings.TrimSuffix(sb.String(), "\n"))
	for _, r := range saved {
		fmt.Fprintf(p.out, "  %s\n", r.Filename)
	}
}

// PrintInit outputs the paths an init created and the ones it found.
func (p *Printer) PrintInit(root string, res *project.InitResult) {
	if res == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Root: %s\n", root)
	fmt.Fprintf(&sb, "Created: %d  Existed: %d\n", len(res.Created), len(res.Existed))
	for _, path := range res.Created {
		fmt.Fprintf(&sb, "  + %s\n", path)
	}
	p.printBox("PROJECT INIT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeReview(sb *strings.Builder, r *types.ReviewResult) {
	fmt.Fprintf(sb, "Score:    %.0f/100\n", r.OverallScore)
	if r.Summary != "" {
		fmt.Fprintf(sb, "\n%s\n", r.Summary)
	}
	sb.WriteString("\n")
	for _, c := range r.Categories {
		fmt.Fprintf(sb, "%-20s %s %3.0f\n", truncate(c.Name, 20), scoreBar(c.Score), c.Score)
	}
	if len(r.Categories) > 0 {
		sb.WriteString("\n")
	}
	writeList(sb, "Strengths", r.Strengths)
	writeList(sb, "Improvements", r.Improvements)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// scoreBar renders a 0-100 score as a ten-cell bar.
func scoreBar(score float64) string {
	filled := int(score/10 + 0.5)
	filled = max(0, min(10, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func shortTimestamp(ts string) string {
	if len(ts) > 19 {
		ts = ts[:19]
	}
	return strings.Replace(ts, "T", " ", 1)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
