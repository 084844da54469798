// Package types provides the structured shapes exchanged with the LLM agents.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Kind names the shape of an agent result.
type Kind string

// Agent result kinds.
const (
	KindReview       Kind = "review"
	KindJobFitReview Kind = "job_fit_review"
	KindBuild        Kind = "build"
)

// Result is implemented by every agent output that can be persisted.
type Result interface {
	Kind() Kind
	Validate() error
}

// CategoryScore is one scored dimension of a review (e.g. "Impact", "Clarity").
type CategoryScore struct {
	Name     string  `json:"name" validate:"required"`
	Score    float64 `json:"score" validate:"gte=0,lte=100"`
	Feedback string  `json:"feedback"`
}

// ReviewResult is the output of a general resume review.
type ReviewResult struct {
	OverallScore float64         `json:"overallScore" validate:"gte=0,lte=100"`
	Summary      string          `json:"summary" validate:"required"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
	Categories   []CategoryScore `json:"categories" validate:"dive"`
}

// Kind implements Result.
func (r *ReviewResult) Kind() Kind { return KindReview }

// Validate validates the ReviewResult using the validator.
func (r *ReviewResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Fit ratings returned by the job-fit reviewer.
const (
	FitStrong   = "strong"
	FitGood     = "good"
	FitModerate = "moderate"
	FitWeak     = "weak"
)

// JobFitReview extends a review with fit against a company and/or job.
type JobFitReview struct {
	ReviewResult
	FitRating           string   `json:"fitRating" validate:"required,oneof=strong good moderate weak"`
	MissingKeywords     []string `json:"missingKeywords,omitempty"`
	TransferableSkills  []string `json:"transferableSkills,omitempty"`
	TargetedSuggestions []string `json:"targetedSuggestions,omitempty"`
}

// Kind implements Result.
func (r *JobFitReview) Kind() Kind { return KindJobFitReview }

// Validate validates the JobFitReview using the validator.
func (r *JobFitReview) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
