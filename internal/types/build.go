package types

import "github.com/go-playground/validator/v10"

// BuildResult is the output of the resume builder: a tailored resume plus
// the reasoning that produced it.
type BuildResult struct {
	Summary             string   `json:"summary" validate:"required"`
	EmphasizedSkills    []string `json:"emphasizedSkills"`
	SelectedExperiences []string `json:"selectedExperiences"`
	Resume              string   `json:"resume" validate:"required"`
}

// Kind implements Result.
func (r *BuildResult) Kind() Kind { return KindBuild }

// Validate validates the BuildResult using the validator.
func (r *BuildResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
