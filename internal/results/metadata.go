// Package results persists analysis and build outcomes as markdown documents
// with a YAML frontmatter header under resume-data/results.
package results

import (
	"strings"
)

// ResultType classifies a saved result by the context it was produced with.
type ResultType string

// Result types.
const (
	TypeGeneral ResultType = "general"
	TypeCompany ResultType = "company"
	TypeJob     ResultType = "job"
	TypeReview  ResultType = "review"
	TypeBuild   ResultType = "build"
)

// AllTypes lists every result type.
var AllTypes = []ResultType{TypeGeneral, TypeCompany, TypeJob, TypeReview, TypeBuild}

// Valid reports whether t is one of AllTypes.
func (t ResultType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TimestampLayout is the ISO-8601 UTC millisecond layout used for result
// timestamps. Lexicographic order of these strings is chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Metadata is the frontmatter of a result document. Keys are snake_case on
// disk and camelCase in JSON.
type Metadata struct {
	Type        ResultType `yaml:"type" json:"type"`
	Timestamp   string     `yaml:"timestamp" json:"timestamp"`
	Person      string     `yaml:"person,omitempty" json:"person,omitempty"`
	PersonFile  string     `yaml:"person_file,omitempty" json:"personFile,omitempty"`
	Company     string     `yaml:"company,omitempty" json:"company,omitempty"`
	CompanyFile string     `yaml:"company_file,omitempty" json:"companyFile,omitempty"`
	Job         string     `yaml:"job,omitempty" json:"job,omitempty"`
	JobFile     string     `yaml:"job_file,omitempty" json:"jobFile,omitempty"`
}

// GetResultType derives the result type from the supplied context.
func GetResultType(hasCompany, hasJob, isBuild bool) ResultType {
	switch {
	case isBuild:
		return TypeBuild
	case hasCompany && hasJob:
		return TypeReview
	case hasJob:
		return TypeJob
	case hasCompany:
		return TypeCompany
	default:
		return TypeGeneral
	}
}

// GenerateFilename returns "{timestamp}_{type}[_{person}][_{company}][_{job}].md"
// where timestamp is the first 19 characters of meta.Timestamp with ':' and
// '.' replaced by '-'.
func GenerateFilename(meta Metadata) string {
	stamp := meta.Timestamp
	if len(stamp) > 19 {
		stamp = stamp[:19]
	}
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)

	parts := []string{stamp, string(meta.Type)}
	for _, part := range []string{meta.Person, meta.Company, meta.Job} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "_") + markdownExt
}

// Filters narrows ListResults. Empty fields match everything.
type Filters struct {
	Type    ResultType `json:"type,omitempty"`
	Person  string     `json:"person,omitempty"`
	Company string     `json:"company,omitempty"`
}

func (f Filters) match(meta Metadata) bool {
	if f.Type != "" && meta.Type != f.Type {
		return false
	}
	if f.Person != "" && meta.Person != f.Person {
		return false
	}
	if f.Company != "" && meta.Company != f.Company {
		return false
	}
	return true
}
