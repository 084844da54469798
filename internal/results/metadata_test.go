package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetResultType(t *testing.T) {
	tests := []struct {
		hasCompany, hasJob, isBuild bool
		want                        ResultType
	}{
		{false, false, false, TypeGeneral},
		{true, false, false, TypeCompany},
		{false, true, false, TypeJob},
		{true, true, false, TypeReview},
		{true, false, true, TypeBuild},
		{true, true, true, TypeBuild},
		{false, false, true, TypeBuild},
	}

	for _, tt := range tests {
		got := GetResultType(tt.hasCompany, tt.hasJob, tt.isBuild)
		assert.Equal(t, tt.want, got, "company=%v job=%v build=%v", tt.hasCompany, tt.hasJob, tt.isBuild)
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{
			name: "general",
			meta: Metadata{Type: TypeGeneral, Timestamp: "2024-01-01T00:00:00.000Z"},
			want: "2024-01-01T00-00-00_general.md",
		},
		{
			name: "all context",
			meta: Metadata{Type: TypeReview, Timestamp: "2024-05-06T07:08:09.123Z", Person: "jane-doe", Company: "acme", Job: "staff-engineer"},
			want: "2024-05-06T07-08-09_review_jane-doe_acme_staff-engineer.md",
		},
		{
			name: "job without company",
			meta: Metadata{Type: TypeJob, Timestamp: "2024-05-06T07:08:09.123Z", Person: "jane-doe", Job: "engineer"},
			want: "2024-05-06T07-08-09_job_jane-doe_engineer.md",
		},
		{
			name: "short timestamp kept whole",
			meta: Metadata{Type: TypeCompany, Timestamp: "2024-05-06", Company: "acme"},
			want: "2024-05-06_company_acme.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateFilename(tt.meta))
		})
	}
}

func TestResultType_Valid(t *testing.T) {
	for _, rt := range AllTypes {
		assert.True(t, rt.Valid())
	}
	assert.False(t, ResultType("summary").Valid())
}
