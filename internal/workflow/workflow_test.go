package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/fetch"
	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/types"
)

var fixedTime = time.Date(2024, 3, 15, 9, 30, 45, 123000000, time.UTC)

type fakeReviewer struct {
	mu       sync.Mutex
	resumes  []string
	targets  [][2]string
	err      error
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeReviewer) Review(_ context.Context, resume string) (*types.ReviewResult, error) {
	f.mu.Lock()
	f.resumes = append(f.resumes, resume)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &types.ReviewResult{OverallScore: 70, Summary: "General"}, nil
}

func (f *fakeReviewer) ReviewForTarget(_ context.Context, resume, company, job string) (*types.JobFitReview, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.resumes = append(f.resumes, resume)
	f.targets = append(f.targets, [2]string{company, job})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &types.JobFitReview{
		ReviewResult: types.ReviewResult{OverallScore: 80, Summary: "Targeted"},
		FitRating:    types.FitGood,
	}, nil
}

type fakeBuilder struct {
	profile, company, job string
}

func (f *fakeBuilder) Build(_ context.Context, profile, company, job string) (*types.BuildResult, error) {
	f.profile, f.company, f.job = profile, company, job
	return &types.BuildResult{Summary: "Tailored", EmphasizedSkills: []string{"Go"}, Resume: "# Jane Doe\n"}, nil
}

type fakeImporter struct{ err error }

func (f *fakeImporter) ProfileFromText(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "# Jane Doe\n\n" + text + "\n", nil
}

func newTestService(t *testing.T) (*Service, *fakeReviewer) {
	t.Helper()
	cfg := &config.Config{ProjectRoot: t.TempDir()}
	clock := func() time.Time { return fixedTime }
	store := project.NewManager(cfg, project.WithClock(clock))
	_, err := store.Init()
	require.NoError(t, err)

	reviewer := &fakeReviewer{}
	return &Service{
		Store:    store,
		Results:  results.NewManager(cfg, results.WithClock(clock)),
		Reviewer: reviewer,
		Builder:  &fakeBuilder{},
		Importer: &fakeImporter{},
		Now:      clock,
	}, reviewer
}

func seed(t *testing.T, s *Service) {
	t.Helper()
	_, err := s.Store.AddPerson("Jane Doe")
	require.NoError(t, err)
	require.NoError(t, s.Store.UpdatePersonContent("jane-doe", "# Jane Doe\n\nGo engineer\n"))
	_, err = s.Store.AddCompany("Acme")
	require.NoError(t, err)
	_, err = s.Store.AddJob("Acme", "Backend Engineer")
	require.NoError(t, err)
}

func TestReview_General(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)

	outcome, err := s.Review(context.Background(), ReviewRequest{Person: "Jane Doe"})
	require.NoError(t, err)

	assert.Equal(t, results.TypeGeneral, outcome.Metadata.Type)
	assert.Equal(t, "jane-doe", outcome.Metadata.Person)
	assert.Equal(t, "resume-data/people/jane-doe/person.md", outcome.Metadata.PersonFile)
	assert.Empty(t, outcome.Metadata.Company)
	assert.Equal(t, "2024-03-15T09-30-45_general_jane-doe.md", outcome.Filename)
	assert.Equal(t, []string{"# Jane Doe\n\nGo engineer\n"}, reviewer.resumes)

	loaded, err := s.Results.LoadResult(outcome.Filename)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, outcome.Metadata, loaded.Metadata)
	assert.Contains(t, loaded.Body, "General")
}

func TestReview_CompanyAndJob(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)

	outcome, err := s.Review(context.Background(), ReviewRequest{Person: "jane-doe", Company: "Acme", Job: "Backend Engineer"})
	require.NoError(t, err)

	meta := outcome.Metadata
	assert.Equal(t, results.TypeReview, meta.Type)
	assert.Equal(t, "acme", meta.Company)
	assert.Equal(t, "backend-engineer", meta.Job)
	assert.Equal(t, "resume-data/companies/acme/company.md", meta.CompanyFile)
	assert.Equal(t, "resume-data/companies/acme/jobs/backend-engineer.md", meta.JobFile)

	require.Len(t, reviewer.targets, 1)
	assert.Contains(t, reviewer.targets[0][0], "# Acme")
	assert.Contains(t, reviewer.targets[0][1], "# Backend Engineer")

	fit, ok := outcome.Result.(*types.JobFitReview)
	require.True(t, ok)
	assert.Equal(t, types.FitGood, fit.FitRating)
}

func TestReview_CompanyOnly(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)

	outcome, err := s.Review(context.Background(), ReviewRequest{Person: "jane-doe", Company: "acme"})
	require.NoError(t, err)
	assert.Equal(t, results.TypeCompany, outcome.Metadata.Type)
	assert.Empty(t, reviewer.targets[0][1])
}

func TestReview_SavedResume(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)
	path, err := s.Store.SaveResume("jane-doe", "acme", "backend-engineer", "# Resume v1\n")
	require.NoError(t, err)

	outcome, err := s.Review(context.Background(), ReviewRequest{Person: "jane-doe", Resume: filepath.Base(path)})
	require.NoError(t, err)

	assert.Equal(t, []string{"# Resume v1\n"}, reviewer.resumes)
	assert.Equal(t, "resume-data/people/jane-doe/resumes/"+filepath.Base(path), outcome.Metadata.PersonFile)
}

func TestReview_Errors(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)
	ctx := context.Background()

	_, err := s.Review(ctx, ReviewRequest{})
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)

	_, err = s.Review(ctx, ReviewRequest{Person: "jane-doe", Job: "backend-engineer"})
	assert.ErrorAs(t, err, &reqErr)

	_, err = s.Review(ctx, ReviewRequest{Person: "ghost"})
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = s.Review(ctx, ReviewRequest{Person: "jane-doe", Company: "ghost-co"})
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = s.Review(ctx, ReviewRequest{Person: "jane-doe", Company: "acme", Job: "ghost"})
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = s.Review(ctx, ReviewRequest{Person: "jane-doe", Resume: "missing"})
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestReview_AgentFailureSavesNothing(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)
	reviewer.err = errors.New("model unavailable")

	_, err := s.Review(context.Background(), ReviewRequest{Person: "jane-doe"})
	require.Error(t, err)

	saved, err := s.Results.ListResults(results.Filters{})
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestReviewAllJobs(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)
	for _, title := range []string{"Data Engineer", "SRE", "Platform Engineer"} {
		_, err := s.Store.AddJob("Acme", title)
		require.NoError(t, err)
	}

	var events atomic.Int32
	s.OnProgress = func(ProgressEvent) { events.Add(1) }

	outcomes, err := s.ReviewAllJobs(context.Background(), "jane-doe", "acme", 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	jobs := make([]string, len(outcomes))
	for i, o := range outcomes {
		jobs[i] = o.Metadata.Job
		assert.Equal(t, results.TypeReview, o.Metadata.Type)
	}
	assert.Equal(t, []string{"backend-engineer", "data-engineer", "platform-engineer", "sre"}, jobs)
	assert.LessOrEqual(t, reviewer.maxSeen.Load(), int32(2))
	assert.Equal(t, int32(4), events.Load())

	saved, err := s.Results.ListResults(results.Filters{Company: "acme"})
	require.NoError(t, err)
	assert.Len(t, saved, 4)
}

func TestReviewAllJobs_NoJobsAndMissing(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)
	_, err := s.Store.AddCompany("Empty Co")
	require.NoError(t, err)

	outcomes, err := s.ReviewAllJobs(context.Background(), "jane-doe", "empty-co", 0)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	_, err = s.ReviewAllJobs(context.Background(), "jane-doe", "ghost-co", 0)
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = s.ReviewAllJobs(context.Background(), "ghost", "acme", 0)
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestReviewAllJobs_FailurePropagates(t *testing.T) {
	s, reviewer := newTestService(t)
	seed(t, s)
	reviewer.err = errors.New("quota")

	_, err := s.ReviewAllJobs(context.Background(), "jane-doe", "acme", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme/backend-engineer")
}

func TestBuild(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)
	builder := s.Builder.(*fakeBuilder)

	outcome, err := s.Build(context.Background(), BuildRequest{Person: "Jane Doe", Company: "Acme", Job: "Backend Engineer"})
	require.NoError(t, err)

	assert.Equal(t, "# Jane Doe\n\nGo engineer\n", builder.profile)
	assert.Contains(t, builder.company, "# Acme")
	assert.Contains(t, builder.job, "# Backend Engineer")

	assert.Equal(t, results.TypeBuild, outcome.Metadata.Type)
	assert.Equal(t, "2024-03-15T09-30-45_build_jane-doe_acme_backend-engineer.md", filepath.Base(outcome.ResultPath))
	assert.Equal(t, "acme_backend-engineer_2024-03-15T09-30-45.md", filepath.Base(outcome.ResumePath))

	content, err := s.Store.GetResumeContent("jane-doe", filepath.Base(outcome.ResumePath))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n", content)
}

func TestBuild_Errors(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)

	_, err := s.Build(context.Background(), BuildRequest{Person: "jane-doe", Company: "acme"})
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)

	_, err = s.Build(context.Background(), BuildRequest{Person: "jane-doe", Company: "acme", Job: "ghost"})
	assert.ErrorIs(t, err, project.ErrNotFound)

	resumes, err := s.Store.ListResumes("jane-doe")
	require.NoError(t, err)
	assert.Empty(t, resumes)
}

func TestBuild_ResumeFailureLogsNothing(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)

	person, err := s.Store.GetPerson("jane-doe")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(person.ResumesDirectory))
	require.NoError(t, os.WriteFile(person.ResumesDirectory, []byte("not a directory"), 0644))

	_, err = s.Build(context.Background(), BuildRequest{Person: "jane-doe", Company: "acme", Job: "backend-engineer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save resume")

	logged, err := s.Results.ListResults(results.Filters{})
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestImportJob(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)

	var gotOpts *fetch.Options
	s.Fetch = func(_ context.Context, url string, opts *fetch.Options) (string, error) {
		gotOpts = opts
		return "  We are hiring a staff engineer.\nRequirements: Go  ", nil
	}

	opts := &fetch.Options{UseBrowser: true}
	job, err := s.ImportJob(context.Background(), "Acme", "Staff Engineer", "https://jobs.example.com/1", opts)
	require.NoError(t, err)
	assert.Equal(t, "staff-engineer", job.Name)
	assert.Same(t, opts, gotOpts)

	content, err := s.Store.GetJobContent("acme", "staff-engineer")
	require.NoError(t, err)
	assert.Equal(t, "# Staff Engineer\n\nSource: https://jobs.example.com/1\n\nWe are hiring a staff engineer.\nRequirements: Go\n", content)
}

func TestImportJob_Errors(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)
	called := false
	s.Fetch = func(context.Context, string, *fetch.Options) (string, error) {
		called = true
		return "", errors.New("network down")
	}
	ctx := context.Background()

	_, err := s.ImportJob(ctx, "ghost-co", "SRE", "https://x.example.com", nil)
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = s.ImportJob(ctx, "acme", "Backend Engineer", "https://x.example.com", nil)
	assert.ErrorIs(t, err, project.ErrAlreadyExists)

	_, err = s.ImportJob(ctx, "acme", "SRE", "", nil)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.False(t, called)

	_, err = s.ImportJob(ctx, "acme", "SRE", "https://x.example.com", nil)
	assert.EqualError(t, err, "network down")
	assert.False(t, s.Store.JobExists("acme", "sre"))
}

func TestImportProfile(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)

	p, err := s.ImportProfile(context.Background(), "Jane Doe", "Go engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", p.Name)

	content, err := s.Store.GetPersonContent("jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nGo engineer at Acme\n", content)
}

func TestImportProfile_Errors(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s)

	_, err := s.ImportProfile(context.Background(), "ghost", "text")
	assert.ErrorIs(t, err, project.ErrNotFound)

	s.Importer = &fakeImporter{err: errors.New("bad output")}
	_, err = s.ImportProfile(context.Background(), "jane-doe", "text")
	require.Error(t, err)

	content, err := s.Store.GetPersonContent("jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nGo engineer\n", content)
}
