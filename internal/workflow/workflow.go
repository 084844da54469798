// Package workflow connects the project store, the result log and the agents:
// it loads entity content, runs an agent over it and persists the outcome.
package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-reviewer/internal/fetch"
	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/slug"
	"github.com/jonathan/resume-reviewer/internal/types"
)

// DefaultConcurrency bounds parallel agent calls in ReviewAllJobs.
const DefaultConcurrency = 3

// ResumeReviewer scores a resume, optionally against a target.
type ResumeReviewer interface {
	Review(ctx context.Context, resume string) (*types.ReviewResult, error)
	ReviewForTarget(ctx context.Context, resume, companyProfile, jobPosting string) (*types.JobFitReview, error)
}

// ResumeBuilder writes a tailored resume from a profile.
type ResumeBuilder interface {
	Build(ctx context.Context, profile, companyProfile, jobPosting string) (*types.BuildResult, error)
}

// ProfileImporter converts free text into profile markdown.
type ProfileImporter interface {
	ProfileFromText(ctx context.Context, text string) (string, error)
}

// FetchFunc retrieves the text of a job posting.
type FetchFunc func(ctx context.Context, url string, opts *fetch.Options) (string, error)

// ProgressEvent reports one finished unit of a multi-step workflow.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// ProgressCallback receives progress events. It may be called concurrently.
type ProgressCallback func(event ProgressEvent)

// Service runs agent workflows over one project. Agents that a caller never
// uses may be left nil.
type Service struct {
	Store    *project.Manager
	Results  *results.Manager
	Reviewer ResumeReviewer
	Builder  ResumeBuilder
	Importer ProfileImporter

	// Fetch defaults to fetch.JobPostingMarkdown.
	Fetch FetchFunc
	// Now defaults to time.Now.
	Now        func() time.Time
	OnProgress ProgressCallback
}

// ReviewRequest selects what to review. The person's profile is reviewed
// unless Resume names one of their saved resumes. Company and Job add target
// context; Job requires Company.
type ReviewRequest struct {
	Person  string `json:"person" validate:"required"`
	Resume  string `json:"resume,omitempty"`
	Company string `json:"company,omitempty" validate:"required_with=Job"`
	Job     string `json:"job,omitempty"`
}

// ReviewOutcome is a persisted review.
type ReviewOutcome struct {
	Path     string           `json:"path"`
	Filename string           `json:"filename"`
	Metadata results.Metadata `json:"metadata"`
	Result   types.Result     `json:"result"`
}

// BuildRequest selects the profile and target for a resume build.
type BuildRequest struct {
	Person  string `json:"person" validate:"required"`
	Company string `json:"company" validate:"required"`
	Job     string `json:"job" validate:"required"`
}

// BuildOutcome is a persisted build: the result document and the resume.
type BuildOutcome struct {
	ResultPath string             `json:"resultPath"`
	ResumePath string             `json:"resumePath"`
	Metadata   results.Metadata   `json:"metadata"`
	Result     *types.BuildResult `json:"result"`
}

// Review runs a general or targeted review and saves it to the result log.
func (s *Service) Review(ctx context.Context, req ReviewRequest) (*ReviewOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if s.Reviewer == nil {
		return nil, fmt.Errorf("workflow: no reviewer configured")
	}

	meta := results.Metadata{Timestamp: results.Timestamp(s.now())}
	resume, err := s.loadResume(req, &meta)
	if err != nil {
		return nil, err
	}
	companyText, jobText, err := s.loadTarget(req.Company, req.Job, &meta)
	if err != nil {
		return nil, err
	}
	meta.Type = results.GetResultType(meta.Company != "", meta.Job != "", false)

	var result types.Result
	if meta.Type == results.TypeGeneral {
		result, err = s.Reviewer.Review(ctx, resume)
	} else {
		result, err = s.Reviewer.ReviewForTarget(ctx, resume, companyText, jobText)
	}
	if err != nil {
		return nil, err
	}

	path, err := s.Results.SaveResult(meta, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return &ReviewOutcome{
		Path:     path,
		Filename: filepath.Base(path),
		Metadata: meta,
		Result:   result,
	}, nil
}

// ReviewAllJobs reviews the person's profile against every job of company,
// at most concurrency at a time. The first failure cancels the remaining
// reviews; outcomes are returned in job order.
func (s *Service) ReviewAllJobs(ctx context.Context, person, company string, concurrency int) ([]*ReviewOutcome, error) {
	if _, err := s.Store.GetPerson(person); err != nil {
		return nil, err
	}
	jobs, err := s.Store.ListJobs(company)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		if _, err := s.Store.GetCompany(company); err != nil {
			return nil, err
		}
		return []*ReviewOutcome{}, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]*ReviewOutcome, len(jobs))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			outcome, err := s.Review(gCtx, ReviewRequest{Person: person, Company: job.Company, Job: job.Name})
			s.emit(ProgressEvent{Step: job.Company + "/" + job.Name, Message: "reviewed", Err: err})
			if err != nil {
				return fmt.Errorf("review of %s/%s failed: %w", job.Company, job.Name, err)
			}
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Build generates a tailored resume, saves it under the person and then
// records the build in the result log.
func (s *Service) Build(ctx context.Context, req BuildRequest) (*BuildOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if s.Builder == nil {
		return nil, fmt.Errorf("workflow: no builder configured")
	}

	meta := results.Metadata{Type: results.TypeBuild, Timestamp: results.Timestamp(s.now())}
	person, err := s.Store.GetPerson(req.Person)
	if err != nil {
		return nil, err
	}
	profile, err := s.Store.GetPersonContent(person.Name)
	if err != nil {
		return nil, err
	}
	meta.Person, meta.PersonFile = person.Name, s.rel(person.ProfileFile)

	companyText, jobText, err := s.loadTarget(req.Company, req.Job, &meta)
	if err != nil {
		return nil, err
	}

	result, err := s.Builder.Build(ctx, profile, companyText, jobText)
	if err != nil {
		return nil, err
	}

	// The resume goes first so the log never records a build whose resume
	// was not written.
	resumePath, err := s.Store.SaveResume(meta.Person, meta.Company, meta.Job, result.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	resultPath, err := s.Results.SaveResult(meta, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save build result (resume saved at %s): %w", resumePath, err)
	}
	return &BuildOutcome{
		ResultPath: resultPath,
		ResumePath: resumePath,
		Metadata:   meta,
		Result:     result,
	}, nil
}

// ImportJob fetches a posting from url and files it as a new job under an
// existing company. The job file keeps the template's heading and gains a
// source line followed by the posting text.
func (s *Service) ImportJob(ctx context.Context, company, title, url string, opts *fetch.Options) (*project.Job, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &RequestError{Message: "url is required"}
	}
	if _, err := s.Store.GetCompany(company); err != nil {
		return nil, err
	}
	if s.Store.JobExists(company, title) {
		return nil, &project.AlreadyExistsError{Kind: project.KindJob, Name: slug.Slugify(company) + "/" + slug.Slugify(title)}
	}

	fetcher := s.Fetch
	if fetcher == nil {
		fetcher = fetch.JobPostingMarkdown
	}
	text, err := fetcher(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	job, err := s.Store.AddJob(company, title)
	if err != nil {
		return nil, err
	}
	template, err := s.Store.GetJobContent(job.Company, job.Name)
	if err != nil {
		return nil, err
	}
	heading, _, _ := strings.Cut(template, "\n")
	content := fmt.Sprintf("%s\n\nSource: %s\n\n%s\n", heading, url, strings.TrimSpace(text))
	if err := s.Store.UpdateJobContent(job.Company, job.Name, content); err != nil {
		return nil, err
	}
	return job, nil
}

// ImportProfile replaces an existing person's profile with markdown generated
// from text.
func (s *Service) ImportProfile(ctx context.Context, person, text string) (*project.Person, error) {
	if s.Importer == nil {
		return nil, fmt.Errorf("workflow: no importer configured")
	}
	p, err := s.Store.GetPerson(person)
	if err != nil {
		return nil, err
	}
	profile, err := s.Importer.ProfileFromText(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := s.Store.UpdatePersonContent(p.Name, profile); err != nil {
		return nil, err
	}
	return p, nil
}

// loadResume reads the text under review and records its source in meta.
func (s *Service) loadResume(req ReviewRequest, meta *results.Metadata) (string, error) {
	person, err := s.Store.GetPerson(req.Person)
	if err != nil {
		return "", err
	}
	meta.Person = person.Name

	if req.Resume == "" {
		meta.PersonFile = s.rel(person.ProfileFile)
		return s.Store.GetPersonContent(person.Name)
	}

	resume, err := s.Store.GetResume(person.Name, req.Resume)
	if err != nil {
		return "", err
	}
	meta.PersonFile = s.rel(resume.Path)
	return s.Store.GetResumeContent(person.Name, resume.Name)
}

// loadTarget reads optional company and job context and records them in meta.
func (s *Service) loadTarget(company, job string, meta *results.Metadata) (string, string, error) {
	if company == "" {
		return "", "", nil
	}
	c, err := s.Store.GetCompany(company)
	if err != nil {
		return "", "", err
	}
	companyText, err := s.Store.GetCompanyContent(c.Name)
	if err != nil {
		return "", "", err
	}
	meta.Company, meta.CompanyFile = c.Name, s.rel(c.ProfileFile)

	if job == "" {
		return companyText, "", nil
	}
	j, err := s.Store.GetJob(c.Name, job)
	if err != nil {
		return "", "", err
	}
	jobText, err := s.Store.GetJobContent(j.Company, j.Name)
	if err != nil {
		return "", "", err
	}
	meta.Job, meta.JobFile = j.Name, s.rel(j.File)
	return companyText, jobText, nil
}

// rel returns path relative to the project root in slash form.
func (s *Service) rel(path string) string {
	root := s.Store.Config().ProjectRoot
	if r, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return filepath.ToSlash(path)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) emit(event ProgressEvent) {
	if s.OnProgress != nil {
		s.OnProgress(event)
	}
}

func validateRequest(req any) error {
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return &RequestError{Message: "missing or conflicting fields", Cause: err}
	}
	return nil
}
