package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-reviewer/internal/fetch"
)

// addJobRequest creates a job from the template, or imports the posting
// when URL is set.
type addJobRequest struct {
	Title      string `json:"title" validate:"required"`
	URL        string `json:"url,omitempty" validate:"omitempty,url"`
	UseBrowser bool   `json:"useBrowser,omitempty"`
	TimeoutSec int    `json:"timeoutSec,omitempty" validate:"omitempty,min=1,max=300"`
}

func (s *Server) handleListCompanies(w http.ResponseWriter, _ *http.Request) {
	companies, err := s.store().ListCompanies()
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, companies)
}

func (s *Server) handleAddCompany(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	company, err := s.store().AddCompany(req.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, company)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.store().GetCompany(r.PathValue("name"))
	if err != nil {
		s.failure(w, err)
		return
	}
	content, err := s.store().GetCompanyContent(company.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entityResponse{Entity: company, Content: content})
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	name := r.PathValue("name")
	if err := s.store().UpdateCompanyContent(name, *req.Content); err != nil {
		s.failure(w, err)
		return
	}
	company, err := s.store().GetCompany(name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	company, err := s.store().GetCompany(r.PathValue("name"))
	if err != nil {
		s.failure(w, err)
		return
	}
	jobs, err := s.store().ListJobs(company.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleAddJob(w http.ResponseWriter, r *http.Request) {
	var req addJobRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	company := r.PathValue("name")

	if strings.TrimSpace(req.URL) == "" {
		job, err := s.store().AddJob(company, req.Title)
		if err != nil {
			s.failure(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, job)
		return
	}

	opts := fetch.DefaultOptions()
	opts.UseBrowser = req.UseBrowser
	if req.TimeoutSec > 0 {
		opts.Timeout = time.Duration(req.TimeoutSec) * time.Second
	}
	job, err := s.service.ImportJob(r.Context(), company, req.Title, req.URL, opts)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	company, name := r.PathValue("name"), r.PathValue("job")
	job, err := s.store().GetJob(company, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	content, err := s.store().GetJobContent(company, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entityResponse{Entity: job, Content: content})
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	company, name := r.PathValue("name"), r.PathValue("job")
	if err := s.store().UpdateJobContent(company, name, *req.Content); err != nil {
		s.failure(w, err)
		return
	}
	job, err := s.store().GetJob(company, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}
