package server

import (
	"net/http"

	"github.com/jonathan/resume-reviewer/internal/workflow"
)

type reviewJobsRequest struct {
	Person      string `json:"person" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Concurrency int    `json:"concurrency,omitempty" validate:"omitempty,min=1,max=10"`
}

type importProfileRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if s.service.Reviewer == nil {
		s.failure(w, ErrAgentsUnavailable)
		return
	}
	var req workflow.ReviewRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	outcome, err := s.service.Review(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, outcome)
}

func (s *Server) handleReviewAllJobs(w http.ResponseWriter, r *http.Request) {
	if s.service.Reviewer == nil {
		s.failure(w, ErrAgentsUnavailable)
		return
	}
	var req reviewJobsRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	outcomes, err := s.service.ReviewAllJobs(r.Context(), req.Person, req.Company, req.Concurrency)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, outcomes)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if s.service.Builder == nil {
		s.failure(w, ErrAgentsUnavailable)
		return
	}
	var req workflow.BuildRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	outcome, err := s.service.Build(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, outcome)
}

func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	if s.service.Importer == nil {
		s.failure(w, ErrAgentsUnavailable)
		return
	}
	var req importProfileRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	person, err := s.service.ImportProfile(r.Context(), r.PathValue("name"), req.Text)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, person)
}
