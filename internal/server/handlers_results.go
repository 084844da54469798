package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/slug"
)

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := results.Filters{Type: results.ResultType(q.Get("type"))}
	if filters.Type != "" && !filters.Type.Valid() {
		s.failure(w, &ErrValidation{Field: "type", Message: fmt.Sprintf("unknown result type %q", filters.Type)})
		return
	}
	if person := q.Get("person"); person != "" {
		filters.Person = slug.Slugify(person)
	}
	if company := q.Get("company"); company != "" {
		filters.Company = slug.Slugify(company)
	}

	saved, err := s.service.Results.ListResults(filters)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	result, err := s.service.Results.LoadResult(filename)
	if err != nil {
		s.failure(w, err)
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "result not found: "+filename)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
