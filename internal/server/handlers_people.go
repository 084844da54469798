package server

import (
	"net/http"
)

// contentRequest carries a full markdown replacement for an entity file.
type contentRequest struct {
	Content *string `json:"content" validate:"required"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

type entityResponse struct {
	Entity  any    `json:"entity"`
	Content string `json:"content"`
}

func (s *Server) handleListPeople(w http.ResponseWriter, _ *http.Request) {
	people, err := s.store().ListPeople()
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, people)
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	person, err := s.store().AddPerson(req.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, person)
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := s.store().GetPerson(r.PathValue("name"))
	if err != nil {
		s.failure(w, err)
		return
	}
	content, err := s.store().GetPersonContent(person.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entityResponse{Entity: person, Content: content})
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	name := r.PathValue("name")
	if err := s.store().UpdatePersonContent(name, *req.Content); err != nil {
		s.failure(w, err)
		return
	}
	person, err := s.store().GetPerson(name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, person)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	person, err := s.store().GetPerson(r.PathValue("name"))
	if err != nil {
		s.failure(w, err)
		return
	}
	resumes, err := s.store().ListResumes(person.Name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	person, name := r.PathValue("name"), r.PathValue("resume")
	resume, err := s.store().GetResume(person, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	content, err := s.store().GetResumeContent(person, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entityResponse{Entity: resume, Content: content})
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	person, name := r.PathValue("name"), r.PathValue("resume")
	if err := s.store().UpdateResumeContent(person, name, *req.Content); err != nil {
		s.failure(w, err)
		return
	}
	resume, err := s.store().GetResume(person, name)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}
