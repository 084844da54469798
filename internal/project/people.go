package project

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	personProfileFile = "person.md"
	resumesDirName    = "resumes"
)

// Person is a candidate whose career record lives in person.md.
type Person struct {
	Name             string `json:"name"`
	Directory        string `json:"directory"`
	ProfileFile      string `json:"profileFile"`
	ResumesDirectory string `json:"resumesDirectory"`
}

func (m *Manager) person(name string) Person {
	dir := filepath.Join(m.paths.People, name)
	return Person{
		Name:             name,
		Directory:        dir,
		ProfileFile:      filepath.Join(dir, personProfileFile),
		ResumesDirectory: filepath.Join(dir, resumesDirName),
	}
}

// ListPeople returns every person directory that has a profile file.
func (m *Manager) ListPeople() ([]Person, error) {
	names, err := subdirs(m.paths.People)
	if err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(names))
	for _, name := range names {
		p := m.person(name)
		if !isFile(p.ProfileFile) {
			continue
		}
		people = append(people, p)
	}
	return people, nil
}

// PersonExists reports whether the person directory for name exists.
func (m *Manager) PersonExists(name string) bool {
	s, err := slugFor(KindPerson, name)
	if err != nil {
		return false
	}
	return isDir(m.person(s).Directory)
}

// GetPerson returns the descriptor for an existing person.
func (m *Manager) GetPerson(name string) (*Person, error) {
	s, err := slugFor(KindPerson, name)
	if err != nil {
		return nil, &NotFoundError{Kind: KindPerson, Name: name}
	}
	p := m.person(s)
	if !isFile(p.ProfileFile) {
		return nil, &NotFoundError{Kind: KindPerson, Name: s}
	}
	return &p, nil
}

// AddPerson creates people/<slug>/ with a resumes/ directory and a profile
// generated from the person template, with [Name] replaced by name.
func (m *Manager) AddPerson(name string) (*Person, error) {
	s, err := slugFor(KindPerson, name)
	if err != nil {
		return nil, err
	}
	p := m.person(s)
	if exists(p.Directory) {
		return nil, &AlreadyExistsError{Kind: KindPerson, Name: s}
	}

	template, err := m.template(PersonTemplateFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.ResumesDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create person directory: %w", err)
	}
	if err := writeFile(p.ProfileFile, fillTemplate(template, PlaceholderName, name)); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPersonContent returns the person's profile markdown.
func (m *Manager) GetPersonContent(name string) (string, error) {
	s, err := slugFor(KindPerson, name)
	if err != nil {
		return "", &NotFoundError{Kind: KindPerson, Name: name}
	}
	return readEntity(KindPerson, s, m.person(s).ProfileFile)
}

// UpdatePersonContent overwrites the profile. The person directory must
// already exist; nothing is created.
func (m *Manager) UpdatePersonContent(name, content string) error {
	s, err := slugFor(KindPerson, name)
	if err != nil {
		return &NotFoundError{Kind: KindPerson, Name: name}
	}
	p := m.person(s)
	if !isDir(p.Directory) {
		return &NotFoundError{Kind: KindPerson, Name: s}
	}
	return writeFile(p.ProfileFile, content)
}
