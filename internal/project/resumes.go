package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResumeTimestampLayout is the second-precision UTC timestamp used in resume
// filenames (ISO-8601 with ':' replaced by '-').
const ResumeTimestampLayout = "2006-01-02T15-04-05"

// Resume is a generated resume owned by a person.
type Resume struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// ResumeFilename builds "{company}_{job}_{timestamp}.md" for the given stamp.
func ResumeFilename(company, job, timestamp string) string {
	return fmt.Sprintf("%s_%s_%s%s", company, job, timestamp, markdownExt)
}

// SaveResume writes content into the person's resumes directory under a
// timestamped filename and returns its path. A filename that is already taken
// gets a short random suffix instead of being overwritten.
func (m *Manager) SaveResume(personName, companyName, jobName, content string) (string, error) {
	ps, err := slugFor(KindPerson, personName)
	if err != nil {
		return "", err
	}
	cs, err := slugFor(KindCompany, companyName)
	if err != nil {
		return "", err
	}
	js, err := slugFor(KindJob, jobName)
	if err != nil {
		return "", err
	}

	dir := m.person(ps).ResumesDirectory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create resumes directory: %w", err)
	}

	stamp := m.now().UTC().Format(ResumeTimestampLayout)
	path := filepath.Join(dir, ResumeFilename(cs, js, stamp))
	created, err := writeIfAbsent(path, content)
	if err != nil {
		return "", err
	}
	for !created {
		path = filepath.Join(dir, ResumeFilename(cs, js, stamp+"-"+m.suffix()))
		if created, err = writeIfAbsent(path, content); err != nil {
			return "", err
		}
	}
	return path, nil
}

// ListResumes returns the person's resumes sorted by name. A person without
// a resumes directory has none.
func (m *Manager) ListResumes(personName string) ([]Resume, error) {
	ps := slugOrEmpty(personName)
	if ps == "" {
		return []Resume{}, nil
	}
	dir := m.person(ps).ResumesDirectory
	stems, err := markdownStems(dir)
	if err != nil {
		return nil, err
	}
	resumes := make([]Resume, 0, len(stems))
	for _, stem := range stems {
		resumes = append(resumes, m.resume(ps, stem))
	}
	return resumes, nil
}

// GetResume returns the descriptor for an existing resume.
func (m *Manager) GetResume(personName, resumeName string) (*Resume, error) {
	r, ok := m.lookupResume(personName, resumeName)
	if !ok || !isFile(r.Path) {
		return nil, &NotFoundError{Kind: KindResume, Name: personName + "/" + resumeName}
	}
	return &r, nil
}

// GetResumeContent reads a resume by its filename stem.
func (m *Manager) GetResumeContent(personName, resumeName string) (string, error) {
	r, ok := m.lookupResume(personName, resumeName)
	if !ok {
		return "", &NotFoundError{Kind: KindResume, Name: personName + "/" + resumeName}
	}
	return readEntity(KindResume, r.Owner+"/"+r.Name, r.Path)
}

// UpdateResumeContent overwrites an existing resume. The file must exist.
func (m *Manager) UpdateResumeContent(personName, resumeName, content string) error {
	r, ok := m.lookupResume(personName, resumeName)
	if !ok || !isFile(r.Path) {
		return &NotFoundError{Kind: KindResume, Name: personName + "/" + resumeName}
	}
	return writeFile(r.Path, content)
}

func (m *Manager) resume(owner, name string) Resume {
	filename := name + markdownExt
	return Resume{
		Owner:    owner,
		Name:     name,
		Filename: filename,
		Path:     filepath.Join(m.person(owner).ResumesDirectory, filename),
	}
}

// lookupResume resolves a resume reference, rejecting names that would
// escape the resumes directory. A trailing .md is accepted.
func (m *Manager) lookupResume(personName, resumeName string) (Resume, bool) {
	ps := slugOrEmpty(personName)
	name := strings.TrimSuffix(resumeName, markdownExt)
	if ps == "" || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return Resume{}, false
	}
	return m.resume(ps, name), true
}
