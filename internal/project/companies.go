package project

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	companyProfileFile = "company.md"
	jobsDirName        = "jobs"
)

// Company is an employer profile plus the job postings filed under it.
type Company struct {
	Name          string   `json:"name"`
	Directory     string   `json:"directory"`
	ProfileFile   string   `json:"profileFile"`
	JobsDirectory string   `json:"jobsDirectory"`
	Jobs          []string `json:"jobs"`
}

// Job is a posting identified by the pair (company slug, job slug).
type Job struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	File    string `json:"file"`
}

func (m *Manager) company(name string) Company {
	dir := filepath.Join(m.paths.Companies, name)
	return Company{
		Name:          name,
		Directory:     dir,
		ProfileFile:   filepath.Join(dir, companyProfileFile),
		JobsDirectory: filepath.Join(dir, jobsDirName),
		Jobs:          []string{},
	}
}

func (m *Manager) job(company, name string) Job {
	return Job{
		Company: company,
		Name:    name,
		File:    filepath.Join(m.paths.Companies, company, jobsDirName, name+markdownExt),
	}
}

// ListCompanies returns every company directory with its job slugs.
func (m *Manager) ListCompanies() ([]Company, error) {
	names, err := subdirs(m.paths.Companies)
	if err != nil {
		return nil, err
	}
	companies := make([]Company, 0, len(names))
	for _, name := range names {
		c := m.company(name)
		jobs, err := markdownStems(c.JobsDirectory)
		if err != nil {
			return nil, err
		}
		c.Jobs = jobs
		companies = append(companies, c)
	}
	return companies, nil
}

// CompanyExists reports whether the company directory for name exists.
func (m *Manager) CompanyExists(name string) bool {
	s, err := slugFor(KindCompany, name)
	if err != nil {
		return false
	}
	return isDir(m.company(s).Directory)
}

// GetCompany returns the descriptor for an existing company.
func (m *Manager) GetCompany(name string) (*Company, error) {
	s, err := slugFor(KindCompany, name)
	if err != nil {
		return nil, &NotFoundError{Kind: KindCompany, Name: name}
	}
	c := m.company(s)
	if !isDir(c.Directory) {
		return nil, &NotFoundError{Kind: KindCompany, Name: s}
	}
	jobs, err := markdownStems(c.JobsDirectory)
	if err != nil {
		return nil, err
	}
	c.Jobs = jobs
	return &c, nil
}

// AddCompany creates companies/<slug>/ with a jobs/ directory and a profile
// generated from the company template.
func (m *Manager) AddCompany(name string) (*Company, error) {
	s, err := slugFor(KindCompany, name)
	if err != nil {
		return nil, err
	}
	c := m.company(s)
	if exists(c.Directory) {
		return nil, &AlreadyExistsError{Kind: KindCompany, Name: s}
	}

	template, err := m.template(CompanyTemplateFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.JobsDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create company directory: %w", err)
	}
	if err := writeFile(c.ProfileFile, fillTemplate(template, PlaceholderCompany, name)); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompanyContent returns the company profile markdown.
func (m *Manager) GetCompanyContent(name string) (string, error) {
	s, err := slugFor(KindCompany, name)
	if err != nil {
		return "", &NotFoundError{Kind: KindCompany, Name: name}
	}
	return readEntity(KindCompany, s, m.company(s).ProfileFile)
}

// UpdateCompanyContent overwrites the company profile. The company directory
// must already exist.
func (m *Manager) UpdateCompanyContent(name, content string) error {
	s, err := slugFor(KindCompany, name)
	if err != nil {
		return &NotFoundError{Kind: KindCompany, Name: name}
	}
	c := m.company(s)
	if !isDir(c.Directory) {
		return &NotFoundError{Kind: KindCompany, Name: s}
	}
	return writeFile(c.ProfileFile, content)
}

// ListJobs returns the postings filed under a company. A missing company or
// jobs directory yields an empty list.
func (m *Manager) ListJobs(companyName string) ([]Job, error) {
	s := slugOrEmpty(companyName)
	if s == "" {
		return []Job{}, nil
	}
	stems, err := markdownStems(m.company(s).JobsDirectory)
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(stems))
	for _, stem := range stems {
		jobs = append(jobs, m.job(s, stem))
	}
	return jobs, nil
}

// JobExists reports whether the job file exists under the company.
func (m *Manager) JobExists(companyName, jobName string) bool {
	c, j := slugOrEmpty(companyName), slugOrEmpty(jobName)
	if c == "" || j == "" {
		return false
	}
	return isFile(m.job(c, j).File)
}

// AddJob files a new posting under an existing company using the job template.
func (m *Manager) AddJob(companyName, jobTitle string) (*Job, error) {
	cs, err := slugFor(KindCompany, companyName)
	if err != nil {
		return nil, err
	}
	js, err := slugFor(KindJob, jobTitle)
	if err != nil {
		return nil, err
	}

	c := m.company(cs)
	if !isDir(c.Directory) {
		return nil, &NotFoundError{Kind: KindCompany, Name: cs}
	}
	j := m.job(cs, js)
	if exists(j.File) {
		return nil, &AlreadyExistsError{Kind: KindJob, Name: cs + "/" + js}
	}

	template, err := m.template(JobTemplateFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.JobsDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create jobs directory: %w", err)
	}
	content := fillTemplate(template,
		PlaceholderJobTitle, jobTitle,
		PlaceholderCompany, companyName,
	)
	if err := writeFile(j.File, content); err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJob returns the descriptor for an existing job.
func (m *Manager) GetJob(companyName, jobName string) (*Job, error) {
	c, j := slugOrEmpty(companyName), slugOrEmpty(jobName)
	if c == "" || j == "" {
		return nil, &NotFoundError{Kind: KindJob, Name: companyName + "/" + jobName}
	}
	job := m.job(c, j)
	if !isFile(job.File) {
		return nil, &NotFoundError{Kind: KindJob, Name: c + "/" + j}
	}
	return &job, nil
}

// GetJobContent returns the job posting markdown.
func (m *Manager) GetJobContent(companyName, jobName string) (string, error) {
	c, j := slugOrEmpty(companyName), slugOrEmpty(jobName)
	id := companyName + "/" + jobName
	if c == "" || j == "" {
		return "", &NotFoundError{Kind: KindJob, Name: id}
	}
	return readEntity(KindJob, c+"/"+j, m.job(c, j).File)
}

// UpdateJobContent overwrites an existing job posting. The file itself must
// exist.
func (m *Manager) UpdateJobContent(companyName, jobName, content string) error {
	c, j := slugOrEmpty(companyName), slugOrEmpty(jobName)
	if c == "" || j == "" {
		return &NotFoundError{Kind: KindJob, Name: companyName + "/" + jobName}
	}
	job := m.job(c, j)
	if !isFile(job.File) {
		return &NotFoundError{Kind: KindJob, Name: c + "/" + j}
	}
	return writeFile(job.File, content)
}
