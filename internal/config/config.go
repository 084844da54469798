// Package config resolves the project root and derives the resume-data layout.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-reviewer/internal/slug"
)

const (
	// FileName is the project config file searched for in parent directories.
	FileName = "resume-reviewer.config.json"

	// DataDirName is the directory under the project root that holds all entities.
	DataDirName = "resume-data"

	// EnvProjectRoot overrides project root resolution when set.
	EnvProjectRoot = "RESUME_REVIEWER_ROOT"
	// EnvDefaultPerson supplies the default person slug alongside EnvProjectRoot.
	EnvDefaultPerson = "RESUME_REVIEWER_PERSON"
)

// Config is the resolved project configuration.
type Config struct {
	ProjectRoot   string `json:"projectRoot" validate:"required"`
	DefaultPerson string `json:"defaultPerson,omitempty"`
}

// fileConfig mirrors the on-disk config file; all fields are optional there.
type fileConfig struct {
	ProjectRoot   *string `json:"projectRoot,omitempty"`
	DefaultPerson string  `json:"defaultPerson,omitempty"`
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if !filepath.IsAbs(c.ProjectRoot) {
		return fmt.Errorf("config error: 'projectRoot' must be absolute, got %s", c.ProjectRoot)
	}
	if c.DefaultPerson != "" && !slug.IsSlug(c.DefaultPerson) {
		return fmt.Errorf("config error: 'defaultPerson' must be a slug, got %q", c.DefaultPerson)
	}
	return nil
}

// ProjectPaths holds the fixed directory layout under a project root.
type ProjectPaths struct {
	Root      string `json:"root"`
	Data      string `json:"data"`
	People    string `json:"people"`
	Companies string `json:"companies"`
	Results   string `json:"results"`
	Templates string `json:"templates"`
}

// Paths derives the data directories for cfg. It performs no IO; the
// directories may not exist yet.
func Paths(cfg *Config) ProjectPaths {
	data := filepath.Join(cfg.ProjectRoot, DataDirName)
	return ProjectPaths{
		Root:      cfg.ProjectRoot,
		Data:      data,
		People:    filepath.Join(data, "people"),
		Companies: filepath.Join(data, "companies"),
		Results:   filepath.Join(data, "results"),
		Templates: filepath.Join(data, "templates"),
	}
}

// FilePath returns the location of the project config file for cfg.
func FilePath(cfg *Config) string {
	return filepath.Join(cfg.ProjectRoot, FileName)
}

// LoadFile parses the config file at path. A missing projectRoot resolves to
// the file's own directory; a relative one is resolved against it.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, &LoadError{Message: "config path is empty"}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Message: "failed to resolve config path", Cause: err}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read config file %s", absPath), Cause: err}
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, &LoadError{Message: "failed to parse config JSON", Cause: err}
	}

	dir := filepath.Dir(absPath)
	root := dir
	if fc.ProjectRoot != nil && *fc.ProjectRoot != "" {
		root = *fc.ProjectRoot
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
	}

	return &Config{
		ProjectRoot:   filepath.Clean(root),
		DefaultPerson: fc.DefaultPerson,
	}, nil
}

// Save writes cfg as pretty-printed JSON to FileName inside targetDir and
// returns the written path. The stored projectRoot is made relative to
// targetDir when the root lies inside it.
func Save(cfg *Config, targetDir string) (string, error) {
	if targetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		targetDir = cwd
	}

	root := cfg.ProjectRoot
	if absTarget, err := filepath.Abs(targetDir); err == nil && filepath.IsAbs(root) {
		if rel, relErr := filepath.Rel(absTarget, root); relErr == nil && !startsWithParent(rel) {
			root = rel
		}
	}
	if root == "" {
		root = "."
	}

	payload := fileConfig{ProjectRoot: &root, DefaultPerson: cfg.DefaultPerson}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(targetDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

func startsWithParent(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
