// Package project implements the local project document store: people,
// companies, job postings, and generated resumes kept as markdown files under
// the resume-data directory.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/slug"
)

const markdownExt = ".md"

// Manager performs CRUD over the entity tree rooted at a resolved config.
// It assumes a single process owns the project root.
type Manager struct {
	cfg    *config.Config
	paths  config.ProjectPaths
	now    func() time.Time
	suffix func() string
}

// Option customizes a Manager during construction.
type Option func(*Manager)

// WithClock overrides the clock used for resume timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.now = clock
	}
}

// WithSuffix overrides the disambiguator appended to colliding filenames.
func WithSuffix(suffix func() string) Option {
	return func(m *Manager) {
		m.suffix = suffix
	}
}

// NewManager builds a store over cfg.
func NewManager(cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:    cfg,
		paths:  config.Paths(cfg),
		now:    time.Now,
		suffix: ShortID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ShortID returns an 8 character random identifier.
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Paths returns the derived project layout.
func (m *Manager) Paths() config.ProjectPaths {
	return m.paths
}

// Config returns the configuration the store was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// InitResult lists the paths Init created and the ones that already existed.
type InitResult struct {
	Created []string `json:"created"`
	Existed []string `json:"existed"`
}

// Init ensures the data directories, the template files, and the root config
// file exist. Existing content is never overwritten, so calling Init again is
// a no-op.
func (m *Manager) Init() (*InitResult, error) {
	result := &InitResult{Created: []string{}, Existed: []string{}}

	dirs := []string{m.paths.People, m.paths.Companies, m.paths.Results, m.paths.Templates}
	for _, dir := range dirs {
		if isDir(dir) {
			result.Existed = append(result.Existed, dir)
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		result.Created = append(result.Created, dir)
	}

	for _, name := range templateOrder {
		path := filepath.Join(m.paths.Templates, name)
		created, err := writeIfAbsent(path, defaultTemplates[name])
		if err != nil {
			return nil, err
		}
		if created {
			result.Created = append(result.Created, path)
		} else {
			result.Existed = append(result.Existed, path)
		}
	}

	configPath := config.FilePath(m.cfg)
	if exists(configPath) {
		result.Existed = append(result.Existed, configPath)
	} else {
		if _, err := config.Save(m.cfg, m.cfg.ProjectRoot); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, configPath)
	}

	return result, nil
}

// template returns the user's template from the templates directory when
// present, otherwise the built-in default.
func (m *Manager) template(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(m.paths.Templates, name))
	if err == nil {
		return string(data), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return defaultTemplates[name], nil
	}
	return "", fmt.Errorf("failed to read template %s: %w", name, err)
}

// slugFor slugifies a user-supplied name, rejecting names with no usable characters.
func slugFor(kind Kind, name string) (string, error) {
	s := slug.Slugify(name)
	if s == "" {
		return "", &InvalidNameError{Kind: kind, Input: name}
	}
	return s, nil
}

// slugOrEmpty slugifies a lookup key; "" means the key cannot name an entity.
func slugOrEmpty(name string) string {
	return slug.Slugify(name)
}

// readEntity reads path verbatim, mapping a missing file to NotFoundError.
func readEntity(kind Kind, name, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Kind: kind, Name: name}
		}
		return "", fmt.Errorf("failed to read %s %s: %w", kind, name, err)
	}
	return string(data), nil
}

// writeFile overwrites path with content.
func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeIfAbsent writes content to path unless something is already there.
func writeIfAbsent(path, content string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return true, nil
}

// subdirs lists the names of immediate subdirectories of dir, sorted. A
// missing dir yields an empty list.
func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// markdownStems lists the *.md files in dir without their extension, sorted.
func markdownStems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	stems := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != markdownExt {
			continue
		}
		stems = append(stems, strings.TrimSuffix(entry.Name(), markdownExt))
	}
	sort.Strings(stems)
	return stems, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
