package results

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
	"github.com/jonathan/resume-reviewer/internal/types"
)

const markdownExt = ".md"

// SavedResult is a result document found on disk.
type SavedResult struct {
	Metadata
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// ResultWithContent is a loaded result with its raw document and body. The
// markdown body is the persisted form of the result; structured agent output
// is not reconstructed from it.
type ResultWithContent struct {
	SavedResult
	Content string `json:"content"`
	Body    string `json:"body"`
}

// Manager stores results in the project's results directory. Results are
// written once and never updated or deleted.
type Manager struct {
	dir    string
	now    func() time.Time
	suffix func() string
}

// Option customizes a Manager during construction.
type Option func(*Manager)

// WithClock overrides the clock used for default timestamps.
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

// NewManager builds a result log over cfg.
func NewManager(cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		dir:    config.Paths(cfg).Results,
		now:    time.Now,
		suffix: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the results directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Timestamp formats t in TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SaveResult renders result under meta's frontmatter and writes it to the
// results directory. Missing Timestamp and Type are filled from the clock and
// GetResultType. A filename already taken gets a random suffix rather than
// being overwritten.
func (m *Manager) SaveResult(meta Metadata, result types.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("results: result is required")
	}
	if meta.Timestamp == "" {
		meta.Timestamp = Timestamp(m.now())
	}
	if meta.Type == "" {
		meta.Type = GetResultType(meta.Company != "", meta.Job != "", result.Kind() == types.KindBuild)
	}
	if !meta.Type.Valid() {
		return "", fmt.Errorf("results: unknown result type %q", meta.Type)
	}
	// Names become part of the filename, so they must stay inside the
	// results directory.
	for _, field := range []struct{ name, value string }{
		{"person", meta.Person},
		{"company", meta.Company},
		{"job", meta.Job},
	} {
		if field.value != "" && !slug.IsSlug(field.value) {
			return "", fmt.Errorf("results: %s %q is not a slug", field.name, field.value)
		}
	}

	body, err := RenderBody(meta.Type, result)
	if err != nil {
		return "", err
	}
	content, err := WriteFrontMatter(meta, []byte(body))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	filename := GenerateFilename(meta)
	path := filepath.Join(m.dir, filename)
	written, err := writeExclusive(path, content)
	for err == nil && !written {
		stem := strings.TrimSuffix(filename, markdownExt)
		path = filepath.Join(m.dir, stem+"-"+m.suffix()+markdownExt)
		written, err = writeExclusive(path, content)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// ListResults returns results matching filters, newest first. Files without
// valid frontmatter are skipped.
func (m *Manager) ListResults(filters Filters) ([]SavedResult, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SavedResult{}, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	saved := make([]SavedResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != markdownExt {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		meta, _, err := ParseFrontMatter(data)
		if err != nil || !filters.match(meta) {
			continue
		}
		saved = append(saved, SavedResult{Metadata: meta, Filename: entry.Name(), Path: path})
	}

	sort.SliceStable(saved, func(i, j int) bool {
		return saved[i].Timestamp > saved[j].Timestamp
	})
	return saved, nil
}

// LoadResult reads one result by filename. It returns nil without error when
// the file is absent or its frontmatter is invalid.
func (m *Manager) LoadResult(filename string) (*ResultWithContent, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, nil
	}
	if filepath.Ext(filename) != markdownExt {
		filename += markdownExt
	}
	path := filepath.Join(m.dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read result %s: %w", filename, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, nil
	}
	return &ResultWithContent{
		SavedResult: SavedResult{Metadata: meta, Filename: filename, Path: path},
		Content:     string(data),
		Body:        string(body),
	}, nil
}

// writeExclusive creates path with content, reporting false if it already exists.
func writeExclusive(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create result file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write result file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close result file: %w", err)
	}
	return true, nil
}
