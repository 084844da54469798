package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies which resolution step produced a Config.
type Source string

const (
	// SourceEnv means the root came from EnvProjectRoot.
	SourceEnv Source = "env"
	// SourceFile means the root came from a discovered config file.
	SourceFile Source = "file"
	// SourceDefault means the built-in default root was used.
	SourceDefault Source = "default"
)

// Resolution is the outcome of Resolver.Resolve.
type Resolution struct {
	Config   *Config
	Source   Source
	File     string   // config file used when Source is SourceFile
	Warnings []string // config files that were found but skipped
}

// Resolver determines the project root. Build one per process with
// NewResolver and pass the resulting Config to the stores; tests construct
// Resolver directly with injected values.
type Resolver struct {
	// WorkDir is where the upward config file search starts.
	WorkDir string
	// Getenv looks up environment overrides. Nil disables them.
	Getenv func(string) string
	// DefaultRoot is used when nothing else matches. Empty means WorkDir.
	DefaultRoot string
}

// NewResolver captures the current working directory and process environment.
func NewResolver() (*Resolver, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return &Resolver{WorkDir: cwd, Getenv: os.Getenv}, nil
}

// Load resolves the configuration, ignoring provenance.
func (r *Resolver) Load() (*Config, error) {
	res, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Resolve applies, in order: the environment override, the nearest config
// file in WorkDir or its parents, and the default root.
func (r *Resolver) Resolve() (*Resolution, error) {
	workDir, err := filepath.Abs(r.WorkDir)
	if err != nil {
		return nil, &LoadError{Message: "failed to resolve working directory", Cause: err}
	}

	if r.Getenv != nil {
		if root := r.Getenv(EnvProjectRoot); root != "" {
			if !filepath.IsAbs(root) {
				root = filepath.Join(workDir, root)
			}
			return &Resolution{
				Config: &Config{
					ProjectRoot:   filepath.Clean(root),
					DefaultPerson: r.Getenv(EnvDefaultPerson),
				},
				Source: SourceEnv,
			}, nil
		}
	}

	res := &Resolution{}
	if path, ok := findUp(workDir, FileName); ok {
		cfg, loadErr := LoadFile(path)
		if loadErr == nil {
			res.Config = cfg
			res.Source = SourceFile
			res.File = path
			return res, nil
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("ignoring %s: %v", path, loadErr))
	}

	root := r.DefaultRoot
	if root == "" {
		root = workDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}
	res.Config = &Config{ProjectRoot: filepath.Clean(root)}
	res.Source = SourceDefault
	return res, nil
}

// findUp looks for name in dir and each of its ancestors.
func findUp(dir, name string) (string, bool) {
	for {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
