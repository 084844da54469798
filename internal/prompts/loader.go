// Package prompts holds the agent prompt catalogues. Each catalogue is a JSON
// object of key to template, embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Catalogue files.
const (
	ReviewFile  = "review.json"
	BuilderFile = "builder.json"
	ProfileFile = "profile.json"
)

// Prompt keys.
const (
	GeneralReview   = "general-review"
	JobFitReview    = "job-fit-review"
	BuildResume     = "build-resume"
	ProfileFromText = "profile-from-text"
)

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by catalogue filename and key.
func Get(filename, key string) (string, error) {
	catalogue, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := catalogue[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get that panics on a missing catalogue or key.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data. Placeholders
// without a value are left in place.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the sorted prompt keys of a catalogue.
func List(filename string) ([]string, error) {
	catalogue, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(catalogue))
	for key := range catalogue {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops every parsed catalogue.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	catalogue, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return catalogue, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, &catalogue); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = catalogue
	cacheMu.Unlock()

	return catalogue, nil
}
