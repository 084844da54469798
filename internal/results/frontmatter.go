package results

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a --- fence.
	ErrMissingFrontMatter = errors.New("results: missing frontmatter")
	// ErrMalformedFrontMatter indicates the block was unterminated or not valid YAML.
	ErrMalformedFrontMatter = errors.New("results: malformed frontmatter")
	// ErrIncompleteFrontMatter indicates type or timestamp is missing.
	ErrIncompleteFrontMatter = errors.New("results: frontmatter missing type or timestamp")
)

const fence = "---"

// ParseFrontMatter splits a result document into its metadata and body.
func ParseFrontMatter(content []byte) (Metadata, []byte, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte(fence+"\n")) {
		return Metadata{}, nil, ErrMissingFrontMatter
	}
	rest := normalized[len(fence)+1:]

	var metaBytes, body []byte
	switch {
	case bytes.HasPrefix(rest, []byte(fence+"\n")):
		body = rest[len(fence)+1:]
	case bytes.Equal(rest, []byte(fence)):
	default:
		idx := bytes.Index(rest, []byte("\n"+fence+"\n"))
		if idx >= 0 {
			metaBytes = rest[:idx]
			body = rest[idx+len(fence)+2:]
		} else if bytes.HasSuffix(rest, []byte("\n"+fence)) {
			metaBytes = rest[:len(rest)-len(fence)-1]
		} else {
			return Metadata{}, nil, ErrMalformedFrontMatter
		}
	}

	var meta Metadata
	if err := yaml.Unmarshal(metaBytes, &meta); err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	if meta.Type == "" || meta.Timestamp == "" {
		return Metadata{}, nil, ErrIncompleteFrontMatter
	}
	return meta, bytes.TrimPrefix(body, []byte("\n")), nil
}

// WriteFrontMatter renders metadata and body with --- fences.
func WriteFrontMatter(meta Metadata, body []byte) ([]byte, error) {
	if meta.Type == "" || meta.Timestamp == "" {
		return nil, ErrIncompleteFrontMatter
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("results: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n" + fence + "\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
