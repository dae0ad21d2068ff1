package info

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned when the data file does not exist.
	ErrNotFound = errors.New("data file not found")
	// ErrSyntax is returned when the data file is not valid JSON.
	ErrSyntax = errors.New("invalid JSON")
)

// Options controls Load.
type Options struct {
	// Strict runs Validate and fails with a *ValidationError listing
	// every violation. Without it the document is only normalized.
	Strict bool
}

// Decode parses a data document without validating or normalizing it.
func Decode(r io.Reader) (*Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	var doc Info
	if err := json.Unmarshal(data, &doc); err != nil {
		var se *json.SyntaxError
		if errors.As(err, &se) {
			line, col := position(data, se.Offset)
			return nil, fmt.Errorf("%w: line %d, column %d: %v", ErrSyntax, line, col, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return &doc, nil
}

// Load reads the data file at path, resolves publications referenced by
// path, validates when opts.Strict is set, and normalizes the result.
func Load(path string, opts Options) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := resolveRefs(doc, filepath.Dir(path)); err != nil {
		return nil, err
	}

	if opts.Strict {
		if violations := Validate(doc); len(violations) > 0 {
			return nil, &ValidationError{Path: path, Violations: violations}
		}
	}

	Normalize(doc)
	return doc, nil
}

// resolveRefs loads publications that a legacy document lists as paths
// to separate JSON files. Paths are relative to the data file's directory.
func resolveRefs(doc *Info, dir string) error {
	if doc.Publications == nil {
		return nil
	}
	for i, p := range doc.Publications.Items {
		if p.Ref == "" {
			continue
		}
		ref := p.Ref
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
		if err != nil {
			return fmt.Errorf("loading publication %s: %w", ref, err)
		}
		var loaded Publication
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("loading publication %s: %w: %v", ref, ErrSyntax, err)
		}
		loaded.Ref = ref
		doc.Publications.Items[i] = loaded
	}
	return nil
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}
