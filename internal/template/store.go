// Package template resolves named structure templates. A template is
// a plain structure-text file in a per-user store directory; the core
// feeds its content to the indentation parser unchanged.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ext is the store's file-name convention: <name>.txt.
const ext = ".txt"

// NotFoundError reports a template name with no backing file.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found (looked at %s)", e.Name, e.Path)
}

// Store is a directory of named structure-text files. The directory
// is an explicit value, never ambient state, so tests point it at a
// temp dir.
type Store struct {
	Dir string
}

// DefaultDir returns the conventional per-user template location,
// <user-config-dir>/treegen/templates.
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, "treegen", "templates"), nil
}

// path maps a template name to its file in the store.
func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name+ext)
}

// Resolve returns the structure text saved under name, failing with
// NotFoundError if no such template exists.
func (s *Store) Resolve(name string) (string, error) {
	p := s.path(name)
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", &NotFoundError{Name: name, Path: p}
	}
	if err != nil {
		return "", fmt.Errorf("read template %q: %w", name, err)
	}
	return string(b), nil
}

// List returns the names of all saved templates, sorted. A missing
// store directory is an empty store, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Save writes text under name, creating the store directory if
// needed, and returns the file path it wrote.
func (s *Store) Save(name, text string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create template store: %w", err)
	}
	p := s.path(name)
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("save template %q: %w", name, err)
	}
	return p, nil
}
