// Package config loads the optional per-user treegen configuration.
// The config is an explicit value threaded into the pipeline, never
// ambient process state, so everything stays testable with a temp dir.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config mirrors <user-config-dir>/treegen/config.hcl. Every field is
// optional; a missing file means all defaults.
type Config struct {
	// TemplateDir overrides the template store location.
	TemplateDir string `hcl:"template_dir,optional"`
	// DirPerm and FilePerm are octal mode strings, e.g. "0755".
	DirPerm  string `hcl:"dir_perm,optional"`
	FilePerm string `hcl:"file_perm,optional"`
	// CommentMarker prefixes skipped lines in structure files.
	CommentMarker string `hcl:"comment_marker,optional"`
	// ExecGlobs are doublestar patterns (relative to the output base)
	// for files that should be created executable.
	ExecGlobs []string `hcl:"exec_globs,optional"`
}

const (
	defaultDirPerm  = os.FileMode(0o755)
	defaultFilePerm = os.FileMode(0o644)
	execFilePerm    = os.FileMode(0o755)
)

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, "treegen", "config.hcl"), nil
}

// Load reads the config at path. A missing file is not an error; it
// yields the zero Config, whose accessors return defaults.
func Load(path string) (Config, error) {
	var c Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	if err := hclsimple.DecodeFile(path, nil, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := c.DirMode(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := parsePerm(c.FilePerm, defaultFilePerm); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// DirMode returns the directory creation mode.
func (c Config) DirMode() (os.FileMode, error) {
	return parsePerm(c.DirPerm, defaultDirPerm)
}

// FileModeFor returns the creation mode for one file path, relative
// to the output base. Paths matching an exec glob get 0755.
func (c Config) FileModeFor(relPath string) os.FileMode {
	for _, pat := range c.ExecGlobs {
		if ok, err := doublestar.Match(pat, relPath); err == nil && ok {
			return execFilePerm
		}
	}
	mode, err := parsePerm(c.FilePerm, defaultFilePerm)
	if err != nil {
		return defaultFilePerm
	}
	return mode
}

func parsePerm(s string, def os.FileMode) (os.FileMode, error) {
	if s == "" {
		return def, nil
	}
	u, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	return os.FileMode(u), nil
}
