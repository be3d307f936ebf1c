package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all resolved application paths. It is the single source
// of truth for file locations: uploads land in UploadsDir, snapshot
// artifacts in OutputDir, logs in LogsDir.
type Paths struct {
	BaseDir    string
	UploadsDir string
	OutputDir  string
	LogsDir    string
}

// NewPaths resolves the configured path entries against the base
// directory. Absolute entries are kept as-is.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	return &Paths{
		BaseDir:    base,
		UploadsDir: resolveDir(base, cfg.UploadsDir),
		OutputDir:  resolveDir(base, cfg.OutputDir),
		LogsDir:    resolveDir(base, cfg.LogsDir),
	}, nil
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates all managed directories if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.UploadsDir, p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// UploadPath returns the full path for an uploaded file name.
func (p *Paths) UploadPath(name string) string {
	return filepath.Join(p.UploadsDir, name)
}

// OutputPath returns the full path for a snapshot artifact name.
func (p *Paths) OutputPath(name string) string {
	return filepath.Join(p.OutputDir, name)
}
