package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"decay/internal/diagfmt"
)

const manifestName = "decay.toml"

const noManifestMessage = "no decay.toml found\nplease specify a file or directory explicitly, e.g.:\n  decay parse path/to/ui"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Project projectSection `toml:"project"`
	Build   buildSection   `toml:"build"`
	Fmt     fmtSection     `toml:"fmt"`
}

type projectSection struct {
	Name    string `toml:"name"`
	Sources string `toml:"sources"`
}

type buildSection struct {
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Cache          bool   `toml:"cache"`
	Format         string `toml:"format"`
}

type fmtSection struct {
	IndentWidth int  `toml:"indent_width"`
	UseTabs     bool `toml:"use_tabs"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, meta, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
		meta:   meta,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return projectConfig{}, meta, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, meta, fmt.Errorf("%s: missing [project].name", path)
	}
	if cfg.Build.Jobs < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}
	if cfg.Fmt.IndentWidth < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [fmt].indent_width must not be negative", path)
	}
	if meta.IsDefined("build", "format") {
		if _, err := diagfmt.ParseASTFormat(cfg.Build.Format); err != nil {
			return projectConfig{}, meta, fmt.Errorf("%s: [build].format: %w", path, err)
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, meta, nil
}

// defines reports whether the manifest sets key (e.g. "build", "jobs").
func (m *projectManifest) defines(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// sourcesDir returns the directory named by [project].sources, defaulting
// to the manifest root.
func (m *projectManifest) sourcesDir() (string, error) {
	rel := strings.TrimSpace(m.Config.Project.Sources)
	if rel == "" {
		return m.Root, nil
	}
	dir := filepath.Join(m.Root, filepath.FromSlash(rel))
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [project].sources path does not exist: %s", m.Path, dir)
		}
		return "", fmt.Errorf("%s: failed to stat [project].sources: %w", m.Path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: [project].sources must be a directory", m.Path)
	}
	return dir, nil
}
