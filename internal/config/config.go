// Package config loads runner configuration: defaults, then the global file,
// then the project file, each merging over the previous.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type SnippetsConfig struct {
	// Dir is the directory scanned for snippet manifests.
	Dir string `json:"dir"`
}

type UIConfig struct {
	// Markdown renders snippet descriptions through the markdown renderer.
	Markdown bool `json:"markdown"`
}

type StorageConfig struct {
	// BaseDir holds runner state such as the input history file.
	BaseDir string `json:"base_dir"`
}

type Config struct {
	Snippets SnippetsConfig `json:"snippets"`
	UI       UIConfig       `json:"ui"`
	Storage  StorageConfig  `json:"storage"`
}

// fileConfig mirrors Config with pointer fields so absent keys leave the
// merged value untouched.
type fileUIConfig struct {
	Markdown *bool `json:"markdown"`
}

type fileConfig struct {
	Snippets *SnippetsConfig `json:"snippets"`
	UI       *fileUIConfig   `json:"ui"`
	Storage  *StorageConfig  `json:"storage"`
}

func Default() Config {
	return Config{
		Snippets: SnippetsConfig{Dir: "snippets"},
		UI:       UIConfig{Markdown: true},
		Storage:  StorageConfig{BaseDir: "~/.sniprun"},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("SNIPRUN_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	baseDir, err := ExpandPath(cfg.Storage.BaseDir)
	if err != nil {
		return Config{}, err
	}
	cfg.Storage.BaseDir = baseDir
	return cfg, nil
}

// TodoStorePath is the fixed per-snippet location of the todo store, relative
// to the snippets directory.
func (c Config) TodoStorePath() string {
	return filepath.Join(c.Snippets.Dir, "data", "todos.json")
}

// HistoryPath is the readline history file location.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Storage.BaseDir, "repl.history")
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".sniprun", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		"sniprun.config.json",
		".sniprun/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	var fileCfg fileConfig
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.Snippets != nil && strings.TrimSpace(fc.Snippets.Dir) != "" {
		cfg.Snippets.Dir = fc.Snippets.Dir
	}
	if fc.UI != nil && fc.UI.Markdown != nil {
		cfg.UI.Markdown = *fc.UI.Markdown
	}
	if fc.Storage != nil && strings.TrimSpace(fc.Storage.BaseDir) != "" {
		cfg.Storage.BaseDir = fc.Storage.BaseDir
	}
}

// ExpandPath resolves a leading "~" against the current home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
