// Package catalog discovers snippet manifests in a directory and binds them
// to compiled-in handlers.
//
// A manifest is a TOML file naming a registered handler and optionally
// overriding its display title and description:
//
//	handler = "todo"
//	title = "ToDo Manager"
//	description = """Manage your todo list..."""
//
// Files whose name starts with "_" are reserved and skipped. A manifest that
// fails to parse or names an unknown handler is reported and skipped; loading
// continues with the remaining files. A TOML file with no handler key is
// simply not a snippet and is ignored without a diagnostic.
package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"sniprun/internal/snippet"
)

// Entry is one catalog row: a discovered manifest bound to its handler.
type Entry struct {
	Name        string
	Title       string
	Description string
	Snippet     snippet.Snippet
}

type manifest struct {
	Handler     string `toml:"handler"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Loader scans one directory against a fixed handler table.
type Loader struct {
	dir      string
	handlers map[string]snippet.Snippet
	diag     io.Writer
}

func NewLoader(dir string, handlers map[string]snippet.Snippet, diag io.Writer) *Loader {
	if diag == nil {
		diag = io.Discard
	}
	return &Loader{dir: dir, handlers: handlers, diag: diag}
}

// Load rebuilds the catalog from the directory. A missing directory is
// created and yields an empty catalog, not an error.
func (l *Loader) Load() ([]Entry, error) {
	if _, err := os.Stat(l.dir); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat snippets dir: %w", err)
		}
		fmt.Fprintf(l.diag, "Creating snippets directory: %s\n", l.dir)
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snippets dir: %w", err)
		}
		return nil, nil
	}

	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read snippets dir: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		if !strings.HasSuffix(name, ".toml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			fmt.Fprintf(l.diag, "❌ Error loading %s: %v\n", name, err)
			continue
		}
		var m manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			fmt.Fprintf(l.diag, "❌ Error loading %s: %v\n", name, err)
			continue
		}
		if strings.TrimSpace(m.Handler) == "" {
			// No handler key: a stray TOML file, not a snippet.
			continue
		}
		handler, ok := l.handlers[m.Handler]
		if !ok {
			fmt.Fprintf(l.diag, "❌ Error loading %s: unknown handler %q\n", name, m.Handler)
			continue
		}

		title := m.Title
		if title == "" {
			title = handler.Title()
		}
		desc := m.Description
		if desc == "" {
			desc = handler.Description()
		}
		if title == "" || desc == "" {
			continue
		}

		entries = append(entries, Entry{
			Name:        strings.TrimSuffix(name, ".toml"),
			Title:       title,
			Description: desc,
			Snippet:     handler,
		})
	}

	// Sort by title; ties fall back to the manifest file name so the order
	// never depends on filesystem enumeration.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Title != entries[j].Title {
			return entries[i].Title < entries[j].Title
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Scaffold writes a manifest for every registered handler that does not
// already have one, creating the directory as needed.
func (l *Loader) Scaffold() error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create snippets dir: %w", err)
	}

	names := make([]string, 0, len(l.handlers))
	for name := range l.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(l.dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		handler := l.handlers[name]
		data, err := toml.Marshal(manifest{
			Handler:     name,
			Title:       handler.Title(),
			Description: handler.Description(),
		})
		if err != nil {
			return fmt.Errorf("marshal manifest %s: %w", name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write manifest %s: %w", name, err)
		}
	}
	return nil
}
