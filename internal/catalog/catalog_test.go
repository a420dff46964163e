package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sniprun/internal/snippet"
)

type fakeSnippet struct {
	title string
	desc  string
}

func (f fakeSnippet) Title() string           { return f.title }
func (f fakeSnippet) Description() string     { return f.desc }
func (f fakeSnippet) Run(args []string) error { return nil }

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func demoHandlers() map[string]snippet.Snippet {
	return map[string]snippet.Snippet{
		"demo": fakeSnippet{title: "Demo Tool", desc: "demo help"},
	}
}

func fakeHandlers(titles map[string]string) map[string]snippet.Snippet {
	out := make(map[string]snippet.Snippet, len(titles))
	for name, title := range titles {
		out[name] = fakeSnippet{title: title, desc: title + " help"}
	}
	return out
}

func TestLoad_MissingDirCreatedEmptyCatalog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snippets")
	var diag bytes.Buffer
	l := NewLoader(dir, nil, &diag)

	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("want empty catalog, got %d entries", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory should have been created: %v", err)
	}
	if !strings.Contains(diag.String(), "Creating snippets directory") {
		t.Fatalf("want creation notice, got %q", diag.String())
	}
}

func TestLoad_MissingHandlerKeySilentlySkipped(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "good.toml", "handler = \"demo\"\n")
	writeManifest(t, dir, "notasnippet.toml", "title = \"Orphan\"\n")

	var diag bytes.Buffer
	l := NewLoader(dir, demoHandlers(), &diag)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "good" {
		t.Fatalf("want only the well-formed snippet, got %+v", entries)
	}
	if diag.Len() != 0 {
		t.Fatalf("missing handler key must be silent, got %q", diag.String())
	}
}

func TestLoad_ParseFailureDiagnosedAndSkipped(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.toml", "handler = \"demo\n") // unterminated string
	writeManifest(t, dir, "good.toml", "handler = \"demo\"\n")

	var diag bytes.Buffer
	l := NewLoader(dir, demoHandlers(), &diag)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "good" {
		t.Fatalf("want catalog of size 1, got %+v", entries)
	}
	if !strings.Contains(diag.String(), "broken.toml") {
		t.Fatalf("diagnostic must name the failing file, got %q", diag.String())
	}
}

func TestLoad_UnknownHandlerDiagnosed(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "stale.toml", "handler = \"gone\"\n")

	var diag bytes.Buffer
	l := NewLoader(dir, demoHandlers(), &diag)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("want empty catalog, got %+v", entries)
	}
	if !strings.Contains(diag.String(), "stale.toml") || !strings.Contains(diag.String(), "gone") {
		t.Fatalf("diagnostic must name file and handler, got %q", diag.String())
	}
}

func TestLoad_SortedByTitleThenFileName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "z.toml", "handler = \"demo\"\ntitle = \"Apple Tool\"\n")
	writeManifest(t, dir, "a.toml", "handler = \"demo\"\ntitle = \"Zebra Tool\"\n")
	writeManifest(t, dir, "dup2.toml", "handler = \"demo\"\ntitle = \"Mango Tool\"\n")
	writeManifest(t, dir, "dup1.toml", "handler = \"demo\"\ntitle = \"Mango Tool\"\n")

	l := NewLoader(dir, demoHandlers(), nil)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Title+"/"+e.Name)
	}
	want := []string{"Apple Tool/z", "Mango Tool/dup1", "Mango Tool/dup2", "Zebra Tool/a"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestLoad_UnderscorePrefixIgnored(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "_private.toml", "handler = \"demo\"\n")
	writeManifest(t, dir, "visible.toml", "handler = \"demo\"\n")

	l := NewLoader(dir, demoHandlers(), nil)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "visible" {
		t.Fatalf("underscore manifests must be skipped, got %+v", entries)
	}
}

func TestLoad_ManifestOverridesTitleAndDescription(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "demo.toml", "handler = \"demo\"\ntitle = \"Custom\"\ndescription = \"Custom help\"\n")

	l := NewLoader(dir, demoHandlers(), nil)
	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Custom" || entries[0].Description != "Custom help" {
		t.Fatalf("overrides not applied: %+v", entries)
	}
}

func TestScaffold_WritesOneManifestPerHandlerIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snippets")
	l := NewLoader(dir, fakeHandlers(map[string]string{"alpha": "Alpha", "beta": "Beta"}), nil)

	if err := l.Scaffold(); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if err := l.Scaffold(); err != nil {
		t.Fatalf("second Scaffold: %v", err)
	}

	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Alpha" || entries[1].Title != "Beta" {
		t.Fatalf("want scaffolded catalog [Alpha Beta], got %+v", entries)
	}
}
