package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	if got := RenderMarkdown("   \n", 80); got != "" {
		t.Fatalf("want empty render, got %q", got)
	}
}

func TestRenderMarkdown_KeepsContent(t *testing.T) {
	got := RenderMarkdown("plain words survive rendering", 80)
	if !strings.Contains(got, "plain words survive rendering") {
		t.Fatalf("content lost in rendering: %q", got)
	}
}

func TestColorEnabled_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Fatal("NO_COLOR must disable color")
	}
}

func TestColorEnabled_RespectsDumbTerm(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("SNIPRUN_NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if ColorEnabled() {
		t.Fatal("TERM=dumb must disable color")
	}
}
