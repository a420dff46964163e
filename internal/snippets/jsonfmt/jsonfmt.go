// Package jsonfmt is the JSON Pretty Formatter snippet.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"sniprun/internal/clipboard"
	"sniprun/internal/snippet"
)

// Prompter reads one confirmation line from the operator.
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

type Formatter struct {
	clip   clipboard.Clipboard
	prompt Prompter
	out    io.Writer
}

func New(clip clipboard.Clipboard, prompt Prompter, out io.Writer) *Formatter {
	return &Formatter{clip: clip, prompt: prompt, out: out}
}

func (f *Formatter) Title() string { return "JSON Pretty Formatter" }

func (f *Formatter) Description() string {
	return `Read JSON from a file or clipboard, format it beautifully, and copy to clipboard.

Usage:
  <json_file>    - Read from file
  clipboard      - Read from clipboard
  clip           - Read from clipboard (short)

Examples:
  data.json
  clipboard
  clip`
}

func (f *Formatter) Run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument: <json_file> or 'clipboard'")
	}

	source := args[0]
	var raw []byte
	if snippet.IsClipboard(source) {
		fmt.Fprintln(f.out, "📋 Reading from clipboard...")
		text, err := f.clip.Read()
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("clipboard is empty")
		}
		raw = []byte(text)
	} else {
		fmt.Fprintf(f.out, "📖 Reading %s...\n", source)
		data, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file %q not found", source)
			}
			return fmt.Errorf("read %s: %w", source, err)
		}
		raw = data
	}

	formatted, err := Format(raw)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(f.out, "\n"+rule)
	fmt.Fprintln(f.out, "FORMATTED JSON:")
	fmt.Fprintln(f.out, rule)
	fmt.Fprintln(f.out, formatted)
	fmt.Fprintln(f.out, rule)

	answer, err := f.prompt.ReadLine("\n📋 Copy to clipboard? (y/n): ")
	if err != nil {
		// Interrupt or EOF at the confirm prompt means "no".
		fmt.Fprintln(f.out, "👍 Not copied.")
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		if err := f.clip.Write(formatted); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(f.out, "✅ Copied to clipboard!")
	default:
		fmt.Fprintln(f.out, "👍 Not copied.")
	}
	return nil
}

// Format re-indents a JSON document with two spaces. Key order and non-ASCII
// characters pass through untouched because the document is re-indented, not
// decoded and re-encoded.
func Format(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
