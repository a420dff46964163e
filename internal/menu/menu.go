// Package menu drives the interactive session: render the catalog, dispatch
// operator commands to the selected snippet, and keep the host alive no
// matter what a snippet does.
package menu

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sniprun/internal/catalog"
	"sniprun/internal/snippet"
	"sniprun/internal/ui"
)

// LineReader reads one line of operator input. An error means the read was
// interrupted or input ended; the loop treats both as "leave the current
// state", never as a fatal condition.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// LoadFunc rebuilds the catalog. It is invoked on every menu entry so the
// menu reflects manifest changes made between runs.
type LoadFunc func() ([]catalog.Entry, error)

type Options struct {
	// Markdown renders snippet descriptions through glamour. Off for plain
	// terminals and in tests, where exact text matters.
	Markdown bool
}

type Loop struct {
	reader   LineReader
	out      io.Writer
	load     LoadFunc
	theme    ui.Theme
	markdown bool
}

func New(reader LineReader, out io.Writer, load LoadFunc, opts Options) *Loop {
	return &Loop{
		reader:   reader,
		out:      out,
		load:     load,
		theme:    ui.DefaultTheme(),
		markdown: opts.Markdown,
	}
}

// Run is the session: AtMenu -> Running(selected) -> back, until the operator
// exits. Returns nil on a normal exit; only catalog loader failures (a
// directory that cannot be read or created) are fatal.
func (l *Loop) Run() error {
	fmt.Fprintln(l.out, "\nWelcome to Snippet Runner!")

	for {
		entries, err := l.load()
		if err != nil {
			return err
		}

		if !l.showMenu(entries) {
			fmt.Fprintln(l.out, "\nAdd snippet manifests to the snippets directory and restart.")
			return nil
		}

		idx, ok := l.choose(len(entries))
		if !ok {
			l.farewell()
			return nil
		}
		if !l.runSnippet(entries[idx]) {
			l.farewell()
			return nil
		}
	}
}

// showMenu renders the numbered catalog. Returns false when there is nothing
// to show.
func (l *Loop) showMenu(entries []catalog.Entry) bool {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(l.out, "\n"+rule)
	fmt.Fprintln(l.out, l.styled(l.theme.TitleStyle, "  SNIPPET RUNNER"))
	fmt.Fprintln(l.out, rule)

	if len(entries) == 0 {
		fmt.Fprintln(l.out, "\nNo snippets found in the snippets directory.")
		fmt.Fprintln(l.out, "Add manifest files to get started!")
		return false
	}

	fmt.Fprintln(l.out, "\nAvailable Tools:")
	for i, e := range entries {
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, e.Title)
	}
	fmt.Fprintln(l.out, "\n  0. Exit")
	fmt.Fprintln(l.out, rule)
	return true
}

// choose reads a menu selection. ok=false means exit was chosen or input
// ended.
func (l *Loop) choose(n int) (int, bool) {
	for {
		line, err := l.reader.ReadLine("\nSelect a tool (number): ")
		if err != nil {
			fmt.Fprintln(l.out)
			return 0, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(l.out, "Please enter a valid number")
			continue
		}
		if choice == 0 {
			return 0, false
		}
		if choice < 1 || choice > n {
			fmt.Fprintf(l.out, "Please enter a number between 0 and %d\n", n)
			continue
		}
		return choice - 1, true
	}
}

// runSnippet is the Running state. Returns true to go back to the menu,
// false to quit the session.
func (l *Loop) runSnippet(entry catalog.Entry) bool {
	rule := strings.Repeat("-", 60)
	fmt.Fprintln(l.out, "\n"+rule)
	fmt.Fprintln(l.out, l.styled(l.theme.TitleStyle, "  "+entry.Title))
	fmt.Fprintln(l.out, rule)
	desc := entry.Description
	if l.markdown {
		desc = ui.RenderMarkdown(desc, 80)
	}
	fmt.Fprintf(l.out, "\n%s\n\n", desc)

	for {
		line, err := l.reader.ReadLine("Enter command (or 'back' to return): ")
		if err != nil {
			// Interrupt or end of input: back to menu, like 'back'.
			fmt.Fprintln(l.out)
			return true
		}
		command := strings.TrimSpace(line)
		switch strings.ToLower(command) {
		case "back", "b", "exit":
			return true
		case "":
			continue
		}

		if err := dispatch(entry.Snippet, strings.Fields(command)); err != nil {
			fmt.Fprintf(l.out, "\n%s\n", l.styled(l.theme.ErrorStyle, fmt.Sprintf("❌ Error: %v", err)))
		}

		fmt.Fprintln(l.out, "\n"+rule)
		next, err := l.reader.ReadLine("\nWhat next? (r)un again, (b)ack to menu, (q)uit: ")
		if err != nil {
			fmt.Fprintln(l.out)
			return true
		}
		switch strings.ToLower(strings.TrimSpace(next)) {
		case "b", "back", "m", "menu":
			return true
		case "q", "quit", "exit":
			return false
		}
		// Anything else re-reads a command without re-printing the
		// description.
	}
}

// dispatch is the failure isolation boundary: a snippet may return an error
// or panic outright; neither escapes this call.
func dispatch(s snippet.Snippet, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snippet panicked: %v", r)
		}
	}()
	return s.Run(args)
}

func (l *Loop) farewell() {
	fmt.Fprintln(l.out, "\nGoodbye!")
}

func (l *Loop) styled(style lipgloss.Style, s string) string {
	if !ui.ColorEnabled() {
		return s
	}
	return style.Render(s)
}
