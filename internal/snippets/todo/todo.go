// Package todo is the ToDo Manager snippet: a priority-keyed todo list backed
// by a flat JSON file.
package todo

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

// statusAliases normalizes operator status tokens to canonical values.
var statusAliases = map[string]string{
	"todo":        StatusTodo,
	"progress":    StatusInProgress,
	"in-progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"done":        StatusCompleted,
	"completed":   StatusCompleted,
	"complete":    StatusCompleted,
}

var statusEmoji = map[string]string{
	StatusTodo:       "⭕",
	StatusInProgress: "🔄",
	StatusCompleted:  "✅",
}

// Manager implements the snippet contract over a Store.
type Manager struct {
	store *Store
	out   io.Writer
	now   func() time.Time
}

func New(storePath string, out io.Writer) *Manager {
	return &Manager{store: NewStore(storePath), out: out, now: time.Now}
}

func (m *Manager) Title() string { return "ToDo Manager" }

func (m *Manager) Description() string {
	return `Manage your todo list with priorities and status tracking.

Commands:
  list                           - Show all todos
  add <title> [priority]        - Add new todo (priority is optional number)
  status <priority> <status>    - Change status (todo/progress/done)
  remove <priority>             - Remove a todo

Status values:
  - todo (default)
  - progress (or in-progress, inprogress)
  - done (or completed, complete)

Examples:
  list
  add "Fix bug in login" 1
  add "Update documentation"
  status 3 progress
  status 5 done
  remove 2

Note: Priority is used as the identifier for updating/removing todos.`
}

func (m *Manager) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified; usage: list | add <title> [priority] | status <priority> <status> | remove <priority>")
	}

	command := strings.ToLower(args[0])
	items := m.store.Load()

	switch command {
	case "list":
		m.printList(items)
		return nil
	case "add":
		return m.add(items, args[1:])
	case "status":
		return m.setStatus(items, args[1:])
	case "remove":
		return m.remove(items, args[1:])
	default:
		return fmt.Errorf("unknown command %q; available commands: list | add | status | remove", command)
	}
}

func (m *Manager) add(items []Item, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing title; usage: add <title> [priority]")
	}

	var priority int
	var title string
	shifted := false
	if len(args) >= 2 && isDigits(args[len(args)-1]) {
		// Explicit priority: make room by shifting everything at or below it.
		priority, _ = strconv.Atoi(args[len(args)-1])
		title = strings.Join(args[:len(args)-1], " ")
		for i := range items {
			if items[i].Priority >= priority {
				items[i].Priority++
				shifted = true
			}
		}
	} else {
		priority = nextPriority(items)
		title = strings.Join(args, " ")
	}
	title = strings.Trim(strings.Trim(title, `"`), `'`)

	items = append(items, Item{
		Title:    title,
		Status:   StatusTodo,
		Priority: priority,
		Date:     m.now().Format("02 Jan 15:04"),
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority < items[j].Priority })
	if err := m.store.Save(items); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "✅ Added todo [Priority %d]: %s\n", priority, title)
	if shifted {
		fmt.Fprintln(m.out, "   (Shifted lower priority items down)")
	}
	return nil
}

func (m *Manager) setStatus(items []Item, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <priority> <status>; status values: todo | progress | done")
	}
	priority, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid priority %q", args[0])
	}
	status, ok := statusAliases[strings.ToLower(args[1])]
	if !ok {
		return fmt.Errorf("invalid status %q; valid statuses: todo | progress | done", args[1])
	}

	for i := range items {
		if items[i].Priority == priority {
			old := items[i].Status
			items[i].Status = status
			if err := m.store.Save(items); err != nil {
				return err
			}
			fmt.Fprintf(m.out, "✅ Updated todo [Priority %d]: %s → %s\n", priority, old, status)
			return nil
		}
	}
	return fmt.Errorf("todo with priority %d not found", priority)
}

func (m *Manager) remove(items []Item, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected <priority>; usage: remove <priority>")
	}
	priority, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid priority %q", args[0])
	}

	kept := items[:0]
	for _, item := range items {
		if item.Priority != priority {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("todo with priority %d not found", priority)
	}
	if err := m.store.Save(kept); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Removed todo [Priority %d]\n", priority)
	return nil
}

func (m *Manager) printList(items []Item) {
	if len(items) == 0 {
		fmt.Fprintln(m.out, "\n📋 No todos yet! Add one with: add <title> [priority]")
		return
	}

	rule := strings.Repeat("=", 90)
	fmt.Fprintln(m.out, "\n"+rule)
	fmt.Fprintf(m.out, "%s %s %s %s\n", pad("PRI", 5), pad("TITLE", 45), pad("DATE", 17), pad("STATUS", 12))
	fmt.Fprintln(m.out, rule)
	for _, item := range items {
		emoji, ok := statusEmoji[item.Status]
		if !ok {
			emoji = statusEmoji[StatusTodo]
		}
		fmt.Fprintf(m.out, "%s %s %s %s %s\n",
			pad(strconv.Itoa(item.Priority), 5),
			pad(item.Title, 45),
			pad(item.Date, 17),
			emoji,
			pad(item.Status, 10))
	}
	fmt.Fprintln(m.out, rule)
	fmt.Fprintf(m.out, "Total: %d todos\n\n", len(items))
}

// pad right-pads to the given display width, counting wide runes correctly.
func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func nextPriority(items []Item) int {
	used := make(map[int]bool, len(items))
	for _, item := range items {
		used[item.Priority] = true
	}
	p := 1
	for used[p] {
		p++
	}
	return p
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
