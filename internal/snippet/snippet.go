// Package snippet defines the contract every runnable tool satisfies.
package snippet

import "strings"

// Snippet is a single-purpose interactive tool. Run receives the operator's
// command line tokenized on whitespace and reports failures as errors; it
// must never terminate the process.
type Snippet interface {
	Title() string
	Description() string
	Run(args []string) error
}

// Sentinel input values that select the system clipboard instead of a path.
var clipboardSentinels = map[string]bool{
	"clipboard": true,
	"clip":      true,
	"cb":        true,
}

// IsClipboard reports whether the argument names the clipboard channel.
func IsClipboard(arg string) bool {
	return clipboardSentinels[strings.ToLower(arg)]
}
