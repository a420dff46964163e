package snippet

import "testing"

func TestIsClipboard(t *testing.T) {
	for _, arg := range []string{"clipboard", "CLIP", "cb", "Clipboard"} {
		if !IsClipboard(arg) {
			t.Fatalf("%q should select the clipboard", arg)
		}
	}
	for _, arg := range []string{"", "clipboard.txt", "data.csv", "c"} {
		if IsClipboard(arg) {
			t.Fatalf("%q should be treated as a path", arg)
		}
	}
}
