// Package clipboard abstracts text clipboard access so snippets can be
// exercised without a display server.
package clipboard

import (
	"github.com/atotto/clipboard"
)

type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System is the real OS clipboard.
type System struct{}

func (System) Read() (string, error) {
	return clipboard.ReadAll()
}

func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard used by tests and headless environments.
type Memory struct {
	Text     string
	ReadErr  error
	WriteErr error
}

func (m *Memory) Read() (string, error) {
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Text, nil
}

func (m *Memory) Write(text string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Text = text
	return nil
}
