// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Writer copies text to a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteText copies text to the system clipboard. Line endings are
// normalized to "\n".
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(strings.ReplaceAll(text, "\r\n", "\n")); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Memory records written text. It is used where no system clipboard is
// available and in tests.
type Memory struct {
	Last   string
	Writes int
	Err    error
}

// WriteText stores text, or returns m.Err when set.
func (m *Memory) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Last = text
	m.Writes++
	return nil
}
