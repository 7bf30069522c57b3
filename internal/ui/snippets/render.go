package snippets

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultCodeStyle is the glamour style used for snippet bodies.
const DefaultCodeStyle = "dark"

// codeRenderer renders snippet code as a fenced block. Renderers are
// cached by width; creating one is comparatively slow.
type codeRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

func newCodeRenderer(style string) *codeRenderer {
	if style == "" {
		style = DefaultCodeStyle
	}
	return &codeRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns code rendered for width columns. Any renderer failure
// falls back to the plain code, indented.
func (c *codeRenderer) Render(code string, width int) string {
	code = strings.TrimRight(code, "\n")
	if code == "" {
		return ""
	}
	width = max(width, 10)

	r := c.renderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return plain(code)
		}
		c.renderers[width] = rr
		r = rr
	}

	out, err := r.Render(fence(code))
	if err != nil {
		return plain(code)
	}
	return strings.Trim(out, "\n")
}

// fence wraps code in a fenced block whose fence is longer than any
// backtick run inside the code.
func fence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	f := strings.Repeat("`", max(3, longest+1))
	return f + "\n" + code + "\n" + f + "\n"
}

func plain(code string) string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
