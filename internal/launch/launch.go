// Package launch opens URLs in the user's browser.
package launch

import (
	"errors"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInvalidURL is returned for URLs without a scheme and host.
var ErrInvalidURL = errors.New("invalid url")

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(rawURL string) error
}

// Browser opens URLs with the platform's default handler.
type Browser struct{}

// Open starts the platform URL handler for rawURL and waits for it to
// exit. mailto: URLs only need a scheme.
func (Browser) Open(rawURL string) error {
	u, err := Validate(rawURL)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}

// ResultMsg reports the outcome of an Open started by Cmd.
type ResultMsg struct {
	URL string
	Err error
}

// Cmd opens rawURL off the UI loop and reports back with a ResultMsg.
func Cmd(o Opener, rawURL string) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{URL: rawURL, Err: o.Open(rawURL)}
	}
}

// Validate trims rawURL and checks that it is absolute.
func Validate(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return "", ErrInvalidURL
	}
	if u.Scheme != "mailto" && u.Host == "" {
		return "", ErrInvalidURL
	}
	return s, nil
}
