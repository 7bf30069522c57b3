package command

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a palette command.
type Name string

const (
	Home     Name = "home"
	Projects Name = "projects"
	Tasks    Name = "tasks"
	Snippets Name = "snippets"
	Mail     Name = "mail"
	Logout   Name = "logout"
	Quit     Name = "quit"
	Filter   Name = "filter"
)

// Names lists the commands in the order the palette suggests them.
var Names = []Name{Home, Projects, Tasks, Snippets, Mail, Logout, Quit, Filter}

var aliases = map[string]Name{
	"q":       Quit,
	"exit":    Quit,
	"signout": Logout,
	"lock":    Logout,
}

// ErrUnknown is returned for input that names no command.
var ErrUnknown = errors.New("unknown command")

// Suggestions returns the completions offered by the palette input: every
// command name plus each filter argument.
func Suggestions() []string {
	out := make([]string, 0, len(Names)+3)
	for _, n := range Names {
		if n == Filter {
			continue
		}
		out = append(out, string(n))
	}
	for _, f := range []string{"all", "pending", "completed"} {
		out = append(out, string(Filter)+" "+f)
	}
	return out
}

// Command is a parsed palette entry.
type Command struct {
	Name Name
	Args []string
}

// Parse splits input into a command name and arguments.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, ErrUnknown
	}
	name := Name(fields[0])
	if a, ok := aliases[fields[0]]; ok {
		name = a
	}
	for _, n := range Names {
		if n == name {
			cmd := Command{Name: name, Args: fields[1:]}
			if name == Filter && len(cmd.Args) != 1 {
				return Command{}, fmt.Errorf("usage: filter all|pending|completed")
			}
			return cmd, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknown, fields[0])
}
