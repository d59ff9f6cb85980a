// Package completion generates shell completion scripts for a command tree.
package completion

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnsupportedShell is returned by Generate for a shell without a generator.
var ErrUnsupportedShell = errors.New("unsupported shell")

// Command is the completion view of a command: what can be typed after it.
type Command struct {
	// Path is the full command path starting at the program ("tool build").
	Path        string
	Name        string
	Aliases     []string
	Description string
	Flags       []Flag
	Children    []Command
}

// Flag is the completion view of a flag.
type Flag struct {
	// Names are spelled as typed: "--out", "-o".
	Names       []string
	Description string
	TakesValue  bool
	// Values enumerates the accepted values, if the set is closed.
	Values []string
}

// Generator renders a completion script for program.
type Generator interface {
	Generate(program string, root Command) string
}

var generators = map[string]Generator{
	"bash":       BashGenerator{},
	"zsh":        ZshGenerator{},
	"fish":       FishGenerator{},
	"powershell": PowerShellGenerator{},
}

// Shells lists the supported shells in alphabetical order.
func Shells() []string {
	shells := make([]string, 0, len(generators))
	for shell := range generators {
		shells = append(shells, shell)
	}
	slices.Sort(shells)

	return shells
}

// Generate renders the completion script of root for shell.
func Generate(shell, program string, root Command) (string, error) {
	g, ok := generators[shell]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
	}

	return g.Generate(program, root), nil
}

// walk visits root and its descendants depth first.
func walk(root Command, visit func(Command)) {
	visit(root)
	for _, child := range root.Children {
		walk(child, visit)
	}
}

// words returns everything that can directly follow cmd.
func words(cmd Command) []string {
	var out []string
	for _, child := range cmd.Children {
		out = append(out, child.Name)
		out = append(out, child.Aliases...)
	}
	for _, f := range cmd.Flags {
		out = append(out, f.Names...)
	}

	return out
}

// funcName turns a program name into a shell identifier.
func funcName(program string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, program)
}

type transition struct {
	from, word, to string
}

// transitions lists, for every command, the (path, word) pairs leading to
// each child, aliases included.
func transitions(root Command) []transition {
	var out []transition
	walk(root, func(cmd Command) {
		for _, child := range cmd.Children {
			for _, word := range append([]string{child.Name}, child.Aliases...) {
				out = append(out, transition{from: cmd.Path, word: word, to: child.Path})
			}
		}
	})

	return out
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
