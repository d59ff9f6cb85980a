package gocli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/napalu/gocli/parse"
)

// Command is a node of a command tree. It owns its local flags, its
// positional arguments, its children and up to three lifecycle actions.
// Commands are created with App.Command.
type Command struct {
	Name            string
	Aliases         []string
	Hidden          bool
	Description     string
	LongDescription string
	Usage           string

	app        *App
	parent     *Command
	flags      *FlagSet
	args       *Arguments
	children   []*Command
	preRun     Action
	run        Action
	postRun    Action
	completion bool
}

// PreRun sets the action run before the main action.
func (c *Command) PreRun(action Action) *Command {
	c.preRun = action
	return c
}

// Run sets the main action.
func (c *Command) Run(action Action) *Command {
	c.run = action
	return c
}

// PostRun sets the action run after the main action succeeded.
func (c *Command) PostRun(action Action) *Command {
	c.postRun = action
	return c
}

// Flags returns the flags local to the command.
func (c *Command) Flags() *FlagSet {
	if c.flags == nil {
		return Flags()
	}

	return c.flags
}

// Args returns the positional arguments, or nil when the command declares
// none and accepts any positional values.
func (c *Command) Args() *Arguments { return c.args }

// Children returns the subcommands in declaration order.
func (c *Command) Children() []*Command { return slices.Clone(c.children) }

func (c *Command) Parent() *Command { return c.parent }

func (c *Command) addChild(child *Command) {
	child.parent = c
	c.children = append(c.children, child)
}

// Lookup returns the first child whose name or alias is name.
func (c *Command) Lookup(name string) (*Command, bool) {
	for _, child := range c.children {
		if child.Name == name || slices.Contains(child.Aliases, name) {
			return child, true
		}
	}

	return nil, false
}

// lineage returns the names of the commands from the root down to c.
func (c *Command) lineage() []string {
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		names = append(names, cur.Name)
	}
	slices.Reverse(names)

	return names
}

// mergedFlags returns the set validated when c runs: the global flags with
// the local flags on top.
func (c *Command) mergedFlags() *FlagSet {
	return c.app.globals.Merge(c.Flags())
}

// Execute routes argv through the tree below c and runs the selected
// command. A nil argv means os.Args[1:]. When the command signals an exit
// code through the Output, Execute returns an *ExitError carrying it.
func (c *Command) Execute(ctx context.Context, argv []string) error {
	if argv == nil {
		argv = os.Args[1:]
	}

	return c.execute(ctx, argv, c.app.rootContext(c))
}

// ExecuteString splits line with shell quoting rules and executes the result.
func (c *Command) ExecuteString(ctx context.Context, line string) error {
	argv, err := parse.Split(line)
	if err != nil {
		return err
	}
	if argv == nil {
		argv = []string{}
	}

	return c.Execute(ctx, argv)
}

// Validate reports declaration errors in the tree below c: sibling commands
// sharing a name or alias, and flag names or aliases claimed by two flags of
// the set a command validates.
func (c *Command) Validate() error {
	var errs []error

	owners := make(map[string]string)
	for _, child := range c.children {
		for _, name := range append([]string{child.Name}, child.Aliases...) {
			if owner, ok := owners[name]; ok {
				errs = append(errs, fmt.Errorf("%w: %q is used by %q and %q", ErrDuplicateCommand, name, owner, child.Name))
				continue
			}
			owners[name] = child.Name
		}
	}

	claimed := make(map[string]string)
	merged := c.mergedFlags()
	WalkFlags(merged, func(_ *Flag, path string) {
		claimed[path] = path
	})
	WalkFlags(merged, func(f *Flag, path string) {
		for _, alias := range f.aliases {
			if owner, ok := claimed[alias]; ok && owner != path {
				errs = append(errs, fmt.Errorf("%w: %q is used by %q and %q in %q", ErrFlagConflict, alias, owner, path, c.Name))
				continue
			}
			claimed[alias] = path
		}
	})

	for _, child := range c.children {
		if err := child.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
