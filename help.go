package gocli

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/internal/util"
	"github.com/napalu/gocli/schema"
)

// helpCommand builds the hidden "help" child of parent. "help a b" renders
// the help of parent's descendant a b; "help commands" lists the tree.
func (app *App) helpCommand(parent *Command) *Command {
	p := app.printer()

	list := app.newCommand("commands",
		WithDescription(p.Sprintf(i18n.KeyCommandCommands)),
		WithRun(Lines(func(_ context.Context, _ *Input) iter.Seq[string] {
			return slices.Values(newRenderer(app).CommandTree(parent))
		})))

	return app.newCommand("help",
		WithHidden(),
		WithDescription(p.Sprintf(i18n.KeyCommandHelp)),
		WithArgs(VariadicArgs(NewArg("command", schema.String()))),
		WithSubcommands(list),
		WithRun(func(_ context.Context, in *Input) error {
			return app.showTopic(parent, in)
		}))
}

func (app *App) showTopic(parent *Command, in *Input) error {
	rc := *in.Ctx
	rc.Path = slices.Clone(in.Ctx.Path[:len(in.Ctx.Path)-1])

	target := parent
	for _, topic := range in.Named.Strings("command") {
		child, ok := target.Lookup(topic)
		if !ok {
			return target.unknownTopic(&rc, topic)
		}
		target = child
		rc.Path = append(rc.Path, child.Name)
	}

	return rc.Out.WriteLine(Stdout, newRenderer(app).Help(target, rc.CommandPath()))
}

func (c *Command) unknownTopic(rc *Context, topic string) error {
	p := c.app.printer()
	var names []string
	for _, child := range c.children {
		if !child.Hidden {
			names = append(names, child.Name)
			names = append(names, child.Aliases...)
		}
	}

	msg := p.Sprintf(i18n.KeyUnknownHelpTopic, topic)
	if suggestion, ok := util.Closest(topic, names); ok {
		msg += " " + p.Sprintf(i18n.KeyDidYouMean, suggestion)
	}

	return c.fail(rc, msg, fmt.Errorf("%w: %q", ErrUnknownHelpTopic, topic))
}
