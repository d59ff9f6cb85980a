package gocli

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/napalu/gocli/completion"
	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/schema"
)

// WithCompletion adds a "completion <shell>" subcommand printing a shell
// completion script for the command and everything below it.
func WithCompletion() ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.completion = true
	}
}

func (app *App) completionCommand(parent *Command) *Command {
	return app.newCommand("completion",
		WithDescription(app.printer().Sprintf(i18n.KeyCommandCompletion)),
		WithArgs(Args(NewArg("shell", schema.Enum(completion.Shells()...)))),
		WithRun(func(_ context.Context, in *Input) error {
			script, err := completion.Generate(in.Named.String("shell"), app.bin, parent.CompletionData())
			if err != nil {
				return err
			}
			return in.Ctx.Out.WriteLine(Stdout, strings.TrimSuffix(script, "\n"))
		}))
}

// CompletionData describes the visible commands and flags below c for the
// completion script generators.
func (c *Command) CompletionData() completion.Command {
	return c.completionData(strings.Join(c.lineage(), " "))
}

func (c *Command) completionData(path string) completion.Command {
	data := completion.Command{
		Path:        path,
		Name:        c.Name,
		Aliases:     c.Aliases,
		Description: c.Description,
	}

	WalkFlags(c.mergedFlags(), func(f *Flag, flagPath string) {
		if f.hidden {
			return
		}
		names := []string{flagPath}
		names = append(names, f.aliases...)
		if c.app.flagConverter != nil {
			if alt := convertPath(flagPath, c.app.flagConverter); alt != flagPath {
				names = append(names, alt)
			}
		}

		cf := completion.Flag{
			Description: f.Description(),
			TakesValue:  classify(InnerType(f)) != valueBool,
		}
		if inner := InnerType(f); inner.Kind() == schema.KindEnum {
			cf.Values = inner.Values()
		}
		for _, name := range names {
			if utf8.RuneCountInString(name) == 1 {
				cf.Names = append(cf.Names, "-"+name)
				continue
			}
			cf.Names = append(cf.Names, "--"+name)
			if f.negatable {
				cf.Names = append(cf.Names, "--no-"+name)
			}
		}
		data.Flags = append(data.Flags, cf)
	})
	slices.Reverse(data.Flags)

	for _, child := range c.children {
		if child.Hidden {
			continue
		}
		data.Children = append(data.Children, child.completionData(path+" "+child.Name))
	}

	return data
}
