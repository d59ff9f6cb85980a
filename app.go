package gocli

import (
	"context"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/internal/util"
	"github.com/napalu/gocli/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// App creates the commands of one command-line program and holds what they
// share: the global flags, the output, the logger and the message language.
type App struct {
	bin           string
	userGlobals   *FlagSet
	globals       *FlagSet
	value         any
	out           Output
	logger        *slog.Logger
	lang          language.Tag
	bundle        *i18n.Bundle
	flagConverter NameConversionFunc
	color         *bool
	version       string
}

// New creates an App for the program named bin.
func New(bin string, configs ...ConfigureAppFunc) *App {
	app := &App{
		bin:    bin,
		out:    NewStdOutput(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		lang:   language.English,
		bundle: i18n.Default(),
	}
	for _, config := range configs {
		config(app)
	}
	app.globals = app.buildGlobals()

	return app
}

// buildGlobals merges the user's global flags with the built-in ones and
// marks every member global. Built-in flags win on name collisions.
func (app *App) buildGlobals() *FlagSet {
	builtin := []Entry{
		F("help", Boolean().Alias("h").Optional().
			DescribeFunc(app.text(i18n.KeyFlagHelp)).
			Refine(interruptWhenSet(ErrHelpRequested))),
	}
	if app.version != "" {
		builtin = append(builtin, F("version", Boolean().Optional().
			DescribeFunc(app.text(i18n.KeyFlagVersion)).
			Refine(interruptWhenSet(ErrVersionRequested))))
	}

	user := app.userGlobals
	if user == nil {
		user = Flags()
	}

	return user.Merge(Flags(builtin...)).stampGlobal()
}

func interruptWhenSet(err error) schema.RefineFunc {
	return func(_ context.Context, v any) error {
		if v == true {
			return schema.Interrupt(err)
		}
		return nil
	}
}

// GlobalFlags returns the effective global flag set.
func (app *App) GlobalFlags() *FlagSet {
	return app.globals
}

// Bin returns the program name.
func (app *App) Bin() string {
	return app.bin
}

func (app *App) printer() *message.Printer {
	return app.bundle.Printer(app.lang)
}

// text returns a lazily translated message.
func (app *App) text(key string, args ...any) Text {
	return func() string {
		return app.printer().Sprintf(key, args...)
	}
}

func (app *App) colorEnabled() bool {
	if app.color != nil {
		return *app.color
	}
	std, ok := app.out.(*StdOutput)
	if !ok {
		return false
	}

	return util.IsTerminal(std.stdoutFile()) && !color.NoColor
}

func (app *App) width() int {
	if std, ok := app.out.(*StdOutput); ok {
		return util.TerminalWidth(std.stdoutFile())
	}

	return util.DefaultWidth
}

// Command creates a command. A command with subcommands also receives a
// hidden "help" subcommand rendering help for it or any of its descendants.
func (app *App) Command(name string, configs ...ConfigureCommandFunc) *Command {
	cmd := app.newCommand(name, configs...)
	if cmd.completion {
		cmd.addChild(app.completionCommand(cmd))
	}
	if len(cmd.children) > 0 {
		cmd.addChild(app.helpCommand(cmd))
	}

	return cmd
}

func (app *App) newCommand(name string, configs ...ConfigureCommandFunc) *Command {
	cmd := &Command{Name: name, app: app}
	for _, config := range configs {
		config(cmd)
	}
	for _, child := range cmd.children {
		child.parent = cmd
	}

	return cmd
}

func (app *App) rootContext(c *Command) *Context {
	return &Context{
		Bin:    app.bin,
		Path:   c.lineage(),
		Value:  app.value,
		Out:    app.out,
		Logger: app.logger,
	}
}
