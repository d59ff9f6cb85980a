package gocli

import (
	"log/slog"

	"github.com/napalu/gocli/i18n"
	"golang.org/x/text/language"
)

// ConfigureAppFunc configures an App created with New.
//
// Configuration example:
//
//	app := gocli.New("tool",
//		gocli.WithGlobalFlags(gocli.Flags(
//			gocli.F("verbose", gocli.Boolean().Alias("v").Optional()),
//		)),
//		gocli.WithLanguage(language.German),
//		gocli.WithVersion("1.2.0"))
type ConfigureAppFunc func(app *App)

// WithGlobalFlags sets the flags every command of the App accepts. The
// built-in help (and version) flags are merged on top.
func WithGlobalFlags(fs *FlagSet) ConfigureAppFunc {
	return func(app *App) {
		app.userGlobals = fs
	}
}

// WithContextValue sets the user value carried by every Context.
func WithContextValue(v any) ConfigureAppFunc {
	return func(app *App) {
		app.value = v
	}
}

// WithOutput replaces the process-bound output.
func WithOutput(out Output) ConfigureAppFunc {
	return func(app *App) {
		if out != nil {
			app.out = out
		}
	}
}

// WithLogger sets the logger receiving dispatch diagnostics. The default
// logger discards everything.
func WithLogger(logger *slog.Logger) ConfigureAppFunc {
	return func(app *App) {
		if logger != nil {
			app.logger = logger
		}
	}
}

// WithLanguage selects the language of help and error messages. Languages
// without translations fall back to English.
func WithLanguage(lang language.Tag) ConfigureAppFunc {
	return func(app *App) {
		app.lang = lang
	}
}

// WithBundle replaces the message catalog.
func WithBundle(b *i18n.Bundle) ConfigureAppFunc {
	return func(app *App) {
		if b != nil {
			app.bundle = b
		}
	}
}

// WithFlagNameConverter accepts an alternative spelling of every flag name,
// for instance ToKebabCase turns "dryRun" into "--dry-run" as well.
func WithFlagNameConverter(fn NameConversionFunc) ConfigureAppFunc {
	return func(app *App) {
		app.flagConverter = fn
	}
}

// WithColor forces colored help headings on or off. Without it, color is
// used when standard output is a terminal.
func WithColor(enabled bool) ConfigureAppFunc {
	return func(app *App) {
		app.color = &enabled
	}
}

// WithVersion adds a global --version flag printing version.
func WithVersion(version string) ConfigureAppFunc {
	return func(app *App) {
		app.version = version
	}
}
