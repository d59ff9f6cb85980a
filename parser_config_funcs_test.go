package gocli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/napalu/gocli/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestWithContextValue(t *testing.T) {
	type config struct{ name string }
	app, _ := newTestApp(WithContextValue(&config{name: "prod"}))

	var got any
	cmd := app.Command("tool").Run(func(_ context.Context, in *Input) error {
		got = in.Ctx.Value
		return nil
	})

	require.NoError(t, cmd.Execute(context.Background(), []string{}))
	require.IsType(t, &config{}, got)
	assert.Equal(t, "prod", got.(*config).name)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	app, _ := newTestApp(WithLogger(logger))
	root := app.Command("tool", WithSubcommands(app.Command("build")))

	require.NoError(t, root.Execute(context.Background(), []string{"build"}))
	assert.Contains(t, buf.String(), "routing to subcommand")
	assert.Contains(t, buf.String(), "command=build")
}

func TestWithGlobalFlags(t *testing.T) {
	app, _ := newTestApp(WithGlobalFlags(Flags(F("verbose", Boolean().Alias("v").Optional()))))

	_, ok := app.GlobalFlags().Lookup("verbose")
	assert.True(t, ok)
	_, ok = app.GlobalFlags().Lookup("help")
	assert.True(t, ok)
	_, ok = app.GlobalFlags().Lookup("version")
	assert.False(t, ok)

	var verbose bool
	root := app.Command("tool", WithSubcommands(app.Command("build", WithRun(func(_ context.Context, in *Input) error {
		verbose = in.Flags.Bool("verbose")
		return nil
	}))))
	require.NoError(t, root.Execute(context.Background(), []string{"build", "-v"}))
	assert.True(t, verbose)
}

func TestWithVersion(t *testing.T) {
	app, _ := newTestApp(WithVersion("1.2.3"))

	entry, ok := app.GlobalFlags().Lookup("version")
	require.True(t, ok)
	assert.True(t, entry.Flag().IsGlobal())
}

func TestWithNilValuesKeepDefaults(t *testing.T) {
	app := New("tool", WithOutput(nil), WithLogger(nil), WithBundle(nil))

	assert.IsType(t, &StdOutput{}, app.out)
	assert.NotNil(t, app.logger)
	assert.Same(t, i18n.Default(), app.bundle)
}

func TestWithColor(t *testing.T) {
	app, _ := newTestApp()
	assert.False(t, app.colorEnabled())

	app, _ = newTestApp(WithColor(true))
	assert.True(t, app.colorEnabled())
}

func TestWithLanguage(t *testing.T) {
	app, _ := newTestApp(WithLanguage(language.German))

	assert.Equal(t, "Verwendung: %s", app.printer().Sprintf(i18n.KeyUsage, "%s"))
}
