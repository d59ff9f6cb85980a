package gocli

import (
	"context"
	"testing"

	"github.com/napalu/gocli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConfigFuncs(t *testing.T) {
	app, _ := newTestApp()
	child := app.Command("watch")
	cmd := app.Command("build",
		WithAliases("b", "bld"),
		WithDescription("Build"),
		WithLongDescription("Build every target"),
		WithUsage("build [targets...]"),
		WithFlags(Flags(F("out", String().Optional()))),
		WithArgs(VariadicArgs(NewArg("targets", schema.String()))),
		WithSubcommands(child),
	)

	assert.Equal(t, []string{"b", "bld"}, cmd.Aliases)
	assert.Equal(t, "Build", cmd.Description)
	assert.Equal(t, "Build every target", cmd.LongDescription)
	assert.Equal(t, "build [targets...]", cmd.Usage)
	assert.Equal(t, 1, cmd.Flags().Len())
	require.NotNil(t, cmd.Args())
	assert.Same(t, cmd, child.Parent())

	found, ok := cmd.Lookup("watch")
	require.True(t, ok)
	assert.Same(t, child, found)

	names := make([]string, 0, len(cmd.Children()))
	for _, c := range cmd.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"watch", "help"}, names)
}

func TestWithHidden(t *testing.T) {
	app, _ := newTestApp()
	cmd := app.Command("secret", WithHidden())

	assert.True(t, cmd.Hidden)
	assert.Equal(t, 0, cmd.Flags().Len())
	assert.Nil(t, cmd.Args())
}

func TestLifecycleConfigFuncs(t *testing.T) {
	app, _ := newTestApp()
	var order []string
	record := func(name string) Action {
		return func(context.Context, *Input) error {
			order = append(order, name)
			return nil
		}
	}
	cmd := app.Command("tool",
		WithPreRun(record("pre")),
		WithRun(record("run")),
		WithPostRun(record("post")),
	)

	require.NoError(t, cmd.Execute(context.Background(), []string{}))
	assert.Equal(t, []string{"pre", "run", "post"}, order)
}
