package gocli

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	app, out := newTestApp()
	cmd := app.Command("tool").Run(Lines(func(_ context.Context, in *Input) iter.Seq[string] {
		return func(yield func(string) bool) {
			for _, arg := range in.Args {
				if !yield("line " + arg.(string)) {
					return
				}
			}
		}
	}))

	require.NoError(t, cmd.Execute(context.Background(), []string{"a", "b", "c"}))
	assert.Equal(t, []string{"line a", "line b", "line c"}, out.stdout)
}

func TestLines_WriteError(t *testing.T) {
	broken := errors.New("broken pipe")
	app, out := newTestApp()
	out.err = broken
	cmd := app.Command("tool").Run(Lines(func(context.Context, *Input) iter.Seq[string] {
		return slices.Values([]string{"a", "b"})
	}))

	assert.ErrorIs(t, cmd.Execute(context.Background(), []string{}), broken)
}

func TestStream(t *testing.T) {
	app, out := newTestApp()
	cmd := app.Command("tool").Run(StreamLines(func(ctx context.Context, _ *Input) <-chan string {
		lines := make(chan string)
		go func() {
			defer close(lines)
			for _, line := range []string{"one", "two", "three"} {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
		}()
		return lines
	}))

	require.NoError(t, cmd.Execute(context.Background(), []string{}))
	assert.Equal(t, []string{"one", "two", "three"}, out.stdout)
}
