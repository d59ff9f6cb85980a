package gocli

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Lines adapts a producer of lines into an Action writing each line to
// standard output. Lines are written in order while the producer runs; the
// action returns once both are done.
func Lines(produce func(ctx context.Context, in *Input) iter.Seq[string]) Action {
	return func(ctx context.Context, in *Input) error {
		lines := make(chan string)
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			defer close(lines)
			for line := range produce(gctx, in) {
				select {
				case lines <- line:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
		g.Go(func() error {
			return writeLines(in.Ctx.Out, lines)
		})

		return g.Wait()
	}
}

// StreamLines adapts a channel-based producer into an Action writing each line to
// standard output in arrival order. The producer closes the channel when done.
func StreamLines(produce func(ctx context.Context, in *Input) <-chan string) Action {
	return func(ctx context.Context, in *Input) error {
		g, gctx := errgroup.WithContext(ctx)
		lines := produce(gctx, in)
		g.Go(func() error {
			return writeLines(in.Ctx.Out, lines)
		})

		return g.Wait()
	}
}

// writeLines drains lines even after a failed write so the producer is
// never left blocked.
func writeLines(out Output, lines <-chan string) error {
	var err error
	for line := range lines {
		if err != nil {
			continue
		}
		err = out.WriteLine(Stdout, line)
	}

	return err
}
