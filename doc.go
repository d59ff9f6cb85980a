// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package gocli builds command-line interfaces from declarative command trees.
//
// Flags and positional arguments are described with typed schemas (see the
// schema package). A Command parses its arguments, validates them and then
// runs its pre-run, run and post-run actions in order:
//
//	app := gocli.New("tool", gocli.WithGlobalFlags(gocli.GlobalFlags(
//		gocli.F("verbose", gocli.Boolean().Alias("v").Optional()),
//	)))
//	build := app.Command("build",
//		gocli.WithFlags(gocli.Flags(
//			gocli.F("out", gocli.String().Alias("o").Default("dist")),
//		)),
//		gocli.WithArgs(gocli.Args(gocli.NewArg("target", schema.String()))),
//	).Run(func(ctx context.Context, in *gocli.Input) error {
//		fmt.Println(in.Named.String("target"), in.Flags.String("out"))
//		return nil
//	})
//	root := app.Command("tool", gocli.WithSubcommands(build))
//	_ = root.Execute(context.Background(), nil)
//
// Flags support long and short forms, bundled short flags (-abc), --flag=value,
// --no-flag negation for negatable flags, repeated flags collected into arrays
// and a "--" separator. Validation failures print one message followed by a
// hint to run --help and exit with status 1; --help prints usage and exits 0.
package gocli
