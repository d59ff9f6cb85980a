package gocli

// ConfigureCommandFunc configures a Command created with App.Command.
type ConfigureCommandFunc func(cmd *Command)

// WithAliases sets alternative names the command can be invoked by.
func WithAliases(aliases ...string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Aliases = append(cmd.Aliases, aliases...)
	}
}

// WithDescription sets the one-line description shown in command listings.
func WithDescription(description string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Description = description
	}
}

// WithLongDescription sets the text shown at the top of the command's help.
func WithLongDescription(description string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.LongDescription = description
	}
}

// WithUsage replaces the generated usage line.
func WithUsage(usage string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Usage = usage
	}
}

// WithFlags sets the flags local to the command.
func WithFlags(fs *FlagSet) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.flags = fs
	}
}

// WithArgs sets the positional arguments of the command.
func WithArgs(args *Arguments) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.args = args
	}
}

// WithSubcommands adds child commands. A child is selected when the first
// remaining argument matches its name or one of its aliases.
func WithSubcommands(children ...*Command) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.children = append(cmd.children, children...)
	}
}

// WithHidden omits the command from help listings. It can still be invoked.
func WithHidden() ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Hidden = true
	}
}

// WithPreRun sets the action run before the main action.
func WithPreRun(action Action) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.preRun = action
	}
}

// WithRun sets the main action.
func WithRun(action Action) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.run = action
	}
}

// WithPostRun sets the action run after the main action succeeded.
func WithPostRun(action Action) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.postRun = action
	}
}
