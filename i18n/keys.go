package i18n

// Message keys of the embedded catalogue.
const (
	KeyUsage       = "help.usage"
	KeyCommands    = "help.commands"
	KeyFlags       = "help.flags"
	KeyGlobalFlags = "help.global_flags"
	KeyArguments   = "help.arguments"
	KeyAliases     = "help.aliases"
	KeyDefault     = "help.default"
	KeyOptional    = "help.optional"
	KeyMore        = "help.more"

	KeyFlagHelp          = "flag.help"
	KeyFlagVersion       = "flag.version"
	KeyCommandHelp       = "command.help"
	KeyCommandCommands   = "command.commands"
	KeyCommandCompletion = "command.completion"

	KeySeeHelp          = "error.see_help"
	KeyUnknownFlag      = "error.unknown_flag"
	KeyDidYouMean       = "error.did_you_mean"
	KeyInvalidFlagType  = "error.invalid_flag_type"
	KeyInvalidFlagValue = "error.invalid_flag_value"
	KeyInvalidFlag      = "error.invalid_flag"
	KeyInvalidArgType   = "error.invalid_arg_type"
	KeyInvalidArgValue  = "error.invalid_arg_value"
	KeyInvalidArg       = "error.invalid_arg"
	KeyArgsTooFew       = "error.args_too_few"
	KeyArgsTooMany      = "error.args_too_many"
	KeyUnknownHelpTopic = "error.unknown_help_topic"

	KeyEnvFailed  = "env.failed"
	KeyEnvMissing = "env.missing"
	KeyEnvInvalid = "env.invalid"
)
