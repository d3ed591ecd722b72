package argot

import (
	"io"
	"strings"

	"github.com/ef-ds/deque/v2"
	"github.com/iancoleman/strcase"
)

// ConfigureArgumentFunc is used when defining Argument specifications
type ConfigureArgumentFunc func(argument *Argument, err *error)

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(parser *Parser, err *error)

// ConfigureCommandFunc is used when defining Command options
type ConfigureCommandFunc func(command *Command)

// CommandFunc callback - optionally specified as part of the Command
// structure, queued when the command is dispatched during Parse and run
// by ExecuteCommands.
type CommandFunc func(parser *Parser, command *Command) error

// ValidateFunc is a predicate validator invoked with each resolved raw
// value. Any returned error is surfaced wrapped in ErrValidation.
type ValidateFunc func(value string) error

// NameConversionFunc converts an alias to a destination name
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToSnakeCase converts a string to snake case "my_flag_name"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToKebabCase converts a string to kebab case "my-flag-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToLowerCase converts a string to lower case "myflagname"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	// DefaultDestConverter derives destination names from aliases;
	// hyphens are normalized to underscores.
	DefaultDestConverter NameConversionFunc = ToSnakeCase
)

// Reserved Namespace entries maintained by the resolver.
const (
	// CurrentCommandKey holds the name of the most recently dispatched command
	CurrentCommandKey = "current_command"
	// HelpCommandKey holds the argument given to the implicit help command
	HelpCommandKey = "help_command"
)

const (
	helpCommandName = "help"
	helpFlagLong    = "--help"
	helpFlagShort   = "-h"
	helpDest        = "help"
	noPrefix        = "no_"
)

type commandCallback struct {
	callback CommandFunc
	command  *Command
}

// Parser holds the argument registry, the command router and the
// accumulative Namespace for one parser level. A Parser is not safe for
// concurrent Parse calls; callers are expected to parse sequentially and
// to finish registration before the first Parse.
type Parser struct {
	registry        *Registry
	store           Store
	router          *Router
	prog            string
	description     string
	epilog          string
	helpWriter      io.Writer
	leftovers       []string
	callbackQueue   *deque.Deque[commandCallback]
	callbackResults map[string]error
}
