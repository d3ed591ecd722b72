package argot

import "io"

// WithArgument is a wrapper for AddArgument which is used to define an
// argument under a primary name - a flag alias such as "--verbose" or a
// bare positional name.
func WithArgument(name string, argument *Argument) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		*err = parser.AddArgument(name, argument)
	}
}

// WithCommand is a wrapper for AddCommand which is used to bind a
// subcommand.
func WithCommand(command *Command) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		*err = parser.AddCommand(command)
	}
}

// WithNamespace supplies a pre-populated result store, e.g. to seed
// values from configuration before the first parse.
func WithNamespace(store Store) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.store = store
	}
}

// WithProg sets the program name shown in usage output.
func WithProg(prog string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.prog = prog
	}
}

// WithParserDescription sets the description shown under the usage line.
func WithParserDescription(description string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.description = description
	}
}

// WithEpilog sets the trailing text of the usage output.
func WithEpilog(epilog string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.epilog = epilog
	}
}

// WithHelpWriter redirects usage output; the default is os.Stdout.
func WithHelpWriter(writer io.Writer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.helpWriter = writer
	}
}
