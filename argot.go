// Package argot provides declarative command-line argument parsing.
//
// A caller registers Argument specifications (named flags or positional
// arguments) and optionally one level of named subcommands, then calls
// Parse on a raw token list. Results accumulate across Parse calls in a
// typed Namespace keyed by destination name:
//
//	Scalar - a single string value, overwritten per parse
//	Array - an ordered list, appended to across parses
//	Pair - key=value entries, merged across parses
//	Standalone - a boolean flag paired with its no_ prefixed complement
//	Counter - an occurrence count
//
// Tokens claimed by no specification are returned as leftovers rather
// than failing the parse; the caller decides what to do with them.
package argot

import (
	"fmt"
	"io"
	"os"

	"github.com/ef-ds/deque/v2"

	"github.com/marrec/argot/parse"
	"github.com/marrec/argot/types"
)

// NewParser creates a parser with an empty Namespace and the default
// help flag (--help / -h) bound. Use NewParserWith to configure a parser
// using option functions.
func NewParser() *Parser {
	p := newBareParser()
	_, _ = p.registry.Register(defaultHelpArgument(), false)

	return p
}

func newBareParser() *Parser {
	return &Parser{
		registry:        NewRegistry(),
		store:           NewNamespace(),
		helpWriter:      os.Stdout,
		callbackQueue:   &deque.Deque[commandCallback]{},
		callbackResults: map[string]error{},
	}
}

func defaultHelpArgument() *Argument {
	return NewArg(
		WithAliases(helpFlagLong, helpFlagShort),
		WithKind(types.Standalone),
		WithDest(helpDest),
		WithDescription("show this help and exit"))
}

// NewParserWith allows initialization of a Parser using option
// functions. The caller should always test for error on return because
// Parser will be nil when a configuration fails.
//
// Configuration example:
//
//	parser, err := argot.NewParserWith(
//		argot.WithArgument("--emails",
//			argot.NewArg(
//				argot.WithAliases("-e"),
//				argot.WithKind(types.Array),
//				argot.WithSplitOn(","))),
//		argot.WithArgument("file",
//			argot.NewArg(
//				argot.WithKind(types.Scalar),
//				argot.WithArity(types.ExactlyOne))))
func NewParserWith(configs ...ConfigureParserFunc) (*Parser, error) {
	parser := NewParser()

	var err error
	for _, config := range configs {
		config(parser, &err)
		if err != nil {
			return nil, err
		}
	}

	return parser, nil
}

// NewParserFrom creates a parser inheriting parent's argument
// specifications and command bindings. Specifications are deep-cloned so
// later mutation of either parser never affects the other; command
// bindings share the already constructed child parsers. The new parser
// starts with a fresh, empty Namespace.
func NewParserFrom(parent *Parser) (*Parser, error) {
	p := newBareParser()
	p.prog = parent.prog
	p.description = parent.description
	p.epilog = parent.epilog
	p.helpWriter = parent.helpWriter

	if err := p.registry.CopyFrom(parent.registry); err != nil {
		return nil, err
	}
	if parent.router != nil {
		p.router = NewRouter()
		if err := p.router.CopyFrom(parent.router); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// AddArgument registers an argument specification under a primary name:
// a flag alias such as "--verbose" or "-v", or a bare name for a
// positional argument. Additional aliases can be supplied on the
// Argument itself via WithAliases. Registration fails with
// ErrDuplicateArgument when the destination or any alias is already
// bound; use ReplaceArgument to rebind.
func (p *Parser) AddArgument(name string, argument *Argument) error {
	return p.addArgument(name, argument, false)
}

// ReplaceArgument registers an argument specification like AddArgument
// but displaces any live specification bound to the same destination or
// aliases, clearing the displaced Namespace entries immediately.
// Required and default consistency is only re-checked by the next Parse.
func (p *Parser) ReplaceArgument(name string, argument *Argument) error {
	return p.addArgument(name, argument, true)
}

func (p *Parser) addArgument(name string, argument *Argument, reset bool) error {
	if argument == nil {
		return fmt.Errorf("%w: nil argument", ErrInvalidArgument)
	}
	original := argument.Names
	if name != "" {
		argument.Names = append([]string{name}, argument.Names...)
	}

	displaced, err := p.registry.Register(argument, reset)
	if err != nil {
		argument.Names = original
		return err
	}
	for _, dest := range displaced {
		p.store.DeleteAttr(dest)
		p.store.DeleteAttr(noPrefix + dest)
	}

	return nil
}

// EnableCommands activates subcommand dispatch and binds the implicit
// help command. Calling it again is a no-op; AddCommand calls it
// implicitly.
func (p *Parser) EnableCommands() {
	if p.router != nil {
		return
	}
	p.router = NewRouter()
	_ = p.router.Add(&Command{
		Name:        helpCommandName,
		Description: "show usage for the program or one command",
	})
}

// AddCommand binds a command to the parser. The command's child parser
// is consulted for the tokens following the command name; a command
// without a parser gets a fresh one. Commands resolve exactly one level
// deep - a child's own commands are never dispatched.
func (p *Parser) AddCommand(cmd *Command) error {
	p.EnableCommands()
	if cmd.Parser == nil {
		cmd.Parser = NewParser()
	}

	return p.router.Add(cmd)
}

// Parse resolves a raw token list against the registered specifications,
// accumulating results into the parser's Namespace. It returns the
// leftover tokens claimed by no specification. An empty token list
// leaves the Namespace untouched and yields no leftovers.
func (p *Parser) Parse(tokens []string) ([]string, error) {
	leftovers, err := p.resolve(p.store, tokens, true)
	p.leftovers = leftovers

	return leftovers, err
}

// ParseString splits a raw command line using shell quoting rules and
// parses the resulting tokens.
func (p *Parser) ParseString(line string) ([]string, error) {
	tokens, err := parse.Split(line)
	if err != nil {
		return nil, err
	}

	return p.Parse(tokens)
}

// Namespace returns the result store the parser accumulates into.
func (p *Parser) Namespace() Store {
	return p.store
}

// Leftovers returns the tokens the most recent Parse left unclaimed.
func (p *Parser) Leftovers() []string {
	return p.leftovers
}

// Get returns the scalar value stored under dest.
func (p *Parser) Get(dest string) (string, bool) {
	value, found := p.store.GetAttr(dest)
	if !found || value.Kind != types.Scalar {
		return "", false
	}

	return value.Str, true
}

// GetList returns the sequence stored under dest.
func (p *Parser) GetList(dest string) ([]string, bool) {
	value, found := p.store.GetAttr(dest)
	if !found || value.Kind != types.Array {
		return nil, false
	}

	return value.List, true
}

// GetMap returns the mapping stored under dest.
func (p *Parser) GetMap(dest string) (map[string]string, bool) {
	value, found := p.store.GetAttr(dest)
	if !found || value.Kind != types.Pair {
		return nil, false
	}

	return value.Map, true
}

// GetBool returns the boolean stored under dest, false when absent.
func (p *Parser) GetBool(dest string) bool {
	value, found := p.store.GetAttr(dest)
	return found && value.Kind == types.Standalone && value.Flag
}

// GetCount returns the occurrence count stored under dest, 0 when absent.
func (p *Parser) GetCount(dest string) int {
	value, found := p.store.GetAttr(dest)
	if !found || value.Kind != types.Counter {
		return 0
	}

	return value.Count
}

// CurrentCommand returns the name of the most recently dispatched
// command, or the empty string.
func (p *Parser) CurrentCommand() string {
	value, found := p.store.GetAttr(CurrentCommandKey)
	if !found {
		return ""
	}

	return value.Str
}

// ExecuteCommands runs the command callbacks queued during parsing, in
// dispatch order, and returns the count of errors encountered.
func (p *Parser) ExecuteCommands() int {
	failures := 0
	for p.callbackQueue.Len() > 0 {
		call, _ := p.callbackQueue.PopFront()
		if call.callback == nil {
			continue
		}
		err := call.callback(p, call.command)
		p.callbackResults[call.command.Name] = err
		if err != nil {
			failures++
		}
	}

	return failures
}

// CommandResult returns the error recorded for a command callback run by
// ExecuteCommands.
func (p *Parser) CommandResult(name string) error {
	return p.callbackResults[name]
}

// SetHelpWriter redirects usage output; the default is os.Stdout.
func (p *Parser) SetHelpWriter(writer io.Writer) {
	p.helpWriter = writer
}

// SetProg sets the program name shown in usage output.
func (p *Parser) SetProg(prog string) {
	p.prog = prog
}

// SetDescription sets the description shown under the usage line.
func (p *Parser) SetDescription(description string) {
	p.description = description
}

// SetEpilog sets the trailing text of the usage output.
func (p *Parser) SetEpilog(epilog string) {
	p.epilog = epilog
}
