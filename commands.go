package argot

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Command binds a name (and optional aliases) to a child parser. The
// child's own command table, if any, is never consulted - commands
// resolve exactly one level deep.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Callback    CommandFunc
	Parser      *Parser
}

// NewCommand convenience initialization method to configure a command
func NewCommand(configs ...ConfigureCommandFunc) *Command {
	command := &Command{}
	for _, config := range configs {
		config(command)
	}

	return command
}

// WithCommandName sets the primary name under which the command is dispatched
func WithCommandName(name string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Name = name
	}
}

// WithCommandAliases sets alternative names under which the command is dispatched
func WithCommandAliases(aliases ...string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Aliases = aliases
	}
}

// WithCommandDescription sets the short help shown in the command list
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Description = description
	}
}

// WithCallback sets a callback queued when the command is dispatched and
// run by ExecuteCommands
func WithCallback(callback CommandFunc) ConfigureCommandFunc {
	return func(command *Command) {
		command.Callback = callback
	}
}

// WithCommandParser sets the child parser the command delegates to
func WithCommandParser(parser *Parser) ConfigureCommandFunc {
	return func(command *Command) {
		command.Parser = parser
	}
}

// Router manages the one-level table of named child parsers. Unlike
// argument registration there is no reset: a bound name stays bound.
type Router struct {
	commands *orderedmap.OrderedMap[string, *Command]
	lookup   map[string]string
}

// NewRouter creates an empty Router
func NewRouter() *Router {
	return &Router{
		commands: orderedmap.New[string, *Command](),
		lookup:   map[string]string{},
	}
}

// Add binds a command under its name and every alias. Binding a name or
// alias twice fails with ErrDuplicateCommand.
func (r *Router) Add(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("%w: a command needs a name", ErrDuplicateCommand)
	}
	keys := append([]string{cmd.Name}, cmd.Aliases...)
	for _, key := range keys {
		if _, bound := r.lookup[key]; bound {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
		}
	}

	r.commands.Set(cmd.Name, cmd)
	for _, key := range keys {
		r.lookup[key] = cmd.Name
	}

	return nil
}

// Resolve returns the command bound to token as primary name or alias.
func (r *Router) Resolve(token string) (*Command, bool) {
	name, found := r.lookup[token]
	if !found {
		return nil, false
	}

	return r.commands.Get(name)
}

// CopyFrom copies parent's binding table into r. Child parsers are
// shared by reference - only the table itself is copied.
func (r *Router) CopyFrom(parent *Router) error {
	for pair := parent.commands.Oldest(); pair != nil; pair = pair.Next() {
		if err := r.Add(pair.Value); err != nil {
			return err
		}
	}

	return nil
}

// Commands returns the bound commands in registration order.
func (r *Router) Commands() []*Command {
	cmds := make([]*Command, 0, r.commands.Len())
	for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
		cmds = append(cmds, pair.Value)
	}

	return cmds
}

// Len returns the number of bound commands.
func (r *Router) Len() int {
	return r.commands.Len()
}
