package argot

import (
	"fmt"
	"strings"

	"github.com/marrec/argot/parse"
	"github.com/marrec/argot/types"
	"github.com/marrec/argot/util"
)

// restToken is an unconsumed token awaiting positional assignment.
// literal marks tokens that appeared after the end-of-flags marker.
type restToken struct {
	text    string
	literal bool
}

func (t restToken) flagShaped() bool {
	return !t.literal && parse.IsFlag(t.text)
}

// resolve runs the parsing algorithm against store. Only the top-level
// call consults the command router; a dispatched child parser resolves
// the remaining tokens into the same store so accumulation is global
// across levels.
func (p *Parser) resolve(store Store, tokens []string, top bool) ([]string, error) {
	if len(tokens) == 0 && top {
		return nil, nil
	}

	if top && p.router != nil && len(tokens) > 0 && !parse.IsFlag(tokens[0]) && tokens[0] != parse.EndOfFlags {
		cmd, found := p.router.Resolve(tokens[0])
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, tokens[0])
		}
		if cmd.Name == helpCommandName && cmd.Parser == nil {
			return p.runHelp(store, tokens[1:])
		}
		store.SetAttr(CurrentCommandKey, ScalarValue(cmd.Name))
		if cmd.Callback != nil {
			p.callbackQueue.PushBack(commandCallback{callback: cmd.Callback, command: cmd})
		}

		return cmd.Parser.resolve(store, tokens[1:], false)
	}

	return p.resolveArgs(store, tokens)
}

func (p *Parser) resolveArgs(store Store, tokens []string) ([]string, error) {
	state := parse.NewState(tokens)

	var rest []restToken
	literal := false
	for state.Advance() {
		current := state.CurrentArg()
		if !literal && current == parse.EndOfFlags {
			literal = true
			continue
		}
		if literal || !parse.IsFlag(current) {
			rest = append(rest, restToken{text: current, literal: literal})
			continue
		}

		name, attached, hasAttached := parse.SplitFlag(current)
		argument, found := p.registry.LookupByToken(name)
		if !found {
			rest = append(rest, restToken{text: current})
			continue
		}
		switch argument.Kind {
		case types.Standalone:
			if hasAttached {
				if err := p.applyValue(store, argument, attached, true); err != nil {
					return nil, err
				}
				continue
			}
			setComplement(store, argument.Destination(), true)
		case types.Counter:
			if hasAttached {
				if err := p.applyValue(store, argument, attached, true); err != nil {
					return nil, err
				}
				continue
			}
			prior, _ := store.GetAttr(argument.Destination())
			store.SetAttr(argument.Destination(), CountValue(prior.Count+1))
		default:
			// without an attached value the next token is always consumed
			raw := attached
			if !hasAttached {
				if !state.Advance() {
					return nil, fmt.Errorf("%w: %s expects a value", ErrArity, name)
				}
				raw = state.CurrentArg()
			}
			if err := p.applyValue(store, argument, raw, true); err != nil {
				return nil, err
			}
		}
	}

	leftover, err := p.resolvePositionals(store, rest)
	if err != nil {
		return nil, err
	}
	if err := p.applyDefaults(store); err != nil {
		return nil, err
	}
	if err := p.checkRequired(store); err != nil {
		return nil, err
	}

	return leftover, nil
}

// resolvePositionals assigns the unconsumed tokens to the positional
// specifications in declaration order. Each specification claims tokens
// per its arity while reserving the fixed minimums of later
// specifications; flag-shaped tokens are skipped (and stay leftover)
// unless a Remaining specification claims the rest wholesale.
func (p *Parser) resolvePositionals(store Store, rest []restToken) ([]string, error) {
	specs := p.registry.Positionals()
	claimed := make([]bool, len(rest))

	available := 0
	for _, token := range rest {
		if !token.flagShaped() {
			available++
		}
	}

	scan := 0
	takeOne := func() (string, bool) {
		for scan < len(rest) {
			i := scan
			scan++
			if claimed[i] || rest[i].flagShaped() {
				continue
			}
			claimed[i] = true
			available--
			return rest[i].text, true
		}
		return "", false
	}

	for index, argument := range specs {
		reserve := 0
		for _, later := range specs[index+1:] {
			min, _ := later.Nargs.Bounds()
			reserve += min
		}

		switch argument.Nargs {
		case types.Remaining:
			for i := 0; i < len(rest); i++ {
				if claimed[i] {
					continue
				}
				claimed[i] = true
				if err := p.applyValue(store, argument, rest[i].text, true); err != nil {
					return nil, err
				}
			}
			scan = len(rest)
			available = 0
		case types.OneOrMore:
			want := available - reserve
			if want < 1 {
				if argument.isRequired() {
					return nil, fmt.Errorf("%w: positional %q needs at least one value", ErrArity, argument.Destination())
				}
				continue
			}
			for taken := 0; taken < want; taken++ {
				text, ok := takeOne()
				if !ok {
					break
				}
				if err := p.applyValue(store, argument, text, true); err != nil {
					return nil, err
				}
			}
		case types.ZeroOrOne:
			if available-reserve < 1 {
				continue
			}
			if text, ok := takeOne(); ok {
				if err := p.applyValue(store, argument, text, true); err != nil {
					return nil, err
				}
			}
		default: // ExactlyOne
			if available-reserve < 1 {
				if argument.isRequired() {
					return nil, fmt.Errorf("%w: positional %q needs a value", ErrArity, argument.Destination())
				}
				continue
			}
			if text, ok := takeOne(); ok {
				if err := p.applyValue(store, argument, text, true); err != nil {
					return nil, err
				}
			}
		}
	}

	var leftover []string
	for i, token := range rest {
		if !claimed[i] {
			leftover = append(leftover, token.text)
		}
	}

	return leftover, nil
}

// applyValue interprets a raw value per the argument's kind and writes
// the result into store. Defaults reuse this path with validated=false
// so they bypass choice and predicate validation.
func (p *Parser) applyValue(store Store, argument *Argument, raw string, validated bool) error {
	dest := argument.Destination()

	switch argument.Kind {
	case types.Standalone:
		value := true
		if raw != "" {
			parsed, err := util.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrValidation, raw)
			}
			value = parsed
		}
		setComplement(store, dest, value)
	case types.Counter:
		count, err := util.ParseInt(raw)
		if err != nil || count < 0 {
			return fmt.Errorf("%w: %q is not a count", ErrValidation, raw)
		}
		store.SetAttr(dest, CountValue(int(count)))
	case types.Array:
		elements := splitValue(raw, argument.SplitOn)
		if validated {
			for _, element := range elements {
				if err := argument.checkValue(element); err != nil {
					return err
				}
			}
		}
		prior, _ := store.GetAttr(dest)
		combined := make([]string, 0, len(prior.List)+len(elements))
		combined = append(combined, prior.List...)
		combined = append(combined, elements...)
		store.SetAttr(dest, ListValue(combined...))
	case types.Pair:
		prior, _ := store.GetAttr(dest)
		merged := make(map[string]string, len(prior.Map))
		for key, value := range prior.Map {
			merged[key] = value
		}
		for _, element := range splitValue(raw, argument.SplitOn) {
			idx := strings.Index(element, "=")
			if idx < 0 {
				return fmt.Errorf("%w: %q is not a key=value pair", ErrValidation, element)
			}
			pair := types.KeyValue[string, string]{Key: element[:idx], Value: element[idx+1:]}
			if validated {
				if err := argument.checkValue(pair.Value); err != nil {
					return err
				}
			}
			merged[pair.Key] = pair.Value
		}
		store.SetAttr(dest, MapValue(merged))
	default: // Scalar
		if validated {
			if err := argument.checkValue(raw); err != nil {
				return err
			}
		}
		store.SetAttr(dest, ScalarValue(raw))
	}

	return nil
}

// applyDefaults materializes the kind-shaped default of every
// specification still absent from store. Standalone and Counter
// arguments always materialize (false and 0 respectively) so their
// accessors and the no_ complement invariant hold after every parse.
func (p *Parser) applyDefaults(store Store) error {
	for _, argument := range p.registry.All() {
		dest := argument.Destination()
		if _, present := store.GetAttr(dest); present {
			continue
		}
		switch argument.Kind {
		case types.Standalone:
			if !argument.HasDefault {
				setComplement(store, dest, false)
				continue
			}
			if err := p.applyValue(store, argument, argument.DefaultValue, false); err != nil {
				return err
			}
		case types.Counter:
			if !argument.HasDefault {
				store.SetAttr(dest, CountValue(0))
				continue
			}
			if err := p.applyValue(store, argument, argument.DefaultValue, false); err != nil {
				return err
			}
		default:
			if !argument.HasDefault {
				continue
			}
			if err := p.applyValue(store, argument, argument.DefaultValue, false); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Parser) checkRequired(store Store) error {
	for _, argument := range p.registry.Named() {
		if !argument.isRequired() {
			continue
		}
		if argument.Kind == types.Standalone || argument.Kind == types.Counter {
			continue
		}
		if _, present := store.GetAttr(argument.Destination()); !present {
			return fmt.Errorf("%w: %s", ErrMissingRequired, argument.longName())
		}
	}

	return nil
}

// runHelp implements the implicit help command: an optional first token
// names the target command (recorded under help_command), --all/-a asks
// for the expanded listing, everything else stays leftover.
func (p *Parser) runHelp(store Store, rest []string) ([]string, error) {
	all := false
	target := ""
	var leftover []string
	for i, token := range rest {
		switch {
		case token == "--all" || token == "-a":
			all = true
		case i == 0 && !parse.IsFlag(token):
			target = token
		default:
			leftover = append(leftover, token)
		}
	}

	if target != "" {
		store.SetAttr(HelpCommandKey, ScalarValue(target))
		if cmd, found := p.router.Resolve(target); found && cmd.Parser != nil {
			cmd.Parser.PrintUsage(p.helpWriter)
			return leftover, nil
		}
	}
	if all {
		p.PrintUsageWithCommands(p.helpWriter)
	} else {
		p.PrintUsage(p.helpWriter)
	}

	return leftover, nil
}

func setComplement(store Store, dest string, value bool) {
	store.SetAttr(dest, FlagValue(value))
	store.SetAttr(noPrefix+dest, FlagValue(!value))
}

func splitValue(raw, delimiter string) []string {
	if delimiter == "" {
		return []string{raw}
	}

	return strings.Split(raw, delimiter)
}
