package argot

import (
	"fmt"

	"github.com/marrec/argot/types"
)

// WithAliases appends alias names under which the argument can be
// supplied, e.g. "--foo" and "-f". A positional argument takes a single
// bare name.
func WithAliases(names ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Names = append(argument.Names, names...)
	}
}

// WithKind selects the storage shape and accumulation rule of the
// argument's value - one of Scalar, Array, Pair, Standalone or Counter.
func WithKind(kind types.Kind) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Kind = kind
	}
}

// WithArity selects how many tokens a positional argument consumes.
// Named arguments ignore it.
func WithArity(arity types.Arity) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Nargs = arity
	}
}

// WithSplitOn sets the delimiter on which a raw value is split before
// interpretation. Only meaningful for Array and Pair kinds.
func WithSplitOn(delimiter string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.SplitOn = delimiter
	}
}

// WithChoices restricts the argument to an exact-match allow-list.
// Mutually exclusive with WithFoldedChoices and WithValidator.
func WithChoices(choices ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if len(argument.Choices) > 0 {
			argument.choiceConflict = true
			if err != nil {
				*err = fmt.Errorf("%w: choices already configured", ErrConflictingChoices)
			}
			return
		}
		argument.Choices = choices
		argument.FoldChoices = false
	}
}

// WithFoldedChoices restricts the argument to a case-insensitive
// allow-list. Mutually exclusive with WithChoices and WithValidator.
func WithFoldedChoices(choices ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if len(argument.Choices) > 0 {
			argument.choiceConflict = true
			if err != nil {
				*err = fmt.Errorf("%w: choices already configured", ErrConflictingChoices)
			}
			return
		}
		argument.Choices = choices
		argument.FoldChoices = true
	}
}

// WithValidator sets a predicate validator invoked with every resolved
// value; any failure surfaces as a validation error during Parse.
func WithValidator(validate ValidateFunc) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Validate = validate
	}
}

// WithDefaultValue sets the value applied when the argument is absent
// from the Namespace after a parse. The default is interpreted exactly
// like a supplied raw value, so Array and Pair defaults may use the
// configured split delimiter.
func WithDefaultValue(value string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.DefaultValue = value
		argument.HasDefault = true
	}
}

// WithDest overrides the canonical Namespace key derived from the first
// name.
func WithDest(dest string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Dest = dest
	}
}

// SetRequired when true, the argument must be supplied on the command
// line. Standalone and Counter arguments are never required - they carry
// an implicit default.
func SetRequired(required bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Required = required
		argument.requiredSet = true
	}
}

// WithDescription the description will be used in usage output presented to the user
func WithDescription(description string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Description = description
	}
}

// WithMetavar overrides the value placeholder shown in usage output.
func WithMetavar(metavar string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Metavar = metavar
	}
}
