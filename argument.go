package argot

import (
	"fmt"
	"strings"

	"github.com/marrec/argot/types"
)

// Argument is the declarative descriptor of a single command-line
// argument. Names is the ordered alias set: flag aliases such as "-f" or
// "--foo" for a named argument, or a single bare name for a positional
// one. An Argument must not be mutated after registration.
type Argument struct {
	Names        []string
	Dest         string // canonical Namespace key; derived from the first name when empty
	Kind         types.Kind
	Nargs        types.Arity // positional arity; ignored for named arguments
	SplitOn      string      // optional delimiter, valid for Array and Pair kinds only
	Choices      []string
	FoldChoices  bool // match Choices case-insensitively
	Validate     ValidateFunc
	DefaultValue string
	HasDefault   bool
	Required     bool
	Description  string
	Metavar      string

	requiredSet    bool
	choiceConflict bool // both choice forms were configured; rejected by validate
}

// NewArgument convenience initialization method to describe an argument.
// Alternatively, use NewArg to configure an Argument using option functions.
func NewArgument(name string, description string, kind types.Kind) *Argument {
	return &Argument{
		Names:       []string{name},
		Kind:        kind,
		Description: description,
	}
}

// NewArg convenience initialization method to configure an argument
func NewArg(configs ...ConfigureArgumentFunc) *Argument {
	argument := &Argument{}
	for _, config := range configs {
		config(argument, nil)
	}

	return argument
}

// Set configures the Argument instance with the provided
// ConfigureArgumentFunc(s), and returns an error if a configuration
// results in an error.
func (a *Argument) Set(configs ...ConfigureArgumentFunc) error {
	var err error
	for _, config := range configs {
		config(a, &err)
		if err != nil {
			return err
		}
	}
	return nil
}

// String returns a string representation of the Argument instance
func (a *Argument) String() string {
	return strings.TrimLeft(fmt.Sprintf("%s %s %s", strings.Join(a.Names, " or "), a.Description, a.describeRequired()), " ")
}

// Destination returns the canonical key under which the argument's value
// is stored: Dest when set, otherwise the first name with leading dashes
// stripped and hyphens normalized to underscores.
func (a *Argument) Destination() string {
	if a.Dest != "" {
		return a.Dest
	}
	if len(a.Names) == 0 {
		return ""
	}

	return DefaultDestConverter(strings.TrimLeft(a.Names[0], "-"))
}

// IsPositional reports whether the argument is identified by position
// rather than by a flag alias.
func (a *Argument) IsPositional() bool {
	if len(a.Names) == 0 {
		return false
	}
	for _, name := range a.Names {
		if strings.HasPrefix(name, "-") {
			return false
		}
	}

	return true
}

func (a *Argument) isRequired() bool {
	if a.requiredSet {
		return a.Required
	}
	if a.IsPositional() {
		min, _ := a.Nargs.Bounds()
		return min > 0
	}

	return a.Required
}

func (a *Argument) describeRequired() string {
	if a.isRequired() {
		return "required"
	}

	return "optional"
}

// longName returns the first double-dash alias, falling back to the
// first name, for display purposes.
func (a *Argument) longName() string {
	for _, name := range a.Names {
		if strings.HasPrefix(name, "--") {
			return name
		}
	}
	if len(a.Names) > 0 {
		return a.Names[0]
	}

	return ""
}

// plainName returns the canonical name without flag prefixes.
func (a *Argument) plainName() string {
	return strings.TrimLeft(a.longName(), "-")
}

func (a *Argument) validate() error {
	if len(a.Names) == 0 {
		return fmt.Errorf("%w: an argument needs at least one name", ErrInvalidArgument)
	}
	for _, name := range a.Names {
		if name == "" || name == "-" || name == "--" {
			return fmt.Errorf("%w: %q is not a usable name", ErrInvalidArgument, name)
		}
	}
	positional := a.IsPositional()
	if !positional {
		for _, name := range a.Names {
			if !strings.HasPrefix(name, "-") {
				return fmt.Errorf("%w: cannot mix flag aliases and the positional name %q", ErrInvalidArgument, name)
			}
		}
	}
	if positional && len(a.Names) > 1 {
		return fmt.Errorf("%w: a positional argument takes a single name", ErrInvalidArgument)
	}
	if a.SplitOn != "" && a.Kind != types.Array && a.Kind != types.Pair {
		return fmt.Errorf("%w: split delimiters only apply to array and pair arguments", ErrInvalidArgument)
	}
	if a.choiceConflict {
		return fmt.Errorf("%w: choices already configured", ErrConflictingChoices)
	}
	if a.Validate != nil && len(a.Choices) > 0 {
		return fmt.Errorf("%w: choices and a predicate validator are mutually exclusive", ErrConflictingChoices)
	}

	return nil
}

// checkValue applies the configured validator variant to a single
// resolved value.
func (a *Argument) checkValue(value string) error {
	if len(a.Choices) > 0 {
		for _, choice := range a.Choices {
			if choice == value || a.FoldChoices && strings.EqualFold(choice, value) {
				return nil
			}
		}
		return fmt.Errorf("%w: %q is not one of %s", ErrValidation, value, strings.Join(a.Choices, ", "))
	}
	if a.Validate != nil {
		if err := a.Validate(value); err != nil {
			return fmt.Errorf("%w: %q: %s", ErrValidation, value, err)
		}
	}

	return nil
}

// clone produces an independent copy; mutating the copy never affects
// the original.
func (a *Argument) clone() *Argument {
	dup := *a
	dup.Names = append([]string(nil), a.Names...)
	dup.Choices = append([]string(nil), a.Choices...)

	return &dup
}
