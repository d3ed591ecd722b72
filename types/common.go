package types

// Kind selects the storage shape and accumulation rule of a parsed value
// (such as Scalar, Array, Pair)
type Kind int

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Pair:
		return "pair"
	case Standalone:
		return "standalone"
	case Counter:
		return "counter"
	case Empty:
		fallthrough
	default:
		return "empty"
	}
}

const (
	Empty      Kind = iota // Empty denotes an argument whose kind has not been set
	Scalar     Kind = 1    // Scalar denotes an argument holding a single string value, overwritten on each parse
	Array      Kind = 2    // Array denotes an argument holding an ordered list of values, appended to across parses
	Pair       Kind = 3    // Pair denotes an argument holding key=value entries, merged across parses
	Standalone Kind = 4    // Standalone denotes a boolean argument which takes no value
	Counter    Kind = 5    // Counter denotes an argument counting its occurrences
)

// Arity governs how many tokens a positional argument consumes. Named
// arguments ignore it and always consume the next token.
type Arity int

const (
	ExactlyOne Arity = iota // ExactlyOne claims a single token
	ZeroOrOne               // ZeroOrOne claims a token opportunistically
	OneOrMore               // OneOrMore claims at least one token and as many as remain unreserved
	Remaining               // Remaining claims every remaining token, flag-shaped or not
)

// String returns the string representation of an Arity
func (a Arity) String() string {
	switch a {
	case ExactlyOne:
		return "1"
	case ZeroOrOne:
		return "?"
	case OneOrMore:
		return "+"
	case Remaining:
		return "*"
	}
	return "unknown"
}

// Bounds returns the minimum and maximum number of tokens the arity may
// claim. A negative maximum means unbounded.
func (a Arity) Bounds() (min, max int) {
	switch a {
	case ExactlyOne:
		return 1, 1
	case ZeroOrOne:
		return 0, 1
	case OneOrMore:
		return 1, -1
	case Remaining:
		return 0, -1
	}
	return 0, 0
}

// KeyValue denotes Key Value pairs
type KeyValue[K, V any] struct {
	Key   K
	Value V
}
