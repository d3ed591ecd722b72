package parse

import (
	"strings"

	"github.com/google/shlex"
)

// EndOfFlags terminates flag interpretation; every token after it is
// treated as positional input.
const EndOfFlags = "--"

// Split tokenizes a raw command line using shell quoting rules.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// IsFlag reports whether a token is flag-shaped: it starts with '-', is
// not the end-of-flags marker and is not a negative number.
func IsFlag(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	if token == EndOfFlags {
		return false
	}
	c := token[1]
	if c >= '0' && c <= '9' || c == '.' {
		return false
	}

	return true
}

// SplitFlag decomposes an assignment token of the form "--flag=value"
// (or "-f=value") into its flag and value parts. ok is false when the
// token is not flag-shaped or carries no assignment.
func SplitFlag(token string) (flag, value string, ok bool) {
	if !IsFlag(token) {
		return token, "", false
	}
	idx := strings.Index(token, "=")
	if idx < 0 {
		return token, "", false
	}

	return token[:idx], token[idx+1:], true
}
