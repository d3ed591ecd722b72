package argot

import "errors"

// Sentinel errors returned by registration and parsing. Call sites wrap
// them with context via fmt.Errorf("%w: ..."); match with errors.Is.
var (
	ErrDuplicateArgument  = errors.New("argument already registered")
	ErrDuplicateCommand   = errors.New("command already registered")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingRequired    = errors.New("missing required argument")
	ErrArity              = errors.New("wrong number of values")
	ErrValidation         = errors.New("validation failed")
	ErrConflictingChoices = errors.New("conflicting choice configuration")
	ErrInvalidArgument    = errors.New("invalid argument specification")
)
