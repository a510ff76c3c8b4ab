package flags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnrecognizedFlag is returned for a flag name outside the create_env flag set.
	ErrUnrecognizedFlag = errors.New("unrecognized flag")
	// ErrMissingValue is returned when a value-taking flag is given no value.
	ErrMissingValue = errors.New("missing flag value")
	// ErrInvalidEnumValue is returned when --stack or --db_stack is outside its allowed set.
	ErrInvalidEnumValue = errors.New("invalid flag value")
	// ErrTypeMismatch is returned when an integer flag receives a non-integer value.
	ErrTypeMismatch = errors.New("flag value has the wrong type")
	// ErrInvalidInstanceSize is returned for an --app_size or --db_size outside the catalog.
	// It is the one terminal validation failure.
	ErrInvalidInstanceSize = errors.New("unknown instance size")
	// ErrUnexpectedArgument is returned for positional tokens; create_env takes none.
	ErrUnexpectedArgument = errors.New("unexpected argument")
	// ErrHelpRequested is returned after usage was written for --help.
	ErrHelpRequested = errors.New("help requested")
)

// FlagError describes a rejected token. Allowed lists the accepted values
// for enum and instance-size failures.
type FlagError struct {
	Flag    string
	Value   string
	Allowed []string
	err     error
}

func newFlagError(err error, flag, value string, allowed []string) *FlagError {
	return &FlagError{
		Flag:    flag,
		Value:   value,
		Allowed: append([]string(nil), allowed...),
		err:     err,
	}
}

func (e *FlagError) Error() string {
	switch {
	case errors.Is(e.err, ErrUnrecognizedFlag):
		return fmt.Sprintf("unrecognized flag %s", e.Value)
	case errors.Is(e.err, ErrMissingValue):
		return fmt.Sprintf("flag --%s expects a value", e.Flag)
	case errors.Is(e.err, ErrInvalidEnumValue):
		return fmt.Sprintf("invalid value %q for --%s: must be one of %s", e.Value, e.Flag, strings.Join(e.Allowed, ", "))
	case errors.Is(e.err, ErrTypeMismatch):
		return fmt.Sprintf("invalid value %q for --%s: expected a non-negative integer", e.Value, e.Flag)
	case errors.Is(e.err, ErrInvalidInstanceSize):
		return fmt.Sprintf("unknown instance size: %s. Please, use one of the following list: %s", e.Value, quoteList(e.Allowed))
	case errors.Is(e.err, ErrUnexpectedArgument):
		return fmt.Sprintf("unexpected argument %q", e.Value)
	default:
		return e.err.Error()
	}
}

func (e *FlagError) Unwrap() error {
	return e.err
}

// Terminal reports whether the failure should end the process after the
// catalog has been shown to the user.
func (e *FlagError) Terminal() bool {
	return errors.Is(e.err, ErrInvalidInstanceSize)
}

// IsTerminal reports whether err carries a terminal flag failure.
func IsTerminal(err error) bool {
	var flagErr *FlagError
	return errors.As(err, &flagErr) && flagErr.Terminal()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
