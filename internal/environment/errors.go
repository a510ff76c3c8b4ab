package environment

import (
	"errors"
	"fmt"
)

// ErrContractViolation means the flag mapping handed to the resolver could
// not have come from the flag parser. It indicates a caller bug.
var ErrContractViolation = errors.New("flag mapping violates the parser contract")

// ContractError names the offending flag.
type ContractError struct {
	Flag   string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: --%s %s", ErrContractViolation, e.Flag, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}
