package table

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by a ContractViolation.
var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidDelimiter = errors.New("delimiter is not a single ASCII character")
	ErrViewInvalidated  = errors.New("table mutated while a view was in use")
)

// ContractViolation is the panic value raised when a caller breaks a
// precondition: an out-of-range index, an invalid delimiter, or a view
// used after its table changed shape. It is never returned as an error;
// the operation aborts before touching any state.
type ContractViolation struct {
	Op     string
	Err    error
	Detail string
}

func (e *ContractViolation) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *ContractViolation) Unwrap() error {
	return e.Err
}

// Violate panics with a ContractViolation. It is exported so sibling
// packages (the DSV parser) report misuse the same way.
func Violate(op string, err error, format string, args ...any) {
	panic(&ContractViolation{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)})
}
