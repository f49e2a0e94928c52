package freeze

import "fmt"

// RejectedError reports an administrative operation refused because its
// precondition did not hold. Nothing was mutated.
type RejectedError struct {
	Op     string
	Cell   int
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s at cell %d rejected: %s", e.Op, e.Cell, e.Reason)
}

func reject(op string, cell int, reason string) error {
	return &RejectedError{Op: op, Cell: cell, Reason: reason}
}
