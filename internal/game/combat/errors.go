package combat

import (
	"errors"
	"fmt"
)

// ErrIllegalOperation is returned when an operation is not allowed in the
// current state. The caller's state is never modified.
var ErrIllegalOperation = errors.New("combat: illegal operation")

// ErrUnknownCombatant is returned for an ID that is not in the encounter.
var ErrUnknownCombatant = fmt.Errorf("%w: unknown combatant", ErrIllegalOperation)

// ValidationError reports malformed input to an operation.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("combat: invalid %s: %s", e.Field, e.Reason)
}

// IsIllegal reports whether err is an illegal operation.
func IsIllegal(err error) bool { return errors.Is(err, ErrIllegalOperation) }

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalOperation, fmt.Sprintf(format, args...))
}

func unknownCombatant(id string) error {
	return fmt.Errorf("%w %q", ErrUnknownCombatant, id)
}
