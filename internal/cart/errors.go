package cart

import "fmt"

// ValidationError rejects malformed input to a cart mutation. The mutation
// is not applied; state is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
