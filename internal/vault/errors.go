package vault

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrLocked is returned when an operation requires an unlocked vault.
	ErrLocked = errors.New("vault: not unlocked")

	// ErrAlreadyUnlocked is returned by Unlock and Create while a session
	// is active.
	ErrAlreadyUnlocked = errors.New("vault: already unlocked")

	ErrGroupNotFound = errors.New("vault: group not found")
	ErrItemNotFound  = errors.New("vault: item not found")
)

// ValidationError reports malformed CRUD input: an empty required field or a
// duplicate identifier. It never corrupts in-memory or on-disk state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vault: invalid %s: %s", e.Field, e.Reason)
}

func notFound(base error, id uuid.UUID) error {
	return fmt.Errorf("%w: %s", base, id)
}
