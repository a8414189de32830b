// errors.go - Error kinds returned by the catalog service
//
// Stores report models.Err* sentinels; translate turns them into these kinds
// so callers only need errors.Is / errors.As against this package.

package catalog // Declares the package name

import ( // Import required packages
	"errors"                    // Sentinels and errors.Is
	"fmt"                       // Wrapping with %w
	"go-catalog-backend/models" // Store sentinels
)

var (
	// ErrNotFound matches every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique name is already taken.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

// Error - "field: message"
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid builds a *ValidationError
func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Kind string // "product" or "category"
	Key  string
}

// Error - e.g. `product "p1" not found`
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Is - Lets errors.Is(err, ErrNotFound) match any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// translate maps store sentinels onto the service's error kinds.
func translate(err error, kind, key string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrCategoryNotFound):
		return &NotFoundError{Kind: kind, Key: key}
	case errors.Is(err, models.ErrDuplicate):
		return fmt.Errorf("%s %q: %w", kind, key, ErrConflict)
	default:
		return fmt.Errorf("%s %q: %w", kind, key, err)
	}
}
