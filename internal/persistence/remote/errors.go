package remote

import (
	"fmt"

	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
)

// StatusError is returned when the backend answers with a non-2xx code.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap lets callers match the error with errors.Is(err, persistence.ErrRejected).
func (e *StatusError) Unwrap() error { return persistence.ErrRejected }
