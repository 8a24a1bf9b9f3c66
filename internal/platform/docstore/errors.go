package docstore

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an identifier does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// InvalidInputError marks a client-side input problem: a missing required
// field, a malformed date, a duplicate business identifier, or a dangling
// reference. Everything that is neither invalid input nor not-found is
// treated as a store failure.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

// Invalidf builds an InvalidInputError with a formatted message.
func Invalidf(format string, args ...interface{}) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err is an InvalidInputError.
func IsInvalid(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Business-identifier uniqueness is enforced by expression
// indexes, so concurrent duplicate creates surface here rather than through
// the read-then-write validation check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// HTTPStatus maps an error to the response status: invalid input is 400,
// not-found is 404, anything else is a store failure reported as 500.
func HTTPStatus(err error) int {
	switch {
	case IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
