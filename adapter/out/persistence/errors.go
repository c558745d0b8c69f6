package persistence

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when the targeted row does not exist.
var ErrNotFound = errors.New("not found")

// noRows reports whether err is the driver's empty-result signal. The
// repositories translate it into a (nil, nil) miss rather than an error.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
