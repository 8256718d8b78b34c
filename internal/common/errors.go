package common

import "errors"

var (
	// ErrRecordNotFound is the absent result: no row matched, or a write landed no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrForbidden is returned when the acting user does not own the target blog.
	ErrForbidden = errors.New("forbidden")

	// ErrMalformedQuery is returned by BuildClause when no allowed field remains.
	ErrMalformedQuery = errors.New("malformed query: no allowed fields to build a clause from")
)

// IsAbsent reports whether err is one of the soft outcomes callers must not tell
// apart in user-visible responses.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrForbidden)
}

func Ptr[T any](v T) *T {
	return &v
}
