package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user matches the lookup key, or
	// when an update targets an id that does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicate is returned when an insert would break username or email
	// uniqueness.
	ErrDuplicate = errors.New("username or email already exists")

	// ErrStoreUnavailable wraps every other failure: connectivity, driver
	// and scan errors, and context cancellation.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrUnsupportedDatabaseURL is returned by [NewStorages] for a
	// DATABASE_URL with an unknown scheme.
	ErrUnsupportedDatabaseURL = errors.New("unsupported database url")
)

// Low-level database operation errors. These are wrapped together with
// [ErrStoreUnavailable] so callers only need to match the latter.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or statement
	// against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
