package store

import "errors"

// Sentinel errors returned by the index to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntryNotFound is returned when no index entry exists for the
	// requested hash.
	ErrEntryNotFound = errors.New("index entry was not found")

	// ErrInvalidEntry is returned when an entry without hash or path is
	// written to the index.
	ErrInvalidEntry = errors.New("invalid index entry")
)

// Low-level database operation errors. These are returned (or wrapped) by
// index methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan index row")

	// ErrScanningRows is returned when iterating over a result set fails.
	ErrScanningRows = errors.New("failed to scan index rows")
)
