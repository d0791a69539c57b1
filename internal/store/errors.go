package store

import "errors"

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these so callers can match with [errors.Is].
var (
	// ErrBuildingSQLQuery is returned when a squirrel builder fails to
	// render its statement.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the cache fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to iterate rows")
)

// ErrInvalidDSN is returned by [NewConnectSQLite] for an empty DSN.
var ErrInvalidDSN = errors.New("sqlite dsn is empty")

// Errors of the development backend storage.
var (
	// ErrSessionNotFound is returned when a message targets an unknown session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrReadingFixture is returned when the sessions fixture cannot be read
	// or decoded.
	ErrReadingFixture = errors.New("error reading sessions fixture")
)
