package db

import "errors"

// ErrIndexNotFound signals a query against a missing index.
var ErrIndexNotFound = errors.New("db: index not found")

// Op constants map to Redis command names for error context.
const (
	OpCreateIndex = "FT.CREATE"
	OpSearch      = "FT.SEARCH"
	OpHSet        = "HSET"
	OpDel         = "DEL"
	OpScan        = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
