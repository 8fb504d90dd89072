package core

import "errors"

// Predefined errors returned by the builder and the client.
var (
	// ErrInvalidSequence is returned when As is called without a pending With,
	// or With is called while a previous With still waits for its As.
	ErrInvalidSequence = errors.New("invalid alias sequence")
	// ErrInvalidOperator is returned when a condition uses an operator outside
	// the supported set.
	ErrInvalidOperator = errors.New("invalid comparison operator")
	// ErrInvalidOrder is returned for an unknown ORDER BY direction or nulls option.
	ErrInvalidOrder = errors.New("invalid order clause")
	// ErrEmptyChangeSet is returned when an UPDATE is built without changes.
	ErrEmptyChangeSet = errors.New("update requires at least one change")
	// ErrEmptyInsert is returned when INSERT rows set no column at all;
	// "INSERT INTO t() VALUES ()" is not valid SQL.
	ErrEmptyInsert = errors.New("insert requires at least one column")
	// ErrUnsupportedDialect is returned when no dialect is registered for a driver.
	ErrUnsupportedDialect = errors.New("unsupported database dialect")
	// ErrClosed is returned when a statement is executed on a closed client.
	ErrClosed = errors.New("client is closed")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
