package api

import (
	"errors"
	"fmt"
)

// Op names a gateway operation. It is carried by errors so callers can pick
// an operation specific message.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ErrEmptyPatch is returned by Update when the patch has no fields.
var ErrEmptyPatch = errors.New("patch has no fields")

// ErrInvalidID is returned by Update and Delete when the id is blank or
// would not name an item under the collection.
var ErrInvalidID = errors.New("invalid todo id")

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Op  Op
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a response the client could not accept: a non-2xx
// status, or a 2xx body that failed to decode. Message holds the server's
// "error" field verbatim and may be empty.
type StatusError struct {
	Op      Op
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("api %s returned status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("api %s returned status %d", e.Op, e.Status)
	}
}

func (e *StatusError) Unwrap() error { return e.Err }
