package syncer

import (
	"errors"

	"github.com/five82/checkoff/internal/api"
)

// Validation failures. These are returned to the caller and never sent to
// the server or written to the error slot.
var (
	ErrEmptyTitle = errors.New("title is empty")
	ErrNotFound   = errors.New("todo not found")
	ErrLocked     = errors.New("completed todos cannot be edited")
	ErrNotEditing = errors.New("no edit in progress")
)

// MsgUnreachable is shown for any transport failure; the cause is only logged.
const MsgUnreachable = "Unable to reach the server"

var fallbackMessages = map[api.Op]string{
	api.OpList:   "Failed to load todos",
	api.OpCreate: "Failed to create todo",
	api.OpUpdate: "Failed to update todo",
	api.OpDelete: "Failed to delete todo",
}

// Message maps a gateway error to the text stored in the error slot.
func Message(op api.Op, err error) string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return MsgUnreachable
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return "Request failed"
}

// IsValidation reports whether err was raised before any network call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrLocked) ||
		errors.Is(err, ErrNotEditing) ||
		errors.Is(err, api.ErrEmptyPatch) ||
		errors.Is(err, api.ErrInvalidID)
}
