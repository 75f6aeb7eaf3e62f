package store

import (
	"encoding/json"
	"fmt"
)

// errBody renders a compact, single-line JSON error body so failures stay
// machine-readable when surfaced back to the model as tool results.
func errBody(code, message string) string {
	b, _ := json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{code, message})
	return string(b)
}

// NotFoundError reports a well-formed address naming a type or id absent from
// the store. ID is empty when the resource type itself is unknown.
type NotFoundError struct {
	Type string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return errBody("ERR_NOT_FOUND", fmt.Sprintf("unknown resource type %q; use one of: %s", e.Type, knownTypeList()))
	}
	return errBody("ERR_NOT_FOUND", fmt.Sprintf("%s item with ID %q not found", e.Type, e.ID))
}

// UnknownCommandError reports a templated-prompt request for a command name
// with no registered prompt.
type UnknownCommandError struct {
	Name string
}

func (e UnknownCommandError) Error() string {
	return errBody("ERR_UNKNOWN_COMMAND", fmt.Sprintf("no prompt registered for command %q", e.Name))
}
