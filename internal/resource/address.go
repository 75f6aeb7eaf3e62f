package resource

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InvalidAddressError reports a string that is not a composite identifier.
// The body follows the module's machine-readable JSON error convention.
type InvalidAddressError struct {
	Input string
}

func (e InvalidAddressError) Error() string {
	b, _ := json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		"ERR_INVALID_ADDRESS",
		fmt.Sprintf("resource address must be 'type/id' or 'type:id', e.g. 'meetings/987654321'; got %q", e.Input),
	})
	return string(b)
}

// Address names one store item by (type, id). Construct it with ParseAddress;
// the zero value is not meaningful.
type Address struct {
	typ string
	id  string
}

// Type returns the resource type part.
func (a Address) Type() string { return a.typ }

// ID returns the id part.
func (a Address) ID() string { return a.id }

// String renders the canonical slash form, "type/id".
func (a Address) String() string { return a.typ + "/" + a.id }

// ParseAddress splits a composite identifier on the first "/" or, failing
// that, the first ":". Both parts are trimmed of surrounding whitespace and
// must be non-empty. Type names are not validated here; that is the store
// boundary's job.
func ParseAddress(s string) (Address, error) {
	typ, id, ok := strings.Cut(s, "/")
	if !ok {
		typ, id, ok = strings.Cut(s, ":")
	}
	if !ok {
		return Address{}, InvalidAddressError{Input: s}
	}
	typ = strings.TrimSpace(typ)
	id = strings.TrimSpace(id)
	if typ == "" || id == "" {
		return Address{}, InvalidAddressError{Input: s}
	}
	return Address{typ: typ, id: id}, nil
}
