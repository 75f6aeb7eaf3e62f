package store

import (
	"context"
	"strings"
)

// Document is an opaque structured value held for one (type, id) pair. The
// rest of the module treats it as inlineable content and never interprets its
// shape.
type Document map[string]any

// ResourceType names one of the workplace collections.
type ResourceType string

const (
	TypeMeetings ResourceType = "meetings"
	TypeTeamChat ResourceType = "team_chat"
	TypeMail     ResourceType = "mail"
	TypeCalendar ResourceType = "calendar"
)

// knownTypes is the closed set of collections; validation happens here at the
// store boundary rather than in the addressing layer.
var knownTypes = []ResourceType{TypeMeetings, TypeTeamChat, TypeMail, TypeCalendar}

func knownTypeList() string {
	names := make([]string, len(knownTypes))
	for i, t := range knownTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ParseResourceType validates a raw type string against the known collections.
// Unknown values are rejected with NotFoundError, the same error an absent id
// produces, so callers see one taxonomy for "nothing stored there".
func ParseResourceType(s string) (ResourceType, error) {
	rt := ResourceType(strings.TrimSpace(s))
	for _, t := range knownTypes {
		if rt == t {
			return rt, nil
		}
	}
	return "", NotFoundError{Type: string(rt)}
}

// Reader lists and fetches stored documents.
type Reader interface {
	// ListIDs returns the current type->ids mapping, ids sorted, rebuilt on
	// every call.
	ListIDs(ctx context.Context) (map[ResourceType][]string, error)
	// Read returns the document stored for (typ, id), or NotFoundError.
	Read(ctx context.Context, typ ResourceType, id string) (Document, error)
}

// Writer replaces document content.
type Writer interface {
	// Upsert replaces the entire content for (typ, id). When createIfMissing
	// is false and the id is absent, it fails with NotFoundError.
	Upsert(ctx context.Context, typ ResourceType, id string, content Document, createIfMissing bool) (Document, error)
}

// Prompter serves templated prompts keyed by command name.
type Prompter interface {
	// GetPrompt builds the prompt registered under name with the given
	// arguments, or fails with UnknownCommandError.
	GetPrompt(ctx context.Context, name string, args map[string]string) ([]PromptMessage, error)
	// Prompts returns the registered command names, sorted.
	Prompts() []string
}

// Store is the full capability set consumed by the chat engine and tools.
type Store interface {
	Reader
	Writer
	Prompter
}
