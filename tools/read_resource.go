package tools

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/workdesk/internal/store"
)

type ReadResourceInput struct {
	ResourceType string `json:"resource_type" jsonschema_description:"The workplace collection to read from. One of: 'meetings', 'team_chat', 'mail', 'calendar'."`
	ResourceID   string `json:"resource_id" jsonschema_description:"The ID of the item to read (e.g. meetingId, messageId, emailId, eventId)."`
}

var ReadResourceInputSchema = GenerateSchema[ReadResourceInput]()

// ReadResource builds the read_resource tool over an injected store reader.
// The document is returned to the model as compact JSON; store errors carry
// their JSON bodies through unchanged.
func ReadResource(st store.Reader) ToolDefinition {
	return ToolDefinition{
		Name:        "read_resource",
		Description: "Read a workplace item (meeting, chat message, email, or calendar event) by type and ID.",
		InputSchema: ReadResourceInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in ReadResourceInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			typ, err := store.ParseResourceType(in.ResourceType)
			if err != nil {
				return "", err
			}
			doc, err := st.Read(ctx, typ, in.ResourceID)
			if err != nil {
				return "", err
			}
			b, err := json.Marshal(doc)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
