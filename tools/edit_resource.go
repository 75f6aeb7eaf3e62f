package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petasbytes/workdesk/internal/store"
)

type EditResourceInput struct {
	ResourceType string         `json:"resource_type" jsonschema_description:"The workplace collection to write to. One of: 'meetings', 'team_chat', 'mail', 'calendar'."`
	ResourceID   string         `json:"resource_id" jsonschema_description:"The ID of the item to edit or create."`
	NewContent   map[string]any `json:"new_content" jsonschema_description:"The replacement content for this item. The entire object is replaced."`
	Upsert       *bool          `json:"upsert,omitempty" jsonschema_description:"If true (the default) and the item does not exist, create it. If false, fail when the item is absent."`
}

var EditResourceInputSchema = GenerateSchema[EditResourceInput]()

// EditResource builds the edit_resource tool. The whole document is replaced;
// partial updates would need a separate merging tool.
func EditResource(st store.Writer) ToolDefinition {
	return ToolDefinition{
		Name:        "edit_resource",
		Description: "Edit or upsert a workplace item by type and ID. The entire item content is replaced. Returns the updated item.",
		InputSchema: EditResourceInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in EditResourceInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			if in.ResourceID == "" {
				return "", fmt.Errorf("resource_id must not be empty")
			}
			typ, err := store.ParseResourceType(in.ResourceType)
			if err != nil {
				return "", err
			}

			createIfMissing := true
			if in.Upsert != nil {
				createIfMissing = *in.Upsert
			}

			doc, err := st.Upsert(ctx, typ, in.ResourceID, store.Document(in.NewContent), createIfMissing)
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
