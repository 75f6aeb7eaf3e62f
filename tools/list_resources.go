package tools

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/workdesk/internal/store"
)

type ListResourcesInput struct {
	ResourceType string `json:"resource_type,omitempty" jsonschema_description:"Optional collection to restrict the listing to. One of: 'meetings', 'team_chat', 'mail', 'calendar'. Lists every collection when omitted."`
}

var ListResourcesInputSchema = GenerateSchema[ListResourcesInput]()

// ListResources builds the list_resources tool. The listing is rebuilt from
// the store on every call and returned as a JSON object mapping each type to
// its sorted item IDs.
func ListResources(st store.Reader) ToolDefinition {
	return ToolDefinition{
		Name:        "list_resources",
		Description: "List the IDs of stored workplace items by type, optionally restricted to one type.",
		InputSchema: ListResourcesInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in ListResourcesInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}

			mapping, err := st.ListIDs(ctx)
			if err != nil {
				return "", err
			}
			if in.ResourceType != "" {
				typ, err := store.ParseResourceType(in.ResourceType)
				if err != nil {
					return "", err
				}
				mapping = map[store.ResourceType][]string{typ: mapping[typ]}
			}

			b, err := json.Marshal(mapping)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
