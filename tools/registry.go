package tools

import "github.com/petasbytes/workdesk/internal/store"

// Registry returns all tool definitions wired over the injected store.
func Registry(st store.Store) []ToolDefinition {
	return []ToolDefinition{ReadResource(st), ListResources(st), EditResource(st)}
}
