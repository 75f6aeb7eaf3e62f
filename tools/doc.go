// Package tools defines the LLM tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Store tools: read_resource, list_resources, edit_resource, all closed
//     over an injected store rather than package state.
//   - Invariants: tool_use and its corresponding tool_result remain adjacent within a turn
package tools
