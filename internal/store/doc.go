// Package store defines the workplace resource store consumed by the chat
// engine and the LLM tools.
//
// Capabilities:
//   - Reader: list the type->ids mapping, read one document by (type, id).
//   - Writer: upsert a document, optionally creating it when absent.
//   - Prompter: build the templated prompt registered under a command name.
//
// The store is injected everywhere it is used; nothing in this module owns
// store state through package globals. Resource types are a closed enumeration
// validated at this boundary, and policy failures carry machine-readable JSON
// error bodies.
package store
