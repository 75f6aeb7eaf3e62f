// Package resource handles composite resource identifiers.
//
// Grammar: "type/id" or "type:id", split on the first separator, both parts
// trimmed. Addresses are only constructed through ParseAddress so a held
// Address is always well-formed.
//
// Client layers the addressing grammar over a store.Reader: a flat, sorted
// listing of every composite identifier and a fetch-by-identifier. Listings
// are rebuilt on every call; nothing here caches store state.
package resource
