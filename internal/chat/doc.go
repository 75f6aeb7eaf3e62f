// Package chat turns a raw user query into conversation history entries.
//
// Flow per query:
//   - A "/"-prefixed query is a command: its templated prompt is fetched from
//     the store, each message is normalized, and all of them are appended to
//     history, short-circuiting everything else.
//   - Otherwise "@"-mentions are resolved against a fresh resource listing,
//     matched documents are inlined, and exactly one augmented user message
//     is appended.
//
// All store traffic happens on the caller's flow of control; the engine never
// runs anything in parallel within one query.
package chat
