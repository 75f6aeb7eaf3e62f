// Package memory holds the conversation history and its persistence.
//
// Model:
//   - Message: role plus either plain text or an ordered sequence of text
//     blocks (normalized templated-prompt messages keep their block shape).
//   - History: owned by the chat engine, append-only during a turn; entries
//     are never mutated or removed once appended.
//   - Persistence stores the transcript as JSON. Tool blocks are transient.
package memory
