package memory

import (
	"encoding/json"
	"errors"
	"os"
)

// Roles in the binary conversation model.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TextBlock is one text part of a block-shaped message content.
type TextBlock struct {
	Text string `json:"text"`
}

// Message is one conversation entry. Content is either Text or Blocks, never
// both; a message with neither carries empty content.
type Message struct {
	Role   string      `json:"role"`
	Text   string      `json:"text,omitempty"`
	Blocks []TextBlock `json:"blocks,omitempty"`
}

// LoadConversation reads a persisted transcript. A missing file is not an
// error; it returns an empty transcript.
func LoadConversation(path string) ([]Message, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SaveConversation writes the transcript as indented JSON.
func SaveConversation(path string, msgs []Message) error {
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
