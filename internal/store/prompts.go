package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ContentKindText tags content blocks carrying plain text.
const ContentKindText = "text"

// ContentBlock is the tagged in-process representation of one content block.
// Whatever wire shape a prompt backend produces is converted into this value
// before it leaves the store, so downstream code never inspects raw payloads.
type ContentBlock struct {
	Kind string
	Text string
}

// PromptContent is the content union of a templated-prompt message: a single
// block, an ordered block sequence, or nothing. At most one of Block and
// Blocks is set; both unset means empty content.
type PromptContent struct {
	Block  *ContentBlock
	Blocks []ContentBlock
}

// PromptMessage is one message of a templated prompt after boundary decoding.
type PromptMessage struct {
	Role    string
	Content PromptContent
}

// WireMessage is the shape a prompt backend produces: a role plus raw content
// whose form varies (a bare string, one block object, or an array of blocks).
type WireMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// PromptFunc builds the wire messages for one command given its arguments.
type PromptFunc func(args map[string]string) ([]WireMessage, error)

// RegisterPrompt adds or replaces the prompt for a command name.
func (s *MemoryStore) RegisterPrompt(name string, fn PromptFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts[name] = fn
}

// Prompts returns the registered command names, sorted.
func (s *MemoryStore) Prompts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.prompts))
	for name := range s.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPrompt builds the prompt registered under name and decodes each wire
// message into the tagged content union.
func (s *MemoryStore) GetPrompt(ctx context.Context, name string, args map[string]string) ([]PromptMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	fn, ok := s.prompts[name]
	s.mu.RUnlock()
	if !ok {
		return nil, UnknownCommandError{Name: name}
	}

	wire, err := fn(args)
	if err != nil {
		return nil, err
	}
	msgs := make([]PromptMessage, 0, len(wire))
	for _, wm := range wire {
		msgs = append(msgs, PromptMessage{Role: wm.Role, Content: DecodePromptContent(wm.Content)})
	}
	return msgs, nil
}

// BuiltinPrompts returns the prompts every store starts with.
func BuiltinPrompts() map[string]PromptFunc {
	return map[string]PromptFunc{
		"format":    formatPrompt,
		"summarize": summarizePrompt,
	}
}

// RegisterBuiltinPrompts wires the default command set into a store.
func RegisterBuiltinPrompts(s *MemoryStore) {
	for name, fn := range BuiltinPrompts() {
		s.RegisterPrompt(name, fn)
	}
}

// splitDocID breaks a composite "type/id" (or "type:id") identifier into its
// parts for template interpolation. Validation is not this layer's job; an
// identifier without a separator keeps its raw form as the type.
func splitDocID(docID string) (string, string) {
	if before, after, ok := strings.Cut(docID, "/"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	if before, after, ok := strings.Cut(docID, ":"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return docID, ""
}

// textMessage wraps plain prompt text as a single user wire message.
func textMessage(role, text string) WireMessage {
	b, _ := json.Marshal(text)
	return WireMessage{Role: role, Content: b}
}

func formatPrompt(args map[string]string) ([]WireMessage, error) {
	typ, id := splitDocID(args["doc_id"])
	prompt := strings.TrimSpace(fmt.Sprintf(`
Reformat the workplace **%s** item below into clear Markdown for display.
Use headings, bullet points, and concise sections.

Item identifier:
<resource>%s</resource>

After you produce the Markdown, call the `+"`edit_resource`"+` tool to save it back:
- resource_type = %q
- resource_id   = %q
- new_content   = { "markdown": "<your formatted markdown here>" }

Return only the formatted Markdown in your assistant reply.
`, typ, id, typ, id))
	return []WireMessage{textMessage("user", prompt)}, nil
}

func summarizePrompt(args map[string]string) ([]WireMessage, error) {
	typ, id := splitDocID(args["doc_id"])
	prompt := strings.TrimSpace(fmt.Sprintf(`
Summarize the workplace **%s** item below in at most three sentences.
Lead with the single most important fact; skip pleasantries.

Item identifier:
<resource>%s</resource>

If the item content is not already available in the conversation, fetch it
with the `+"`read_resource`"+` tool using resource_type %q and resource_id %q
before summarizing.
`, typ, id, typ, id))
	return []WireMessage{textMessage("user", prompt)}, nil
}
