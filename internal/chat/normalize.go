package chat

import (
	"github.com/petasbytes/workdesk/internal/store"
	"github.com/petasbytes/workdesk/memory"
)

// NormalizeMessage converts a templated-prompt message into the canonical
// conversation shape.
//
// Role: anything other than "user" collapses to "assistant".
// Content, in priority order:
//   - a single text-kind block becomes the message text;
//   - a block sequence is filtered to its text-kind blocks, order preserved;
//   - everything else (non-text single block, sequence without text blocks,
//     empty content) becomes an empty-content message.
func NormalizeMessage(pm store.PromptMessage) memory.Message {
	role := memory.RoleAssistant
	if pm.Role == memory.RoleUser {
		role = memory.RoleUser
	}

	if blk := pm.Content.Block; blk != nil {
		if blk.Kind == store.ContentKindText {
			return memory.Message{Role: role, Text: blk.Text}
		}
		return memory.Message{Role: role}
	}

	if len(pm.Content.Blocks) > 0 {
		var blocks []memory.TextBlock
		for _, blk := range pm.Content.Blocks {
			if blk.Kind == store.ContentKindText {
				blocks = append(blocks, memory.TextBlock{Text: blk.Text})
			}
		}
		if len(blocks) > 0 {
			return memory.Message{Role: role, Blocks: blocks}
		}
	}

	return memory.Message{Role: role}
}
