package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/petasbytes/workdesk/internal/metrics"
	"github.com/petasbytes/workdesk/internal/resource"
	"github.com/petasbytes/workdesk/internal/store"
	"github.com/petasbytes/workdesk/internal/telemetry"
	"github.com/petasbytes/workdesk/memory"
)

const (
	mentionMarker = "@"
	commandPrefix = "/"
)

// Engine processes one query at a time against an injected store and an
// owned, append-only history.
type Engine struct {
	store   store.Store
	index   *resource.Client
	history *memory.History
}

// NewEngine wires an engine over a store and history.
func NewEngine(st store.Store, history *memory.History) *Engine {
	return &Engine{store: st, index: resource.NewClient(st), history: history}
}

// History exposes the engine's conversation log.
func (e *Engine) History() *memory.History { return e.history }

// ProcessQuery handles one user query: command dispatch first, otherwise
// mention resolution plus prompt assembly. Exactly one of those paths appends
// to history; errors abort the turn with nothing appended.
func (e *Engine) ProcessQuery(ctx context.Context, query string) error {
	handled, err := e.dispatchCommand(ctx, query)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	inlined, err := e.extractResources(ctx, query)
	if err != nil {
		return err
	}
	e.history.Append(assembleUserMessage(query, inlined))

	f := metrics.CountFeatures(query)
	telemetry.Emit("query_processed", map[string]any{
		"query_bytes": f.Bytes,
		"query_runes": f.Runes,
		"query_words": f.Words,
		"query_lines": f.Lines,
		"inlined":     len(inlined) > 0,
	})
	return nil
}

// dispatchCommand recognizes "/name [target]" queries. The templated prompt
// keyed by the command name is fetched with the target as doc_id (empty when
// absent), normalized, and appended to history. Unknown command names
// propagate the store's error untouched.
func (e *Engine) dispatchCommand(ctx context.Context, query string) (bool, error) {
	if !strings.HasPrefix(query, commandPrefix) {
		return false, nil
	}

	words := strings.Fields(query)
	name := strings.TrimPrefix(words[0], commandPrefix)
	target := ""
	if len(words) > 1 {
		target = words[1]
	}

	msgs, err := e.store.GetPrompt(ctx, name, map[string]string{"doc_id": target})
	if err != nil {
		return false, err
	}
	for _, pm := range msgs {
		e.history.Append(NormalizeMessage(pm))
	}

	telemetry.Emit("command_dispatched", map[string]any{
		"command":  name,
		"target":   target,
		"messages": len(msgs),
	})
	return true, nil
}

// assembleUserMessage wraps the verbatim query and the (possibly empty)
// inlined context block into the single augmented message for this turn.
func assembleUserMessage(query, inlined string) memory.Message {
	prompt := fmt.Sprintf(`The user has a question:
<query>
%s
</query>

The following context may be useful in answering their question:
<context>
%s
</context>

Notes:
- Users may reference workplace resources with mentions like "@meetings/987654321" or "@team_chat/msg_1001".
- The "@" is only a mention marker; the actual resource key is "type/id".
- If the resource content is already included above, do not call additional tools to fetch it again.

Answer the user's question directly and concisely. Start with the exact information they need.
Do not refer to the provided context explicitly; just use it to inform your answer.`, query, inlined)

	return memory.Message{Role: memory.RoleUser, Text: prompt}
}
