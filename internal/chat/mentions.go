package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petasbytes/workdesk/internal/resource"
)

// extractResources finds "@"-prefixed tokens in the query and inlines the
// content of every mention present in the current resource index.
//
// Policy:
//   - The index is listed once per query; the snapshot holds for the whole
//     resolution pass.
//   - Colon-form mentions are normalized to the canonical slash form via the
//     address parser; slash-form mentions pass through unvalidated.
//   - Mentions absent from the index are dropped silently, best effort.
//   - Duplicates are fetched and inlined once per occurrence, in
//     first-occurrence order.
//
// A malformed colon-form mention fails the whole turn; a merely unknown one
// only loses its block.
func (e *Engine) extractResources(ctx context.Context, query string) (string, error) {
	var mentions []string
	for _, word := range strings.Fields(query) {
		if strings.HasPrefix(word, mentionMarker) {
			mentions = append(mentions, strings.TrimPrefix(word, mentionMarker))
		}
	}

	known, err := e.index.ListAddresses(ctx)
	if err != nil {
		return "", err
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}

	normalized := make([]string, 0, len(mentions))
	for _, m := range mentions {
		if strings.Contains(m, ":") {
			addr, err := resource.ParseAddress(m)
			if err != nil {
				return "", err
			}
			normalized = append(normalized, addr.String())
			continue
		}
		normalized = append(normalized, m)
	}

	var b strings.Builder
	for _, docID := range normalized {
		if _, ok := knownSet[docID]; !ok {
			continue
		}
		doc, err := e.index.Fetch(ctx, docID)
		if err != nil {
			return "", err
		}
		content, err := json.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("serialize %s: %w", docID, err)
		}
		fmt.Fprintf(&b, "\n<resource id=%q>\n%s\n</resource>\n", docID, content)
	}
	return b.String(), nil
}
