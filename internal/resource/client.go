package resource

import (
	"context"
	"sort"

	"github.com/petasbytes/workdesk/internal/store"
)

// Client resolves composite identifiers against an injected store.
type Client struct {
	store store.Reader
}

// NewClient wraps a store reader.
func NewClient(st store.Reader) *Client {
	return &Client{store: st}
}

// ListAddresses returns every composite identifier currently known to the
// store, flattened to "type/id" and sorted lexicographically. Each call is one
// store round trip; results reflect the store at that moment.
func (c *Client) ListAddresses(ctx context.Context) ([]string, error) {
	mapping, err := c.store.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	flat := make([]string, 0, len(mapping))
	for typ, ids := range mapping {
		for _, id := range ids {
			flat = append(flat, string(typ)+"/"+id)
		}
	}
	sort.Strings(flat)
	return flat, nil
}

// Fetch parses a composite identifier and reads the addressed document.
// Malformed input fails with InvalidAddressError; store errors (unknown type
// or id) pass through untranslated.
func (c *Client) Fetch(ctx context.Context, rawAddr string) (store.Document, error) {
	addr, err := ParseAddress(rawAddr)
	if err != nil {
		return nil, err
	}
	typ, err := store.ParseResourceType(addr.Type())
	if err != nil {
		return nil, err
	}
	return c.store.Read(ctx, typ, addr.ID())
}
