package resource_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/petasbytes/workdesk/internal/resource"
	"github.com/petasbytes/workdesk/internal/store"
)

func newClient() (*resource.Client, *store.MemoryStore) {
	st := store.NewMemoryStore(store.DefaultSeed())
	return resource.NewClient(st), st
}

func TestListAddresses_FlatSortedNoDuplicates(t *testing.T) {
	c, st := newClient()
	ctx := context.Background()

	addrs, err := c.ListAddresses(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !sort.StringsAreSorted(addrs) {
		t.Fatalf("addresses not sorted: %v", addrs)
	}

	seen := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		if _, dup := seen[a]; dup {
			t.Fatalf("duplicate address %q", a)
		}
		seen[a] = struct{}{}
	}

	// Flat listing must equal the union of the store's type->ids mapping.
	mapping, err := st.ListIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	total := 0
	for typ, ids := range mapping {
		total += len(ids)
		for _, id := range ids {
			if _, ok := seen[string(typ)+"/"+id]; !ok {
				t.Fatalf("missing %s/%s in listing %v", typ, id, addrs)
			}
		}
	}
	if total != len(addrs) {
		t.Fatalf("listing size %d != union size %d", len(addrs), total)
	}
}

func TestListAddresses_NotCached(t *testing.T) {
	c, st := newClient()
	ctx := context.Background()

	before, _ := c.ListAddresses(ctx)
	if _, err := st.Upsert(ctx, store.TypeTeamChat, "msg_2000", store.Document{"text": "hi"}, true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	after, _ := c.ListAddresses(ctx)
	if len(after) != len(before)+1 {
		t.Fatalf("expected rebuilt listing: before=%d after=%d", len(before), len(after))
	}
}

func TestFetch_Happy(t *testing.T) {
	c, _ := newClient()
	for _, addr := range []string{"meetings/987654321", "meetings:987654321"} {
		doc, err := c.Fetch(context.Background(), addr)
		if err != nil {
			t.Fatalf("addr %q: unexpected err: %v", addr, err)
		}
		if doc["topic"] != "Weekly Platform Sync" {
			t.Fatalf("addr %q: unexpected doc: %v", addr, doc)
		}
	}
}

func TestFetch_Malformed(t *testing.T) {
	c, _ := newClient()
	_, err := c.Fetch(context.Background(), "nosep")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ERR_INVALID_ADDRESS") {
		t.Fatalf("expected ERR_INVALID_ADDRESS body, got: %v", err)
	}
}

func TestFetch_AbsentPassesThroughStoreError(t *testing.T) {
	c, _ := newClient()
	for _, addr := range []string{"meetings/000", "documents/1"} {
		_, err := c.Fetch(context.Background(), addr)
		if err == nil {
			t.Fatalf("addr %q: expected error", addr)
		}
		var nf store.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("addr %q: expected store.NotFoundError, got %T: %v", addr, err, err)
		}
	}
}
