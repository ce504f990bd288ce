package service

import (
	"sync"
	"testing"

	"shoplist-server/core"
	"shoplist-server/state"
	"shoplist-server/stores/memory"
)

type recordedEvent struct {
	Channel string
	Event   string
	Payload any
}

// fakeBroadcaster records every published event so tests can assert on
// channel targeting and payloads.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *fakeBroadcaster) ToList(listID, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Channel: "list:" + listID, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) ToUser(userID, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Channel: "user:" + userID, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) eventsFor(channel string) []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedEvent
	for _, e := range b.events {
		if e.Channel == channel {
			out = append(out, e)
		}
	}
	return out
}

func newTestService(t *testing.T) (*Service, *state.Store, *fakeBroadcaster) {
	t.Helper()
	st := state.New(memory.NewBackend())
	b := &fakeBroadcaster{}
	return New(st, b), st, b
}

func seedProduct(t *testing.T, st *state.Store, id int64, name string) {
	t.Helper()
	err := st.Mutate(func(snap *core.Snapshot) error {
		snap.Products[id] = &core.Product{ID: id, Name: name, Price: 9.99, Rating: 4.0, InStock: true}
		return nil
	})
	if err != nil {
		t.Fatalf("seeding product failed: %v", err)
	}
}

func mustLogin(t *testing.T, svc *Service, phone, name string) *core.User {
	t.Helper()
	user, err := svc.Login(phone, name)
	if err != nil {
		t.Fatalf("Login(%q) failed: %v", phone, err)
	}
	return user
}

func mustCreateList(t *testing.T, svc *Service, ownerID, name string) *core.EnrichedList {
	t.Helper()
	list, err := svc.CreateList(ownerID, name, "", nil)
	if err != nil {
		t.Fatalf("CreateList(%q) failed: %v", name, err)
	}
	return list
}

func mustAddItem(t *testing.T, svc *Service, listID, userID string, productID int64) *core.EnrichedItem {
	t.Helper()
	item, err := svc.AddItem(listID, userID, productID)
	if err != nil {
		t.Fatalf("AddItem(%d) failed: %v", productID, err)
	}
	return item
}
