package service

import "shoplist-server/core"

// Broadcaster delivers mutation events to channels. Delivery is best-effort
// and happens after the mutation that produced the event has committed; the
// mutating caller never waits for delivery.
type Broadcaster interface {
	// ToList delivers to every connection subscribed to the list's channel.
	ToList(listID, event string, payload any)
	// ToUser delivers to the user's private channel.
	ToUser(userID, event string, payload any)
}

// Store is the slice of the snapshot store contract the service needs.
type Store interface {
	Read(fn func(snap *core.Snapshot))
	Mutate(fn func(snap *core.Snapshot) error) error
}

// Service implements the entity operations: validation, cascading effects
// and enriched projections over the snapshot store, with every committed
// mutation mirrored to the affected channel.
type Service struct {
	store       Store
	broadcaster Broadcaster
}

// New creates a Service over the given store and broadcaster.
func New(store Store, broadcaster Broadcaster) *Service {
	return &Service{store: store, broadcaster: broadcaster}
}
