package service

import (
	"sort"
	"time"

	"shoplist-server/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Items returns the enriched items of a list, most recently added first.
func (s *Service) Items(listID string) ([]*core.EnrichedItem, error) {
	var out []*core.EnrichedItem
	var found bool
	s.store.Read(func(snap *core.Snapshot) {
		if _, ok := snap.ShopLists[listID]; !ok {
			return
		}
		found = true
		items := snap.ItemsForList(listID)
		out = make([]*core.EnrichedItem, 0, len(items))
		for _, item := range items {
			out = append(out, enrichItem(snap, item))
		}
	})
	if !found {
		return nil, core.NotFoundf("list %s", listID)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}

// AddItem puts a catalog product on a list. The referenced product must
// exist in the catalog.
func (s *Service) AddItem(listID, userID string, productID int64) (*core.EnrichedItem, error) {
	var out *core.EnrichedItem
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		if _, ok := snap.ShopLists[listID]; !ok {
			return core.NotFoundf("list %s", listID)
		}
		if _, ok := snap.Products[productID]; !ok {
			return core.InvalidInputf("unknown product %d", productID)
		}

		item := &core.ShopListItem{
			ID:        ulid.Make().String(),
			ListID:    listID,
			ProductID: productID,
			AddedBy:   userID,
			AddedAt:   time.Now(),
		}
		snap.Items[item.ID] = item
		out = enrichItem(snap, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, core.EventItemAdded, out)
	logrus.WithFields(logrus.Fields{
		"item_id":    out.ID,
		"list_id":    listID,
		"product_id": productID,
	}).Info("Item added")
	return out, nil
}

// RemoveItem removes an item and, transitively, all reactions and
// suggestions referencing it.
func (s *Service) RemoveItem(itemID string) error {
	var listID string
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		item, ok := snap.Items[itemID]
		if !ok {
			return core.NotFoundf("item %s", itemID)
		}
		listID = item.ListID
		delete(snap.Reactions, itemID)
		delete(snap.Suggestions, itemID)
		delete(snap.Items, itemID)
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcaster.ToList(listID, core.EventItemRemoved, core.ItemRemovedPayload{ID: itemID})
	logrus.WithFields(logrus.Fields{
		"item_id": itemID,
		"list_id": listID,
	}).Info("Item removed")
	return nil
}
