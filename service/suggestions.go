package service

import (
	"time"

	"shoplist-server/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// AddSuggestion proposes an alternative product for an item. Suggestions are
// never deduplicated or limited in count.
func (s *Service) AddSuggestion(itemID, userID string, productID int64) (*core.EnrichedSuggestion, error) {
	var out *core.EnrichedSuggestion
	var listID string
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		item, ok := snap.Items[itemID]
		if !ok {
			return core.NotFoundf("item %s", itemID)
		}
		if _, ok := snap.Products[productID]; !ok {
			return core.InvalidInputf("unknown product %d", productID)
		}
		listID = item.ListID

		suggestion := &core.Suggestion{
			ID:          ulid.Make().String(),
			ItemID:      itemID,
			ProductID:   productID,
			SuggestedBy: userID,
			CreatedAt:   time.Now(),
		}
		snap.Suggestions[itemID] = append(snap.Suggestions[itemID], suggestion)
		out = enrichSuggestion(snap, suggestion)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, core.EventItemSuggested, out)
	logrus.WithFields(logrus.Fields{
		"item_id":    itemID,
		"product_id": productID,
	}).Info("Suggestion added")
	return out, nil
}
