package service

import (
	"time"

	"shoplist-server/core"
)

// ToggleReaction applies the reaction state machine for the (user, item)
// pair:
//
//	no reaction        + any kind       -> created with that kind
//	existing same kind + same kind      -> removed (toggle-off)
//	existing other kind + requested     -> updated to requested kind
//
// It returns the recomputed like/dislike counts for the item after the
// transition; the same payload is broadcast on the list's channel.
func (s *Service) ToggleReaction(itemID, userID string, kind core.ReactionKind) (*core.ItemReactedPayload, error) {
	if !core.ValidReactionKind(kind) {
		return nil, core.InvalidInputf("unknown reaction kind %q", kind)
	}

	var out *core.ItemReactedPayload
	var listID string
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		item, ok := snap.Items[itemID]
		if !ok {
			return core.NotFoundf("item %s", itemID)
		}
		if _, ok := snap.Users[userID]; !ok {
			return core.NotFoundf("user %s", userID)
		}
		listID = item.ListID

		reactions := snap.Reactions[itemID]
		existing := -1
		for i, reaction := range reactions {
			if reaction.UserID == userID {
				existing = i
				break
			}
		}

		switch {
		case existing < 0:
			snap.Reactions[itemID] = append(reactions, &core.Reaction{
				UserID:    userID,
				ItemID:    itemID,
				Kind:      kind,
				CreatedAt: time.Now(),
			})
		case reactions[existing].Kind == kind:
			snap.Reactions[itemID] = append(reactions[:existing], reactions[existing+1:]...)
		default:
			reactions[existing].Kind = kind
			reactions[existing].CreatedAt = time.Now()
		}

		likes, dislikes := countReactions(snap, itemID)
		out = &core.ItemReactedPayload{ItemID: itemID, Likes: likes, Dislikes: dislikes}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, core.EventItemReacted, out)
	return out, nil
}
