package service

import (
	"sort"
	"strings"
	"time"

	"shoplist-server/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// CreateList creates a list owned by ownerID. Visibility defaults to LINK.
// Phone numbers are resolved to users, creating placeholder users for
// unknown numbers; this is the only place users are created outside login.
// Every participant is notified on their private channel.
func (s *Service) CreateList(ownerID, name string, visibility core.Visibility, phones []string) (*core.EnrichedList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.InvalidInputf("list name is required")
	}
	if visibility == "" {
		visibility = core.VisibilityLink
	}
	if !core.ValidVisibility(visibility) {
		return nil, core.InvalidInputf("unknown visibility %q", visibility)
	}

	var out *core.EnrichedList
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		owner, ok := snap.Users[ownerID]
		if !ok {
			return core.NotFoundf("user %s", ownerID)
		}

		now := time.Now()
		list := &core.ShopList{
			ID:             ulid.Make().String(),
			Name:           name,
			Visibility:     visibility,
			OwnerID:        owner.ID,
			ParticipantIDs: []string{owner.ID},
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		for _, phone := range phones {
			phone = strings.TrimSpace(phone)
			if phone == "" {
				continue
			}
			user := snap.UserByPhone(phone)
			if user == nil {
				user = &core.User{
					ID:        ulid.Make().String(),
					Phone:     phone,
					ListIDs:   []string{},
					CreatedAt: now,
					UpdatedAt: now,
				}
				snap.Users[user.ID] = user
				logrus.WithField("user_id", user.ID).Info("Placeholder user created for invited phone number")
			}
			if !list.HasParticipant(user.ID) {
				list.ParticipantIDs = append(list.ParticipantIDs, user.ID)
			}
		}

		for _, userID := range list.ParticipantIDs {
			user := snap.Users[userID]
			user.ListIDs = append(user.ListIDs, list.ID)
			user.UpdatedAt = now
		}

		snap.ShopLists[list.ID] = list
		out = enrichList(snap, list)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, member := range out.Members {
		s.broadcaster.ToUser(member.ID, core.EventListCreated, out)
	}

	logrus.WithFields(logrus.Fields{
		"list_id":      out.ID,
		"owner_id":     ownerID,
		"participants": len(out.ParticipantIDs),
	}).Info("List created")
	return out, nil
}

// DeleteList removes a list and cascades over its items, their reactions and
// suggestions, then strips the list from every participant's membership set.
// The whole cascade runs inside one mutation closure, so no reader ever
// observes a list with some-but-not-all of its items removed. Whether the
// caller may delete the list is the routing layer's decision, not enforced
// here.
func (s *Service) DeleteList(listID string) error {
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		list, ok := snap.ShopLists[listID]
		if !ok {
			return core.NotFoundf("list %s", listID)
		}

		// Children before the list itself.
		for _, item := range snap.ItemsForList(listID) {
			delete(snap.Reactions, item.ID)
			delete(snap.Suggestions, item.ID)
			delete(snap.Items, item.ID)
		}
		delete(snap.ShopLists, listID)

		for _, userID := range list.ParticipantIDs {
			user, ok := snap.Users[userID]
			if !ok {
				continue
			}
			kept := user.ListIDs[:0]
			for _, id := range user.ListIDs {
				if id != listID {
					kept = append(kept, id)
				}
			}
			user.ListIDs = kept
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcaster.ToList(listID, core.EventListDeleted, core.ListDeletedPayload{ID: listID})
	logrus.WithField("list_id", listID).Info("List deleted")
	return nil
}

// JoinList adds a user to a list's participant set. Joining a list the user
// already participates in is a no-op besides a timestamp refresh.
func (s *Service) JoinList(listID, userID string) (*core.EnrichedList, error) {
	var out *core.EnrichedList
	var joined bool
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		list, ok := snap.ShopLists[listID]
		if !ok {
			return core.NotFoundf("list %s", listID)
		}
		user, ok := snap.Users[userID]
		if !ok {
			return core.NotFoundf("user %s", userID)
		}

		now := time.Now()
		if !list.HasParticipant(userID) {
			list.ParticipantIDs = append(list.ParticipantIDs, userID)
			user.ListIDs = append(user.ListIDs, listID)
			joined = true
		}
		list.UpdatedAt = now
		user.UpdatedAt = now
		out = enrichList(snap, list)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if joined {
		s.broadcaster.ToList(listID, core.EventParticipantJoined, core.ParticipantJoinedPayload{
			UserID: userID,
			ListID: listID,
		})
	}
	return out, nil
}

// GetList returns the enriched list.
func (s *Service) GetList(listID string) (*core.EnrichedList, error) {
	var out *core.EnrichedList
	s.store.Read(func(snap *core.Snapshot) {
		if list, ok := snap.ShopLists[listID]; ok {
			out = enrichList(snap, list)
		}
	})
	if out == nil {
		return nil, core.NotFoundf("list %s", listID)
	}
	return out, nil
}

// ListsForUser returns every list the user participates in, newest first.
func (s *Service) ListsForUser(userID string) ([]*core.EnrichedList, error) {
	var out []*core.EnrichedList
	var found bool
	s.store.Read(func(snap *core.Snapshot) {
		user, ok := snap.Users[userID]
		if !ok {
			return
		}
		found = true
		out = make([]*core.EnrichedList, 0, len(user.ListIDs))
		for _, listID := range user.ListIDs {
			if list, ok := snap.ShopLists[listID]; ok {
				out = append(out, enrichList(snap, list))
			}
		}
	})
	if !found {
		return nil, core.NotFoundf("user %s", userID)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
