package service

import "shoplist-server/core"

// Enrichment is a pure read-side projection: everything returned here is a
// copy, decorated with related entities, and never a pointer into the store.

func cloneUser(u *core.User) *core.User {
	if u == nil {
		return nil
	}
	out := *u
	out.ListIDs = append([]string(nil), u.ListIDs...)
	return &out
}

func cloneProduct(p *core.Product) *core.Product {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func cloneList(l *core.ShopList) core.ShopList {
	out := *l
	out.ParticipantIDs = append([]string(nil), l.ParticipantIDs...)
	return out
}

func countReactions(snap *core.Snapshot, itemID string) (likes, dislikes int) {
	for _, reaction := range snap.Reactions[itemID] {
		switch reaction.Kind {
		case core.ReactionLike:
			likes++
		case core.ReactionDislike:
			dislikes++
		}
	}
	return likes, dislikes
}

func enrichSuggestion(snap *core.Snapshot, suggestion *core.Suggestion) *core.EnrichedSuggestion {
	return &core.EnrichedSuggestion{
		Suggestion: *suggestion,
		Product:    cloneProduct(snap.Products[suggestion.ProductID]),
		Proposer:   cloneUser(snap.Users[suggestion.SuggestedBy]),
	}
}

func enrichItem(snap *core.Snapshot, item *core.ShopListItem) *core.EnrichedItem {
	reactions := make([]*core.Reaction, 0, len(snap.Reactions[item.ID]))
	for _, reaction := range snap.Reactions[item.ID] {
		r := *reaction
		reactions = append(reactions, &r)
	}

	suggestions := make([]*core.EnrichedSuggestion, 0, len(snap.Suggestions[item.ID]))
	for _, suggestion := range snap.Suggestions[item.ID] {
		suggestions = append(suggestions, enrichSuggestion(snap, suggestion))
	}

	likes, dislikes := countReactions(snap, item.ID)
	return &core.EnrichedItem{
		ShopListItem: *item,
		Product:      cloneProduct(snap.Products[item.ProductID]),
		Reactions:    reactions,
		Suggestions:  suggestions,
		Likes:        likes,
		Dislikes:     dislikes,
	}
}

func enrichList(snap *core.Snapshot, list *core.ShopList) *core.EnrichedList {
	members := make([]*core.User, 0, len(list.ParticipantIDs))
	for _, userID := range list.ParticipantIDs {
		if user, ok := snap.Users[userID]; ok {
			members = append(members, cloneUser(user))
		}
	}
	return &core.EnrichedList{
		ShopList: cloneList(list),
		Members:  members,
	}
}
