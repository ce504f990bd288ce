package core

// Wire-level event names delivered over list and user channels. The payload
// is the enriched entity unless a dedicated payload type exists below.
const (
	EventListCreated       = "list-created"
	EventListDeleted       = "list-deleted"
	EventParticipantJoined = "participant-joined"
	EventItemAdded         = "item-added"
	EventItemRemoved       = "item-removed"
	EventItemReacted       = "item-reacted"
	EventItemSuggested     = "item-suggested"
)

type (
	// ListDeletedPayload carries only the id of the removed list.
	ListDeletedPayload struct {
		ID string `json:"id"`
	}

	// ParticipantJoinedPayload announces a new member on a list channel.
	ParticipantJoinedPayload struct {
		UserID string `json:"userId"`
		ListID string `json:"listId"`
	}

	// ItemRemovedPayload carries only the id of the removed item.
	ItemRemovedPayload struct {
		ID string `json:"id"`
	}

	// ItemReactedPayload carries the recomputed reaction counts after a
	// toggle.
	ItemReactedPayload struct {
		ItemID   string `json:"itemId"`
		Likes    int    `json:"likes"`
		Dislikes int    `json:"dislikes"`
	}
)
