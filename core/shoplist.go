package core

import "time"

// Visibility controls who may discover a list. Membership is what grants
// access; visibility only affects discovery.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityLink    Visibility = "LINK"
	VisibilityPublic  Visibility = "PUBLIC"
)

// ValidVisibility reports whether v is one of the known visibility values.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPrivate, VisibilityLink, VisibilityPublic:
		return true
	}
	return false
}

// ReactionKind is the kind of a reaction on an item.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "LIKE"
	ReactionDislike ReactionKind = "DISLIKE"
)

// ValidReactionKind reports whether k is LIKE or DISLIKE.
func ValidReactionKind(k ReactionKind) bool {
	return k == ReactionLike || k == ReactionDislike
}

type (
	// ShopList is a shared list of items. The owner is always a
	// participant; participants grow via join operations and never via
	// anything else.
	ShopList struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Visibility     Visibility `json:"visibility"`
		OwnerID        string     `json:"ownerId"`
		ParticipantIDs []string   `json:"participantIds"`
		CreatedAt      time.Time  `json:"createdAt"`
		UpdatedAt      time.Time  `json:"updatedAt"`
	}

	// ShopListItem is a product entry on a list.
	ShopListItem struct {
		ID        string    `json:"id"`
		ListID    string    `json:"listId"`
		ProductID int64     `json:"productId"`
		AddedBy   string    `json:"addedBy"`
		AddedAt   time.Time `json:"addedAt"`
	}

	// Reaction is a like or dislike on an item. Identity is the
	// (UserID, ItemID) pair; at most one reaction per pair exists at any
	// time.
	Reaction struct {
		UserID    string       `json:"userId"`
		ItemID    string       `json:"itemId"`
		Kind      ReactionKind `json:"kind"`
		CreatedAt time.Time    `json:"createdAt"`
	}

	// Suggestion proposes an alternative product for an item. Suggestions
	// are append-only and are removed only when their item is removed.
	Suggestion struct {
		ID          string    `json:"id"`
		ItemID      string    `json:"itemId"`
		ProductID   int64     `json:"productId"`
		SuggestedBy string    `json:"suggestedBy"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

// HasParticipant reports whether the user is a participant of the list.
func (l *ShopList) HasParticipant(userID string) bool {
	for _, id := range l.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type (
	// EnrichedSuggestion is a suggestion decorated with its resolved
	// product and proposer for delivery to callers.
	EnrichedSuggestion struct {
		Suggestion
		Product  *Product `json:"product"`
		Proposer *User    `json:"proposer"`
	}

	// EnrichedItem is an item decorated with its product, reactions and
	// suggestions. Like/dislike counts are recomputed from the reaction
	// set, never cached on the entity.
	EnrichedItem struct {
		ShopListItem
		Product     *Product              `json:"product"`
		Reactions   []*Reaction           `json:"reactions"`
		Suggestions []*EnrichedSuggestion `json:"suggestions"`
		Likes       int                   `json:"likes"`
		Dislikes    int                   `json:"dislikes"`
	}

	// EnrichedList is a list decorated with its resolved member users.
	EnrichedList struct {
		ShopList
		Members []*User `json:"members"`
	}
)
