package core

import "time"

type (
	// User is a participant. Users are created on first login by phone
	// number (or as placeholders when invited to a list by phone) and are
	// never hard-deleted.
	User struct {
		ID        string    `json:"id"`
		Phone     string    `json:"phone"`
		Name      string    `json:"name"`
		AvatarURL string    `json:"avatarUrl,omitempty"`
		// ListIDs is the inverse of ShopList.ParticipantIDs and is kept
		// consistent with it on every membership change.
		ListIDs   []string  `json:"listIds"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
)

// MemberOf reports whether the user participates in the given list.
func (u *User) MemberOf(listID string) bool {
	for _, id := range u.ListIDs {
		if id == listID {
			return true
		}
	}
	return false
}
