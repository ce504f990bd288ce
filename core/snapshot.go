package core

// Snapshot is the full persisted state of the server: every entity
// collection in one document. It is the unit of persistence, the whole
// document is written on each flush, and must round-trip exactly through a
// save/load cycle, including empty collections.
//
// Reactions and Suggestions are keyed by the id of the item they belong to,
// so a cascading item removal is a single map delete per collection.
type Snapshot struct {
	Users       map[string]*User         `json:"users"`
	Products    map[int64]*Product       `json:"products"`
	ShopLists   map[string]*ShopList     `json:"shopLists"`
	Items       map[string]*ShopListItem `json:"shopListItems"`
	Reactions   map[string][]*Reaction   `json:"reactions"`
	Suggestions map[string][]*Suggestion `json:"suggestions"`
}

// NewSnapshot returns an empty snapshot with all collections initialized.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:       make(map[string]*User),
		Products:    make(map[int64]*Product),
		ShopLists:   make(map[string]*ShopList),
		Items:       make(map[string]*ShopListItem),
		Reactions:   make(map[string][]*Reaction),
		Suggestions: make(map[string][]*Suggestion),
	}
}

// Normalize replaces nil collections with empty ones. Called after
// unmarshaling so the round-trip law holds even for snapshots written before
// a collection existed.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = make(map[string]*User)
	}
	if s.Products == nil {
		s.Products = make(map[int64]*Product)
	}
	if s.ShopLists == nil {
		s.ShopLists = make(map[string]*ShopList)
	}
	if s.Items == nil {
		s.Items = make(map[string]*ShopListItem)
	}
	if s.Reactions == nil {
		s.Reactions = make(map[string][]*Reaction)
	}
	if s.Suggestions == nil {
		s.Suggestions = make(map[string][]*Suggestion)
	}
}

// UserByPhone returns the user with the given phone number, or nil.
func (s *Snapshot) UserByPhone(phone string) *User {
	for _, u := range s.Users {
		if u.Phone == phone {
			return u
		}
	}
	return nil
}

// ItemsForList returns every item belonging to the given list, unordered.
func (s *Snapshot) ItemsForList(listID string) []*ShopListItem {
	var items []*ShopListItem
	for _, item := range s.Items {
		if item.ListID == listID {
			items = append(items, item)
		}
	}
	return items
}
