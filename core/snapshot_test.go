package core

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_NormalizeAfterUnmarshal(t *testing.T) {
	// A document written before some collection existed unmarshals with nil
	// maps; Normalize restores the all-collections-present invariant.
	var snap Snapshot
	if err := json.Unmarshal([]byte(`{"users": {}}`), &snap); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	snap.Normalize()

	if snap.Products == nil || snap.ShopLists == nil || snap.Items == nil ||
		snap.Reactions == nil || snap.Suggestions == nil {
		t.Error("Normalize() left a nil collection")
	}
}

func TestSnapshot_EmptyRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewSnapshot())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	restored := NewSnapshot()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	restored.Normalize()

	again, err := json.Marshal(restored)
	if err != nil {
		t.Fatalf("Marshal() of the restored snapshot failed: %v", err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip changed the document:\n%s\n%s", data, again)
	}
}

func TestSnapshot_UserByPhone(t *testing.T) {
	snap := NewSnapshot()
	snap.Users["u1"] = &User{ID: "u1", Phone: "+4915111111111"}

	if got := snap.UserByPhone("+4915111111111"); got == nil || got.ID != "u1" {
		t.Errorf("UserByPhone() = %v", got)
	}
	if got := snap.UserByPhone("+4915999999999"); got != nil {
		t.Errorf("UserByPhone() on unknown number = %v, want nil", got)
	}
}

func TestSnapshot_ItemsForList(t *testing.T) {
	snap := NewSnapshot()
	snap.Items["i1"] = &ShopListItem{ID: "i1", ListID: "l1"}
	snap.Items["i2"] = &ShopListItem{ID: "i2", ListID: "l1"}
	snap.Items["i3"] = &ShopListItem{ID: "i3", ListID: "l2"}

	got := snap.ItemsForList("l1")
	if len(got) != 2 {
		t.Errorf("ItemsForList(l1): got %d items, want 2", len(got))
	}
	if got := snap.ItemsForList("l3"); len(got) != 0 {
		t.Errorf("ItemsForList(l3): got %d items, want 0", len(got))
	}
}
