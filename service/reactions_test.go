package service

import (
	"sync"
	"testing"

	"shoplist-server/core"
)

func reactionSetup(t *testing.T) (*Service, *fakeBroadcaster, *core.User, *core.User, *core.EnrichedList, *core.EnrichedItem) {
	t.Helper()
	svc, st, broadcaster := newTestService(t)
	seedProduct(t, st, 7, "Chocolate")

	alice := mustLogin(t, svc, "+4915111111111", "Alice")
	bob := mustLogin(t, svc, "+4915222222222", "Bob")
	list := mustCreateList(t, svc, alice.ID, "Gifts")
	if _, err := svc.JoinList(list.ID, bob.ID); err != nil {
		t.Fatalf("JoinList() failed: %v", err)
	}
	item := mustAddItem(t, svc, list.ID, alice.ID, 7)
	return svc, broadcaster, alice, bob, list, item
}

func TestToggleReaction_StateMachine(t *testing.T) {
	tests := []struct {
		name         string
		sequence     []core.ReactionKind
		wantLikes    int
		wantDislikes int
		wantCount    int
		wantKind     core.ReactionKind
	}{
		{"first like creates", []core.ReactionKind{core.ReactionLike}, 1, 0, 1, core.ReactionLike},
		{"first dislike creates", []core.ReactionKind{core.ReactionDislike}, 0, 1, 1, core.ReactionDislike},
		{"like then like toggles off", []core.ReactionKind{core.ReactionLike, core.ReactionLike}, 0, 0, 0, ""},
		{"like then dislike updates", []core.ReactionKind{core.ReactionLike, core.ReactionDislike}, 0, 1, 1, core.ReactionDislike},
		{"dislike then like updates", []core.ReactionKind{core.ReactionDislike, core.ReactionLike}, 1, 0, 1, core.ReactionLike},
		{"full cycle ends empty", []core.ReactionKind{core.ReactionLike, core.ReactionDislike, core.ReactionDislike}, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, alice, _, list, item := reactionSetup(t)

			var last *core.ItemReactedPayload
			for _, kind := range tc.sequence {
				var err error
				last, err = svc.ToggleReaction(item.ID, alice.ID, kind)
				if err != nil {
					t.Fatalf("ToggleReaction(%s) failed: %v", kind, err)
				}
			}

			if last.Likes != tc.wantLikes || last.Dislikes != tc.wantDislikes {
				t.Errorf("counts: got likes=%d dislikes=%d, want likes=%d dislikes=%d",
					last.Likes, last.Dislikes, tc.wantLikes, tc.wantDislikes)
			}

			items, err := svc.Items(list.ID)
			if err != nil {
				t.Fatalf("Items() failed: %v", err)
			}
			reactions := items[0].Reactions
			if len(reactions) != tc.wantCount {
				t.Fatalf("reaction count: got %d, want %d", len(reactions), tc.wantCount)
			}
			if tc.wantCount == 1 && reactions[0].Kind != tc.wantKind {
				t.Errorf("reaction kind: got %s, want %s", reactions[0].Kind, tc.wantKind)
			}
		})
	}
}

func TestToggleReaction_AtMostOnePerUserItemPair(t *testing.T) {
	svc, _, alice, _, list, item := reactionSetup(t)

	sequence := []core.ReactionKind{
		core.ReactionLike, core.ReactionDislike, core.ReactionLike,
		core.ReactionLike, core.ReactionDislike, core.ReactionDislike,
	}
	for _, kind := range sequence {
		if _, err := svc.ToggleReaction(item.ID, alice.ID, kind); err != nil {
			t.Fatalf("ToggleReaction(%s) failed: %v", kind, err)
		}

		items, err := svc.Items(list.ID)
		if err != nil {
			t.Fatalf("Items() failed: %v", err)
		}
		mine := 0
		for _, reaction := range items[0].Reactions {
			if reaction.UserID == alice.ID {
				mine++
			}
		}
		if mine > 1 {
			t.Fatalf("found %d reactions for one (user, item) pair", mine)
		}
	}
}

func TestToggleReaction_Validation(t *testing.T) {
	svc, _, alice, _, _, item := reactionSetup(t)

	if _, err := svc.ToggleReaction(item.ID, alice.ID, "MEH"); !core.IsInvalidInput(err) {
		t.Errorf("unknown kind: got %v, want invalid input", err)
	}
	if _, err := svc.ToggleReaction("missing", alice.ID, core.ReactionLike); !core.IsNotFound(err) {
		t.Errorf("unknown item: got %v, want not found", err)
	}
	if _, err := svc.ToggleReaction(item.ID, "missing", core.ReactionLike); !core.IsNotFound(err) {
		t.Errorf("unknown user: got %v, want not found", err)
	}
}

func TestToggleReaction_BroadcastsCounts(t *testing.T) {
	svc, broadcaster, _, bob, list, item := reactionSetup(t)

	if _, err := svc.ToggleReaction(item.ID, bob.ID, core.ReactionLike); err != nil {
		t.Fatalf("ToggleReaction() failed: %v", err)
	}

	events := broadcaster.eventsFor("list:" + list.ID)
	last := events[len(events)-1]
	if last.Event != core.EventItemReacted {
		t.Fatalf("last event: got %q, want %q", last.Event, core.EventItemReacted)
	}
	payload, ok := last.Payload.(*core.ItemReactedPayload)
	if !ok {
		t.Fatalf("payload type: got %#v", last.Payload)
	}
	if payload.ItemID != item.ID || payload.Likes != 1 || payload.Dislikes != 0 {
		t.Errorf("payload: got %+v, want itemId=%s likes=1 dislikes=0", payload, item.ID)
	}
}

func TestToggleReaction_ConcurrentOppositeUsers(t *testing.T) {
	svc, _, alice, bob, list, item := reactionSetup(t)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.ToggleReaction(item.ID, alice.ID, core.ReactionLike)
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := svc.ToggleReaction(item.ID, bob.ID, core.ReactionDislike)
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent ToggleReaction() failed: %v", err)
		}
	}

	items, err := svc.Items(list.ID)
	if err != nil {
		t.Fatalf("Items() failed: %v", err)
	}
	got := items[0]
	if len(got.Reactions) != 2 {
		t.Fatalf("reaction count: got %d, want 2 independent reactions", len(got.Reactions))
	}
	if got.Likes != 1 || got.Dislikes != 1 {
		t.Errorf("counts: got likes=%d dislikes=%d, want 1 and 1", got.Likes, got.Dislikes)
	}
}
