package service

import (
	"testing"

	"shoplist-server/core"
)

func TestLogin_CreatesUserOnFirstAuthentication(t *testing.T) {
	svc, _, _ := newTestService(t)

	user := mustLogin(t, svc, "+4915111111111", "Alice")
	if user.ID == "" {
		t.Fatal("Login() returned user with empty ID")
	}
	if user.Phone != "+4915111111111" {
		t.Errorf("Phone mismatch: got %q", user.Phone)
	}
	if user.Name != "Alice" {
		t.Errorf("Name mismatch: got %q", user.Name)
	}
}

func TestLogin_SamePhoneReturnsSameUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	first := mustLogin(t, svc, "+4915111111111", "Alice")
	second := mustLogin(t, svc, "+4915111111111", "Alice")

	if first.ID != second.ID {
		t.Errorf("Login() created a second user for the same phone: %s vs %s", first.ID, second.ID)
	}
}

func TestLogin_EmptyPhoneRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login("   ", "Alice")
	if !core.IsInvalidInput(err) {
		t.Errorf("Login() with empty phone: got %v, want invalid input", err)
	}
}

func TestLogin_FillsPlaceholderName(t *testing.T) {
	svc, _, _ := newTestService(t)

	owner := mustLogin(t, svc, "+4915111111111", "Alice")
	list, err := svc.CreateList(owner.ID, "Gifts", "", []string{"+4915222222222"})
	if err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	if len(list.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(list.Members))
	}

	invited := mustLogin(t, svc, "+4915222222222", "Bob")
	if invited.Name != "Bob" {
		t.Errorf("placeholder user name not filled on first login: got %q", invited.Name)
	}
	if !invited.MemberOf(list.ID) {
		t.Error("invited user is not a member of the list it was invited to")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)

	user := mustLogin(t, svc, "+4915111111111", "Alice")
	updated, err := svc.UpdateProfile(user.ID, "Alicia")
	if err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}
	if updated.Name != "Alicia" {
		t.Errorf("Name mismatch after update: got %q", updated.Name)
	}

	if _, err := svc.UpdateProfile(user.ID, ""); !core.IsInvalidInput(err) {
		t.Errorf("UpdateProfile() with empty name: got %v, want invalid input", err)
	}
	if _, err := svc.UpdateProfile("missing", "X"); !core.IsNotFound(err) {
		t.Errorf("UpdateProfile() on unknown user: got %v, want not found", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.GetUser("missing"); !core.IsNotFound(err) {
		t.Errorf("GetUser() on unknown user: got %v, want not found", err)
	}
}
