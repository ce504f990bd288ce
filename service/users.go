package service

import (
	"strings"
	"time"

	"shoplist-server/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Login finds the user with the given phone number, creating one on first
// authentication. A placeholder user created earlier by a list invitation
// gets its display name filled in on first real login.
func (s *Service) Login(phone, name string) (*core.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, core.InvalidInputf("phone number is required")
	}

	var out *core.User
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		user := snap.UserByPhone(phone)
		if user == nil {
			now := time.Now()
			user = &core.User{
				ID:        ulid.Make().String(),
				Phone:     phone,
				Name:      name,
				ListIDs:   []string{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			snap.Users[user.ID] = user
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
			}).Info("User created on first login")
		} else if user.Name == "" && name != "" {
			user.Name = name
			user.UpdatedAt = time.Now()
		}
		out = cloneUser(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(userID string) (*core.User, error) {
	var out *core.User
	s.store.Read(func(snap *core.Snapshot) {
		out = cloneUser(snap.Users[userID])
	})
	if out == nil {
		return nil, core.NotFoundf("user %s", userID)
	}
	return out, nil
}

// UpdateProfile changes a user's display name.
func (s *Service) UpdateProfile(userID, name string) (*core.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.InvalidInputf("name is required")
	}

	var out *core.User
	err := s.store.Mutate(func(snap *core.Snapshot) error {
		user, ok := snap.Users[userID]
		if !ok {
			return core.NotFoundf("user %s", userID)
		}
		user.Name = name
		user.UpdatedAt = time.Now()
		out = cloneUser(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
