package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jumptools/airtime/internal/models"
	"github.com/jumptools/airtime/internal/shared"
)

// DefaultUserName is the profile auto-created on first run.
const DefaultUserName = "Guest"

// UserStore owns the list of local profiles and the current-user selection.
// Every mutation rewrites the full user list under [KeyUsers].
type UserStore struct {
	kv        KV
	users     []models.UserProfile
	currentID string
}

// NewUserStore loads persisted profiles from kv. On first run, with no
// persisted users, it creates and immediately persists the default Guest
// profile and makes it current.
func NewUserStore(kv KV) (*UserStore, error) {
	s := &UserStore{kv: kv}

	data, err := kv.Get(KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &s.users); err != nil {
			return nil, fmt.Errorf("failed to decode users: %w", err)
		}
	}

	if len(s.users) == 0 {
		guest := models.UserProfile{
			ID:        shared.GenerateID(),
			Name:      DefaultUserName,
			CreatedAt: time.Now(),
		}
		s.users = []models.UserProfile{guest}
		s.currentID = guest.ID
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}

	current, err := kv.Get(KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	s.currentID = strings.TrimSpace(string(current))
	if _, ok := s.byID(s.currentID); !ok {
		s.currentID = s.users[0].ID
	}

	return s, nil
}

// Create appends a new profile, persists, and switches the current user to
// it. A name that trims to empty is silently ignored and no profile is
// created.
func (s *UserStore) Create(name string) (models.UserProfile, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.UserProfile{}, false
	}

	user := models.UserProfile{
		ID:        shared.GenerateID(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.users = append(s.users, user)
	s.currentID = user.ID

	if err := s.persist(); err != nil {
		// Persistence is assumed reliable; keep the in-memory state either way.
		return user, true
	}
	return user, true
}

// Switch makes the given profile current. The caller supplies a known
// reference; no existence check is performed.
func (s *UserStore) Switch(user models.UserProfile) error {
	s.currentID = user.ID
	return s.kv.Set(KeyCurrentUser, []byte(user.ID))
}

// SwitchByID makes the profile with the given ID current, if it exists.
func (s *UserStore) SwitchByID(id string) error {
	user, ok := s.byID(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUserNotFound, id)
	}
	return s.Switch(user)
}

// Current returns the current profile.
func (s *UserStore) Current() (models.UserProfile, bool) {
	return s.byID(s.currentID)
}

// All returns the profiles in creation order.
func (s *UserStore) All() []models.UserProfile {
	out := make([]models.UserProfile, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of profiles.
func (s *UserStore) Len() int {
	return len(s.users)
}

// Delete removes a profile by ID. History records referencing the profile
// are left in place; orphaned records are intentional. When the current
// profile is deleted the selection falls back to the first remaining one.
func (s *UserStore) Delete(id string) error {
	for i, user := range s.users {
		if user.ID != id {
			continue
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		if s.currentID == id && len(s.users) > 0 {
			s.currentID = s.users[0].ID
		}
		return s.persist()
	}
	return fmt.Errorf("%w: %s", shared.ErrUserNotFound, id)
}

func (s *UserStore) byID(id string) (models.UserProfile, bool) {
	for _, user := range s.users {
		if user.ID == id {
			return user, true
		}
	}
	return models.UserProfile{}, false
}

func (s *UserStore) persist() error {
	data, err := json.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := s.kv.Set(KeyUsers, data); err != nil {
		return err
	}
	return s.kv.Set(KeyCurrentUser, []byte(s.currentID))
}
