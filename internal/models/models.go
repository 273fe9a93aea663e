package models

import (
	"fmt"
	"strings"
	"time"
)

// UserProfile is a local profile that jump records are saved against.
// Exactly one profile is current at any time.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that the profile is well formed.
func (u UserProfile) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user profile has no id")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user profile %s has an empty name", u.ID)
	}
	return nil
}

// JumpRecord is one saved measurement. Records are immutable once created;
// the only mutation is deletion by ID.
//
// UserID is a logical reference into the user list, not an enforced foreign
// key. Deleting a user leaves their records orphaned on purpose.
type JumpRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Date       time.Time `json:"date"`
	HeightCm   float64   `json:"heightCm"`
	FlightTime float64   `json:"flightTime"`
	Note       string    `json:"note,omitempty"`
}

// Validate checks that the record is well formed.
func (r JumpRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("jump record has no id")
	}
	if r.UserID == "" {
		return fmt.Errorf("jump record %s has no user id", r.ID)
	}
	if r.HeightCm < 0 {
		return fmt.Errorf("jump record %s has negative height %.2f", r.ID, r.HeightCm)
	}
	if r.FlightTime < 0 {
		return fmt.Errorf("jump record %s has negative flight time %.3f", r.ID, r.FlightTime)
	}
	return nil
}

// VideoMarker is a labeled timestamp bookmark on the video timeline,
// independent of jump measurement. Markers are never mutated in place.
type VideoMarker struct {
	ID    string  `json:"id"`
	Time  float64 `json:"time"`
	Label string  `json:"label"`
}
