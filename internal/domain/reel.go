package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the two-valued enabled flag of a reel.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ErrMissingField is returned when a required reel field is empty.
var ErrMissingField = errors.New("missing required field")

// Reel represents one promoted reel and its comment campaign.
//
// A Reel is uniquely identified by its ID inside a collection.
type Reel struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned once at creation time and never changes.
	ID int64 `json:"id"`

	// ─────────────────────────────
	// Campaign configuration
	// ─────────────────────────────

	// Link is the URL of the promoted reel. Never empty.
	Link string `json:"reel_link"`

	// Keyword is the comment token viewers have to post.
	// Stored upper-cased so matching and display stay consistent.
	Keyword string `json:"comment_keyword"`

	// Reward is optional (URL or free text). Empty means no reward.
	Reward string `json:"reward,omitempty"`

	// ─────────────────────────────
	// State
	// ─────────────────────────────

	// Status is either active or inactive. New reels start active.
	Status Status `json:"status"`
}

// IsActive reports whether the reel is currently active.
func (r Reel) IsActive() bool { return r.Status == StatusActive }

// HasReward reports whether a reward is configured.
func (r Reel) HasReward() bool { return r.Reward != "" }

// Toggle returns the opposite status. Anything that is not active is
// treated as inactive, so toggling always lands on a valid state.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// ParseStatus maps loose inputs ("active", "enabled", "true", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "enabled", "on", "true", "1":
		return StatusActive, nil
	case "inactive", "disabled", "off", "false", "0":
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

// StatusFromBool converts the enabled flag used by local storage.
func StatusFromBool(enabled bool) Status {
	if enabled {
		return StatusActive
	}
	return StatusInactive
}

// NormalizeKeyword returns the canonical form of a comment keyword.
func NormalizeKeyword(keyword string) string {
	return strings.ToUpper(strings.TrimSpace(keyword))
}

// NewReel builds a validated reel with canonical fields and an active status.
func NewReel(id int64, link, keyword, reward string) (Reel, error) {
	link = strings.TrimSpace(link)
	keyword = NormalizeKeyword(keyword)
	reward = strings.TrimSpace(reward)

	if link == "" {
		return Reel{}, fmt.Errorf("link: %w", ErrMissingField)
	}
	if keyword == "" {
		return Reel{}, fmt.Errorf("keyword: %w", ErrMissingField)
	}

	return Reel{
		ID:      id,
		Link:    link,
		Keyword: keyword,
		Reward:  reward,
		Status:  StatusActive,
	}, nil
}
