package game

import (
	"strings"

	"github.com/JosephWong123/ExplodingPetrs/internal/models"
)

// MaxMembers caps room size; MinMembers is the floor for starting a game.
const (
	MaxMembers = 8
	MinMembers = 2
)

// Membership is one connection's participation record in a room.
type Membership struct {
	ConnID  string `json:"clientId"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// followUpKind tags the open deferred conversation in a room, if any.
type followUpKind int

const (
	followTarget followUpKind = iota // waiting on a target selection
	followFavor                      // waiting on the targeted player's card
	followReveal                     // waiting on a pick from the revealed history
)

// followUp records an open multi-step interaction so it can be cancelled
// if a participant disconnects mid-conversation.
type followUp struct {
	kind     followUpKind
	originID string
	targetID string // set for followFavor only
}

// Room is one game session. Owned exclusively by the Manager; all
// mutation happens on the session event loop.
type Room struct {
	Code      string
	Members   []Membership
	AdminID   string
	AdminName string
	Engine    Engine
	Started   bool

	pending *followUp
}

// memberIndex returns the position of connID in the membership list, or
// -1 when absent.
func (r *Room) memberIndex(connID string) int {
	for i, m := range r.Members {
		if m.ConnID == connID {
			return i
		}
	}
	return -1
}

// hasName reports whether the trimmed name collides case-insensitively
// with an existing member's name.
func (r *Room) hasName(name string) bool {
	want := strings.TrimSpace(name)
	for _, m := range r.Members {
		if strings.EqualFold(strings.TrimSpace(m.Name), want) {
			return true
		}
	}
	return false
}

// membersSnapshot copies the membership list for outbound payloads, so
// later in-place removals cannot mutate a frame a Sender still holds.
func (r *Room) membersSnapshot() []Membership {
	out := make([]Membership, len(r.Members))
	copy(out, r.Members)
	return out
}

// seats snapshots the membership order for engine construction.
func (r *Room) seats() []models.Seat {
	out := make([]models.Seat, len(r.Members))
	for i, m := range r.Members {
		out[i] = models.Seat{ConnID: m.ConnID, Name: m.Name}
	}
	return out
}
