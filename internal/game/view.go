package game

import "github.com/JosephWong123/ExplodingPetrs/internal/models"

// PlayerSummary is the public knowledge about one player: identity,
// liveness, and a card count. Never the cards themselves.
type PlayerSummary struct {
	ConnID string `json:"clientId"`
	Name   string `json:"name"`
	Alive  bool   `json:"alive"`
	Cards  int    `json:"cards"`
}

// ClientView is the per-recipient projection of a started room. Only the
// recipient's own hand appears face up; the play stack and pile counts
// are public.
type ClientView struct {
	Turn        string          `json:"turn"`
	TurnName    string          `json:"turnName"`
	Hand        []models.Card   `json:"hand"`
	DeckLength  int             `json:"deckLength"`
	Stack       []models.Card   `json:"stack"`
	Players     []PlayerSummary `json:"players"`
	AttackTurns int             `json:"attackTurns"`
}

// projectFor builds the view of a started room from connID's seat.
func (m *Manager) projectFor(r *Room, connID string) ClientView {
	players := r.Engine.Players()
	idx := r.Engine.TurnIndex()

	view := ClientView{
		DeckLength:  r.Engine.DeckLen(),
		Stack:       r.Engine.PlayStack(),
		AttackTurns: r.Engine.PendingTurns(),
		Players:     make([]PlayerSummary, len(players)),
	}
	if idx >= 0 && idx < len(players) {
		view.Turn = players[idx].ConnID
		view.TurnName = players[idx].Name
	}
	for i, p := range players {
		view.Players[i] = PlayerSummary{
			ConnID: p.ConnID,
			Name:   p.Name,
			Alive:  p.Alive,
			Cards:  len(p.Hand),
		}
		if p.ConnID == connID {
			view.Hand = p.Hand
		}
	}
	return view
}

// broadcastState projects and sends the room state once per member.
// Every recipient gets their own payload; no two are identical.
func (m *Manager) broadcastState(r *Room) {
	for _, member := range r.Members {
		m.sender.Send(member.ConnID, EventStateUpdated, m.projectFor(r, member.ConnID))
	}
}

// broadcastEvent sends the same event and payload to every member.
func (m *Manager) broadcastEvent(r *Room, event string, payload interface{}) {
	for _, member := range r.Members {
		m.sender.Send(member.ConnID, event, payload)
	}
}
