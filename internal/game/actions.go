package game

import (
	"github.com/JosephWong123/ExplodingPetrs/internal/models"
	"github.com/sirupsen/logrus"
)

// admissible is the turn/packet gatekeeper. An action passes only if the
// room exists, the game has started, and connID holds the current turn.
// Everything else is dropped without reply: no error event, no mutation,
// no broadcast. Fail closed, stay quiet.
func (m *Manager) admissible(roomCode, connID string) (*Room, bool) {
	r, ok := m.Room(roomCode)
	if !ok || !r.Started {
		return nil, false
	}
	players := r.Engine.Players()
	idx := r.Engine.TurnIndex()
	if idx < 0 || idx >= len(players) || players[idx].ConnID != connID {
		m.log.WithFields(logrus.Fields{"room": r.Code, "conn": connID}).Debug("dropped out-of-turn packet")
		return nil, false
	}
	return r, true
}

// livingTargets lists every still-alive player as a selectable target.
func livingTargets(r *Room) []TargetOption {
	var out []TargetOption
	for _, p := range r.Engine.Players() {
		if p.Alive {
			out = append(out, TargetOption{ID: p.ConnID, Name: p.Name})
		}
	}
	return out
}

// handleCardPlayed submits a proposed play to the engine and routes on
// the outcome code. The engine owns legality; this only routes.
func (m *Manager) handleCardPlayed(c CardPlayed) {
	r, ok := m.admissible(c.RoomCode, c.ConnID)
	if !ok {
		return
	}

	switch r.Engine.PlayCards(c.Cards) {
	case PlayResolved:
		// Fall through to the state broadcast.
	case PlayIllegal:
		m.sender.Send(c.ConnID, EventInvalidMove, nil)
		return
	case PlayNeedTarget:
		r.pending = &followUp{kind: followTarget, originID: c.ConnID}
		m.sender.Send(c.ConnID, EventSelectTarget, SelectTargetPayload{Players: livingTargets(r)})
	case PlayNeedTargetCard:
		r.pending = &followUp{kind: followTarget, originID: c.ConnID}
		m.sender.Send(c.ConnID, EventSelectTarget, SelectTargetPayload{Players: livingTargets(r), NeedCard: true})
	case PlayRevealStack:
		r.pending = &followUp{kind: followReveal, originID: c.ConnID}
		stack := r.Engine.PlayStack()
		cut := len(stack) - 5
		if cut < 0 {
			cut = 0
		}
		m.sender.Send(c.ConnID, EventFiveCats, stack[:cut])
	case PlayPeekDeck:
		m.sender.Send(c.ConnID, EventShowFuture, r.Engine.PeekTop(3))
	case PlayRebroadcast:
		m.broadcastState(r)
	case PlayRejected:
		return
	}

	// Every code except illegal and rejected represents a completed
	// partial mutation (cards already left the hand), so the room sees
	// the new state even while a follow-up conversation is open.
	m.broadcastState(r)
}

// handleResolveTarget completes a pending target selection. If the top
// of the play stack is an action card awaiting a response, the selection
// becomes a favor request to the target; otherwise it is an immediate
// steal, blind or by card name.
func (m *Manager) handleResolveTarget(c ResolveTarget) {
	r, ok := m.admissible(c.RoomCode, c.OriginID)
	if !ok {
		return
	}
	origin := findPlayer(r, c.OriginID)
	target := findPlayer(r, c.TargetID)
	if origin == nil || target == nil {
		return
	}

	stack := r.Engine.PlayStack()
	if n := len(stack); n > 0 && stack[n-1].Kind == models.KindAction {
		r.pending = &followUp{kind: followFavor, originID: c.OriginID, targetID: c.TargetID}
		m.sender.Send(c.TargetID, EventFavor, FavorPayload{ID: origin.ConnID, Name: origin.Name})
		m.broadcastEvent(r, EventFavorAsked, ExchangePayload{Origin: origin.Name, Target: target.Name})
		return
	}

	r.Engine.Steal(c.OriginID, c.TargetID, c.Card)
	r.pending = nil
	m.broadcastEvent(r, EventCardStolen, ExchangePayload{Origin: origin.Name, Target: target.Name})
	m.broadcastState(r)
	m.sender.Send(c.OriginID, EventCardReceived, nil)
}

// handleFulfillFavor transfers the named card from the giving player to
// the favor asker. The asker still owns the turn, so the gatekeeper
// validates the destination.
func (m *Manager) handleFulfillFavor(c FulfillFavor) {
	r, ok := m.admissible(c.RoomCode, c.DestinationID)
	if !ok {
		return
	}
	r.Engine.TransferCard(c.Card, c.OriginID, c.DestinationID)
	r.pending = nil
	m.sender.Send(c.DestinationID, EventCardReceived, nil)
	m.sender.Send(c.OriginID, EventCardReceived, nil)
	m.broadcastState(r)
}

// handleDefused puts the pending bomb back into the draw pile at the
// chosen position.
func (m *Manager) handleDefused(c Defused) {
	r, ok := m.admissible(c.RoomCode, c.ConnID)
	if !ok {
		return
	}
	r.Engine.PlayDefuse(c.Index)
	m.broadcastState(r)
	m.broadcastEvent(r, EventBombOver, nil)
}

// handleResolveReveal takes the chosen card out of the revealed slice of
// the play history.
func (m *Manager) handleResolveReveal(c ResolveReveal) {
	r, ok := m.admissible(c.RoomCode, c.ConnID)
	if !ok {
		return
	}
	r.Engine.TakeFromStack(c.Card)
	r.pending = nil
	m.broadcastState(r)
}

// findPlayer resolves a connection id inside a started room's player
// list.
func findPlayer(r *Room, connID string) *models.Player {
	for _, p := range r.Engine.Players() {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}
