package game

import "github.com/JosephWong123/ExplodingPetrs/internal/models"

// handleEndTurn ends the current player's turn and resolves the draw.
// A defusable bomb keeps the turn with the drawer: their defuse moves
// from hand to the top of the play stack as a visible used marker, and
// they get a private prompt to place the bomb. An undefusable bomb
// eliminates the drawer, ending the game if only one player remains.
func (m *Manager) handleEndTurn(c EndTurn) {
	r, ok := m.admissible(c.RoomCode, c.ConnID)
	if !ok {
		return
	}

	// Ending the turn abandons any open target or reveal conversation.
	r.pending = nil

	drawer := r.Engine.Players()[r.Engine.TurnIndex()]
	outcome := r.Engine.EndTurn()

	if outcome == TurnBombDefusable {
		if i := drawer.HandIndex("Defuse"); i >= 0 {
			drawer.Hand = append(drawer.Hand[:i], drawer.Hand[i+1:]...)
		}
		m.sender.Send(drawer.ConnID, EventDefuse, m.projectFor(r, drawer.ConnID))
		r.Engine.PushToStack(models.Card{Name: "Defuse", Kind: models.KindAction})
	}

	if outcome == TurnBombDefusable || outcome == TurnBombExploded {
		m.broadcastEvent(r, EventBombDrawn, drawer.Name)
		if outcome == TurnBombExploded && r.Engine.AliveCount() == 1 {
			m.broadcastEvent(r, EventGameOver, GameOverPayload{
				Members: r.membersSnapshot(),
				Players: r.Engine.Players(),
			})
		}
	}

	m.broadcastEvent(r, EventHideElements, nil)
	m.broadcastState(r)
}
