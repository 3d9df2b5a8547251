package game

import "github.com/JosephWong123/ExplodingPetrs/internal/models"

// PlayOutcome is the code a rules engine returns from PlayCards. The
// session layer routes on the code without re-deciding legality.
type PlayOutcome int

const (
	// PlayResolved means the play completed with no extra input needed.
	PlayResolved PlayOutcome = iota
	// PlayIllegal means the combination is not a legal move.
	PlayIllegal
	// PlayNeedTarget means the acting player must pick a target player.
	PlayNeedTarget
	// PlayNeedTargetCard means the acting player must pick a target
	// player and name a card.
	PlayNeedTargetCard
	// PlayRevealStack means the older play history is revealed to the
	// acting player so they can reclaim a card from it.
	PlayRevealStack
	// PlayPeekDeck means the acting player gets to see the top of the
	// draw pile.
	PlayPeekDeck
	// PlayRebroadcast means the play mutated public state and an explicit
	// rebroadcast was requested.
	PlayRebroadcast
	// PlayRejected means the packet was malformed at the protocol level
	// (for example naming cards the player does not hold).
	PlayRejected
)

// TurnOutcome is the code a rules engine returns from EndTurn.
type TurnOutcome int

const (
	// TurnAdvanced means the turn ended with an ordinary draw.
	TurnAdvanced TurnOutcome = iota
	// TurnBombDefusable means the drawer pulled a bomb but holds a
	// defuse; the turn stays with them until PlayDefuse.
	TurnBombDefusable
	// TurnBombExploded means the drawer pulled a bomb with no defuse and
	// has been eliminated.
	TurnBombExploded
)

// Engine is the rules engine for one started room. The session layer
// treats it as an opaque stateful object: it submits actions, routes on
// outcome codes, and reads state for view projection. Implementations
// are not safe for concurrent use; the session event loop serializes all
// access.
type Engine interface {
	PlayCards(names []string) PlayOutcome
	EndTurn() TurnOutcome
	PlayDefuse(index int)
	TakeFromStack(name string)
	Steal(originID, targetID, cardName string)
	TransferCard(cardName, fromID, toID string)
	PushToStack(c models.Card)
	Eliminate(connID string)

	Players() []*models.Player
	TurnIndex() int
	DeckLen() int
	PeekTop(n int) []models.Card
	PlayStack() []models.Card
	PendingTurns() int
	AliveCount() int
}

// EngineFactory builds an engine from the membership order at the moment
// a room starts. Tests substitute factories returning scripted engines.
type EngineFactory func(seats []models.Seat) Engine
