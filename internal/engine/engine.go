// Package engine is the default rules engine: an Exploding-Kittens-style
// card game. The session layer consumes it through the game.Engine
// interface and never inspects its internals.
package engine

import (
	"math/rand"
	"time"

	"github.com/JosephWong123/ExplodingPetrs/internal/game"
	"github.com/JosephWong123/ExplodingPetrs/internal/models"
)

// Game holds the full state of one table. Not safe for concurrent use;
// the session event loop serializes access.
type Game struct {
	players      []*models.Player
	turnIdx      int
	deck         []models.Card // last element is the top
	stack        []models.Card // play history, append-only apart from TakeFromStack
	pendingTurns int
	alive        int
	pendingBomb  *models.Card // drawn bomb awaiting PlayDefuse
	rng          *rand.Rand
}

var _ game.Engine = (*Game)(nil)

// New deals a fresh game for the given seats, in seat order.
func New(seats []models.Seat) *Game {
	return NewSeeded(seats, time.Now().UnixNano())
}

// NewSeeded is New with a deterministic shuffle, for tests.
func NewSeeded(seats []models.Seat, seed int64) *Game {
	g := &Game{
		rng:   rand.New(rand.NewSource(seed)),
		alive: len(seats),
	}
	pool := buildPool(len(seats))
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for _, s := range seats {
		hand := make([]models.Card, 0, startingHand+1)
		hand = append(hand, models.Card{Name: CardDefuse, Kind: models.KindAction})
		hand = append(hand, pool[:startingHand]...)
		pool = pool[startingHand:]
		g.players = append(g.players, &models.Player{
			ConnID: s.ConnID,
			Name:   s.Name,
			Hand:   hand,
			Alive:  true,
		})
	}

	// Remaining pool plus spares and one bomb fewer than the player
	// count, so the last player standing never has to draw one.
	g.deck = pool
	for i := 0; i < spareDefuses; i++ {
		g.deck = append(g.deck, models.Card{Name: CardDefuse, Kind: models.KindAction})
	}
	for i := 0; i < len(seats)-1; i++ {
		g.deck = append(g.deck, models.Card{Name: CardBomb, Kind: models.KindBomb})
	}
	g.rng.Shuffle(len(g.deck), func(i, j int) { g.deck[i], g.deck[j] = g.deck[j], g.deck[i] })
	return g
}

// PlayCards validates possession and combination shape, applies the
// effect, and reports the outcome code the session layer routes on.
func (g *Game) PlayCards(names []string) game.PlayOutcome {
	if len(names) == 0 {
		return game.PlayRejected
	}
	p := g.players[g.turnIdx]
	if !holdsAll(p, names) {
		return game.PlayRejected
	}

	outcome, legal := classify(names)
	if !legal {
		return game.PlayIllegal
	}

	for _, name := range names {
		i := p.HandIndex(name)
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
		g.stack = append(g.stack, models.Card{Name: name, Kind: kindOf(name)})
	}

	switch names[0] {
	case CardSkip:
		g.finishTurn()
	case CardAttack:
		g.advance()
		g.pendingTurns++
	case CardShuffle:
		g.rng.Shuffle(len(g.deck), func(i, j int) { g.deck[i], g.deck[j] = g.deck[j], g.deck[i] })
	}
	return outcome
}

// classify maps a combination to its outcome code. The second return is
// false for shapes that are never legal.
func classify(names []string) (game.PlayOutcome, bool) {
	switch len(names) {
	case 1:
		switch names[0] {
		case CardSkip, CardAttack:
			return game.PlayResolved, true
		case CardFavor:
			return game.PlayNeedTarget, true
		case CardShuffle:
			return game.PlayRebroadcast, true
		case CardFuture:
			return game.PlayPeekDeck, true
		}
		return 0, false
	case 2:
		if names[0] == names[1] && isCat(names[0]) {
			return game.PlayNeedTarget, true
		}
		return 0, false
	case 3:
		if names[0] == names[1] && names[1] == names[2] && isCat(names[0]) {
			return game.PlayNeedTargetCard, true
		}
		return 0, false
	case 5:
		seen := make(map[string]bool, 5)
		for _, n := range names {
			if !isCat(n) || seen[n] {
				return 0, false
			}
			seen[n] = true
		}
		return game.PlayRevealStack, true
	}
	return 0, false
}

// holdsAll reports whether the player holds every named card, counting
// duplicates.
func holdsAll(p *models.Player, names []string) bool {
	need := make(map[string]int, len(names))
	for _, n := range names {
		need[n]++
	}
	for _, c := range p.Hand {
		if need[c.Name] > 0 {
			need[c.Name]--
		}
	}
	for _, n := range need {
		if n > 0 {
			return false
		}
	}
	return true
}

// EndTurn draws for the current player and resolves the result.
func (g *Game) EndTurn() game.TurnOutcome {
	if len(g.deck) == 0 {
		g.finishTurn()
		return game.TurnAdvanced
	}
	p := g.players[g.turnIdx]
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]

	if card.Kind == models.KindBomb {
		if p.HandIndex(CardDefuse) >= 0 {
			bomb := card
			g.pendingBomb = &bomb
			return game.TurnBombDefusable
		}
		g.eliminateAt(g.turnIdx)
		return game.TurnBombExploded
	}

	p.Hand = append(p.Hand, card)
	g.finishTurn()
	return game.TurnAdvanced
}

// PlayDefuse reinserts the pending bomb at the given position from the
// bottom of the deck and completes the drawer's turn.
func (g *Game) PlayDefuse(index int) {
	if g.pendingBomb == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(g.deck) {
		index = len(g.deck)
	}
	g.deck = append(g.deck[:index], append([]models.Card{*g.pendingBomb}, g.deck[index:]...)...)
	g.pendingBomb = nil
	g.finishTurn()
}

// TakeFromStack moves the oldest matching card from the play history
// into the current player's hand.
func (g *Game) TakeFromStack(name string) {
	for i, c := range g.stack {
		if c.Name == name {
			g.stack = append(g.stack[:i], g.stack[i+1:]...)
			p := g.players[g.turnIdx]
			p.Hand = append(p.Hand, c)
			return
		}
	}
}

// Steal moves one card from target to origin: a random one when
// cardName is empty, the named one if the guess is right, nothing
// otherwise.
func (g *Game) Steal(originID, targetID, cardName string) {
	origin := g.playerByID(originID)
	target := g.playerByID(targetID)
	if origin == nil || target == nil || len(target.Hand) == 0 {
		return
	}
	i := -1
	if cardName == "" {
		i = g.rng.Intn(len(target.Hand))
	} else {
		i = target.HandIndex(cardName)
	}
	if i < 0 {
		return
	}
	card := target.Hand[i]
	target.Hand = append(target.Hand[:i], target.Hand[i+1:]...)
	origin.Hand = append(origin.Hand, card)
}

// TransferCard moves the named card between two players, no-op if the
// giver does not hold it.
func (g *Game) TransferCard(cardName, fromID, toID string) {
	from := g.playerByID(fromID)
	to := g.playerByID(toID)
	if from == nil || to == nil {
		return
	}
	i := from.HandIndex(cardName)
	if i < 0 {
		return
	}
	card := from.Hand[i]
	from.Hand = append(from.Hand[:i], from.Hand[i+1:]...)
	to.Hand = append(to.Hand, card)
}

// PushToStack appends a card to the play history.
func (g *Game) PushToStack(c models.Card) {
	g.stack = append(g.stack, c)
}

// Eliminate marks the player dead, for disconnects during play. If they
// held the turn it moves on so the room cannot stall on a ghost.
func (g *Game) Eliminate(connID string) {
	for i, p := range g.players {
		if p.ConnID == connID {
			if !p.Alive {
				return
			}
			p.Alive = false
			g.alive--
			if i == g.turnIdx && g.alive > 0 {
				g.pendingTurns = 0
				g.advance()
			}
			return
		}
	}
}

func (g *Game) Players() []*models.Player { return g.players }
func (g *Game) TurnIndex() int            { return g.turnIdx }
func (g *Game) DeckLen() int              { return len(g.deck) }
func (g *Game) PlayStack() []models.Card  { return g.stack }
func (g *Game) PendingTurns() int         { return g.pendingTurns }
func (g *Game) AliveCount() int           { return g.alive }

// PeekTop returns up to n cards from the top of the deck, topmost first.
func (g *Game) PeekTop(n int) []models.Card {
	out := make([]models.Card, 0, n)
	for i := len(g.deck) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, g.deck[i])
	}
	return out
}

func (g *Game) playerByID(connID string) *models.Player {
	for _, p := range g.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// finishTurn consumes a pending forced turn or advances to the next
// living player.
func (g *Game) finishTurn() {
	if g.pendingTurns > 0 {
		g.pendingTurns--
		return
	}
	g.advance()
}

// advance moves the turn to the next living player.
func (g *Game) advance() {
	if g.alive == 0 {
		return
	}
	for {
		g.turnIdx = (g.turnIdx + 1) % len(g.players)
		if g.players[g.turnIdx].Alive {
			return
		}
	}
}

func (g *Game) eliminateAt(i int) {
	g.players[i].Alive = false
	g.alive--
	g.pendingTurns = 0
	if g.alive > 0 {
		g.advance()
	}
}
