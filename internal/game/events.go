package game

import "github.com/JosephWong123/ExplodingPetrs/internal/models"

// Outbound event names pushed to clients.
const (
	EventGameCreated    = "gameCreated"
	EventGameJoined     = "gameJoined"
	EventJoinError      = "gameJoinError"
	EventAlreadyStarted = "alreadyStarted"
	EventGameFull       = "gameFull"
	EventInvalidName    = "invalidName"
	EventNewChat        = "newChat"
	EventPlayerChanged  = "playerChanged"
	EventGameStarted    = "gameStarted"
	EventStateUpdated   = "gameStateUpdated"
	EventInvalidMove    = "invalidMove"
	EventSelectTarget   = "selectTarget"
	EventFiveCats       = "fiveCats"
	EventShowFuture     = "showFuture"
	EventFavor          = "favor"
	EventFavorAsked     = "favorAsked"
	EventCardStolen     = "cardStolen"
	EventCardReceived   = "cardReceived"
	EventDefuse         = "defuse"
	EventBombDrawn      = "bombDrawn"
	EventBombOver       = "bombOver"
	EventGameOver       = "gameOver"
	EventHideElements   = "hideElements"
)

// TargetOption is one selectable player in a selectTarget prompt.
type TargetOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SelectTargetPayload prompts the acting player to pick a target.
// NeedCard is set when the follow-up must also name a card.
type SelectTargetPayload struct {
	Players  []TargetOption `json:"players"`
	NeedCard bool           `json:"needCard"`
}

// FavorPayload tells the targeted player who is asking the favor.
type FavorPayload struct {
	ID   string `json:"clientId"`
	Name string `json:"name"`
}

// ExchangePayload names the two sides of a favor or steal, for the
// room-wide announcement.
type ExchangePayload struct {
	Origin string `json:"origin"`
	Target string `json:"target"`
}

// GameOverPayload is the terminal broadcast: the final membership list
// and the full player list, hands included. Hidden information no longer
// exists once the game is over.
type GameOverPayload struct {
	Members []Membership     `json:"members"`
	Players []*models.Player `json:"players"`
}
