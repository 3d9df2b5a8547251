package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JosephWong123/ExplodingPetrs/internal/game"
)

// Envelope is the wire frame in both directions: a tagged event name and
// an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outEnvelope avoids the RawMessage round-trip for outbound frames.
type outEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

var errUnknownEvent = errors.New("unknown event")

// Inbound payload shapes. Anything that does not decode into one of
// these is dropped at the boundary and never reaches a handler.
type createPayload struct {
	DisplayName string `json:"displayName"`
}

type joinPayload struct {
	DisplayName string `json:"displayName"`
	RoomCode    string `json:"roomCode"`
}

type readyPayload struct {
	RoomCode string `json:"roomCode"`
}

type messagePayload struct {
	DisplayName string `json:"displayName"`
	Text        string `json:"text"`
	RoomCode    string `json:"roomCode"`
}

type cardPlayedPayload struct {
	Cards    []string `json:"cards"`
	RoomCode string   `json:"roomCode"`
}

type resolveTargetPayload struct {
	OriginID string `json:"originId"`
	TargetID string `json:"targetId"`
	RoomCode string `json:"roomCode"`
	Card     string `json:"optionalCard"`
}

type fulfillFavorPayload struct {
	RoomCode      string `json:"roomCode"`
	Card          string `json:"card"`
	OriginID      string `json:"originId"`
	DestinationID string `json:"destinationId"`
}

type defusedPayload struct {
	Index    int    `json:"index"`
	RoomCode string `json:"roomCode"`
}

type resolveRevealPayload struct {
	RoomCode string `json:"roomCode"`
	Card     string `json:"card"`
}

type endTurnPayload struct {
	RoomCode string `json:"roomCode"`
}

// parseCommand turns an inbound envelope into a typed command for the
// session loop. The connection id always comes from the transport, never
// from the client, except for the follow-up flows whose protocol carries
// participant ids re-validated by the gatekeeper.
func parseCommand(connID string, env Envelope) (game.Command, error) {
	switch env.Event {
	case "create":
		var p createPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.Create{ConnID: connID, Name: p.DisplayName}, nil
	case "join":
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.Join{ConnID: connID, Name: p.DisplayName, RoomCode: p.RoomCode}, nil
	case "ready":
		var p readyPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.Ready{ConnID: connID, RoomCode: p.RoomCode}, nil
	case "message":
		var p messagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.Chat{ConnID: connID, Name: p.DisplayName, Text: p.Text, RoomCode: p.RoomCode}, nil
	case "cardPlayed":
		var p cardPlayedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.CardPlayed{ConnID: connID, Cards: p.Cards, RoomCode: p.RoomCode}, nil
	case "resolveTarget":
		var p resolveTargetPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.ResolveTarget{OriginID: p.OriginID, TargetID: p.TargetID, RoomCode: p.RoomCode, Card: p.Card}, nil
	case "fulfillFavor":
		var p fulfillFavorPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.FulfillFavor{RoomCode: p.RoomCode, Card: p.Card, OriginID: p.OriginID, DestinationID: p.DestinationID}, nil
	case "defused":
		var p defusedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.Defused{ConnID: connID, RoomCode: p.RoomCode, Index: p.Index}, nil
	case "resolveReveal":
		var p resolveRevealPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.ResolveReveal{ConnID: connID, RoomCode: p.RoomCode, Card: p.Card}, nil
	case "endTurn":
		var p endTurnPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return game.EndTurn{ConnID: connID, RoomCode: p.RoomCode}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownEvent, env.Event)
}
