package models

// Card kind tags. KindAction marks cards that can sit on top of the play
// stack awaiting a response (a pending favor, a used defuse marker);
// everything else resolves the moment it is played.
const (
	KindAction = "action"
	KindCat    = "cat"
	KindBomb   = "bomb"
)

// Card is a single playing card as seen on the wire.
type Card struct {
	Name string `json:"name"`
	Kind string `json:"type"`
}
