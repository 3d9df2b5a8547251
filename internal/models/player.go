package models

// Seat is the membership snapshot handed to the rules engine when a room
// starts. Seat order becomes the initial turn order.
type Seat struct {
	ConnID string
	Name   string
}

// Player is a participant inside a started game. The rules engine owns
// the authoritative copy; the session layer reads it to project views and
// mutates the hand only for the defuse-marker flow.
type Player struct {
	ConnID string `json:"clientId"`
	Name   string `json:"name"`
	Hand   []Card `json:"hand"`
	Alive  bool   `json:"alive"`
}

// HandIndex returns the position of the first card with the given name in
// the player's hand, or -1 if the player does not hold it.
func (p *Player) HandIndex(name string) int {
	for i, c := range p.Hand {
		if c.Name == name {
			return i
		}
	}
	return -1
}
