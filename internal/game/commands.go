package game

// Command is the closed set of inbound events the session layer
// processes. The transport decodes and validates payload shapes at the
// boundary, so handlers never see free-form data.
type Command interface{ isCommand() }

// Create opens a new room with the caller as sole member and admin.
type Create struct {
	ConnID string
	Name   string
}

// Join adds the caller to an existing, not yet started room.
type Join struct {
	ConnID   string
	Name     string
	RoomCode string
}

// Ready freezes the membership into a game; admin only.
type Ready struct {
	ConnID   string
	RoomCode string
}

// Chat relays a chat line to the whole room.
type Chat struct {
	ConnID   string
	Name     string
	Text     string
	RoomCode string
}

// CardPlayed submits a proposed play of named cards.
type CardPlayed struct {
	ConnID   string
	Cards    []string
	RoomCode string
}

// ResolveTarget completes a pending target selection. Card is set only
// when the prompt asked for a named card as well.
type ResolveTarget struct {
	OriginID string
	TargetID string
	RoomCode string
	Card     string
}

// FulfillFavor is the targeted player's voluntary card hand-over.
// DestinationID is the favor asker, who still owns the turn.
type FulfillFavor struct {
	RoomCode      string
	Card          string
	OriginID      string
	DestinationID string
}

// Defused places the pending bomb back into the draw pile.
type Defused struct {
	ConnID   string
	RoomCode string
	Index    int
}

// ResolveReveal takes a named card back out of the revealed history.
type ResolveReveal struct {
	ConnID   string
	RoomCode string
	Card     string
}

// EndTurn ends the current player's turn, drawing a card.
type EndTurn struct {
	ConnID   string
	RoomCode string
}

// Disconnect is synthesized by the transport when a connection drops.
type Disconnect struct {
	ConnID string
}

func (Create) isCommand()        {}
func (Join) isCommand()          {}
func (Ready) isCommand()         {}
func (Chat) isCommand()          {}
func (CardPlayed) isCommand()    {}
func (ResolveTarget) isCommand() {}
func (FulfillFavor) isCommand()  {}
func (Defused) isCommand()       {}
func (ResolveReveal) isCommand() {}
func (EndTurn) isCommand()       {}
func (Disconnect) isCommand()    {}
