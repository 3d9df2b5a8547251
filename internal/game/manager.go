package game

import (
	"context"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

// Sender delivers one event to one connection. The websocket layer
// implements it; tests substitute a recorder. Sends must never block.
type Sender interface {
	Send(connID, event string, payload interface{})
}

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Manager owns every room and the connection->room registry. All state
// is mutated on a single event loop: one inbound command is fully
// handled, broadcasts included, before the next begins, which gives
// serialized access to every room with no per-room locking.
type Manager struct {
	log       *logrus.Logger
	sender    Sender
	newEngine EngineFactory

	conns map[string]string // connection id -> room code
	rooms map[string]*Room  // room code -> room

	cmds chan Command
}

// NewManager builds a session manager. The factory is invoked once per
// room at ready time with the membership order of that moment.
func NewManager(sender Sender, factory EngineFactory, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		log:       log,
		sender:    sender,
		newEngine: factory,
		conns:     make(map[string]string),
		rooms:     make(map[string]*Room),
		cmds:      make(chan Command, 256),
	}
}

// Dispatch queues a command for the event loop. Called from transport
// read goroutines.
func (m *Manager) Dispatch(cmd Command) {
	m.cmds <- cmd
}

// Run processes commands until the context is cancelled. Exactly one
// Run must be active; it is the only goroutine that touches room state.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-m.cmds:
			m.Handle(cmd)
		}
	}
}

// Handle applies a single command synchronously. Exposed for tests,
// which rely on the same serialized semantics the loop provides.
func (m *Manager) Handle(cmd Command) {
	switch c := cmd.(type) {
	case Create:
		m.handleCreate(c)
	case Join:
		m.handleJoin(c)
	case Ready:
		m.handleReady(c)
	case Chat:
		m.handleChat(c)
	case CardPlayed:
		m.handleCardPlayed(c)
	case ResolveTarget:
		m.handleResolveTarget(c)
	case FulfillFavor:
		m.handleFulfillFavor(c)
	case Defused:
		m.handleDefused(c)
	case ResolveReveal:
		m.handleResolveReveal(c)
	case EndTurn:
		m.handleEndTurn(c)
	case Disconnect:
		m.handleDisconnect(c)
	}
}

// Room looks up a room by code, normalizing case. Exposed for tests.
func (m *Manager) Room(code string) (*Room, bool) {
	r, ok := m.rooms[strings.ToUpper(code)]
	return r, ok
}

// newRoomCode mints a code that no active room is using.
func (m *Manager) newRoomCode() string {
	for {
		code, err := gonanoid.Generate(codeAlphabet, codeLength)
		if err != nil {
			// Only reachable with a bad alphabet/length; ours are fixed.
			m.log.WithError(err).Panic("room code generation failed")
		}
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}

func (m *Manager) handleCreate(c Create) {
	code := m.newRoomCode()
	r := &Room{
		Code:      code,
		AdminID:   c.ConnID,
		AdminName: c.Name,
		Members: []Membership{
			{ConnID: c.ConnID, Name: c.Name, IsAdmin: true},
		},
	}
	m.rooms[code] = r
	m.conns[c.ConnID] = code

	m.log.WithFields(logrus.Fields{"room": code, "conn": c.ConnID}).Info("room created")
	m.sender.Send(c.ConnID, EventGameCreated, code)
	m.sender.Send(c.ConnID, EventGameJoined, r.membersSnapshot())
}

func (m *Manager) handleJoin(c Join) {
	code := strings.ToUpper(c.RoomCode)
	r, ok := m.rooms[code]
	if !ok {
		m.sender.Send(c.ConnID, EventJoinError, nil)
		return
	}
	if r.Started {
		m.sender.Send(c.ConnID, EventAlreadyStarted, nil)
		return
	}
	if len(r.Members) >= MaxMembers {
		m.sender.Send(c.ConnID, EventGameFull, nil)
		return
	}
	if strings.TrimSpace(c.Name) == "" || r.hasName(c.Name) {
		m.sender.Send(c.ConnID, EventInvalidName, nil)
		return
	}

	r.Members = append(r.Members, Membership{ConnID: c.ConnID, Name: c.Name})
	m.conns[c.ConnID] = code

	m.log.WithFields(logrus.Fields{"room": code, "conn": c.ConnID, "name": c.Name}).Info("player joined")
	members := r.membersSnapshot()
	m.broadcastEvent(r, EventNewChat, c.Name+" has joined the game.")
	m.broadcastEvent(r, EventPlayerChanged, members)
	m.sender.Send(c.ConnID, EventGameJoined, members)
}

func (m *Manager) handleReady(c Ready) {
	r, ok := m.Room(c.RoomCode)
	if !ok || r.Started || len(r.Members) < MinMembers {
		return
	}
	i := r.memberIndex(c.ConnID)
	if i < 0 || !r.Members[i].IsAdmin {
		return
	}

	r.Engine = m.newEngine(r.seats())
	r.Started = true
	m.log.WithFields(logrus.Fields{"room": r.Code, "players": len(r.Members)}).Info("game started")

	for _, member := range r.Members {
		m.sender.Send(member.ConnID, EventGameStarted, m.projectFor(r, member.ConnID))
	}
}

func (m *Manager) handleChat(c Chat) {
	r, ok := m.Room(c.RoomCode)
	if !ok {
		return
	}
	m.broadcastEvent(r, EventNewChat, c.Name+": "+c.Text)
}

func (m *Manager) handleDisconnect(c Disconnect) {
	code, ok := m.conns[c.ConnID]
	if !ok {
		return
	}
	delete(m.conns, c.ConnID)

	r, ok := m.rooms[code]
	if !ok {
		return
	}

	// Last member out destroys the room.
	if len(r.Members) == 1 {
		delete(m.rooms, code)
		m.log.WithField("room", code).Info("room destroyed")
		return
	}

	i := r.memberIndex(c.ConnID)
	if i < 0 {
		return
	}
	name := r.Members[i].Name

	if r.Started {
		// Game over fires only on the transition to one living player;
		// a disconnect by someone already eliminated must not replay it.
		aliveBefore := r.Engine.AliveCount()
		r.Engine.Eliminate(c.ConnID)
		if aliveBefore > 1 && r.Engine.AliveCount() == 1 {
			m.broadcastEvent(r, EventGameOver, GameOverPayload{
				Members: r.membersSnapshot(),
				Players: r.Engine.Players(),
			})
		} else {
			m.broadcastState(r)
		}
	}

	// Admin passes to the next member in list order, wrapping to the
	// head when the admin was last.
	if r.Members[i].IsAdmin {
		next := (i + 1) % len(r.Members)
		r.Members[next].IsAdmin = true
		r.AdminID = r.Members[next].ConnID
		r.AdminName = r.Members[next].Name
	}
	r.Members = append(r.Members[:i], r.Members[i+1:]...)

	m.cancelFollowUpFor(r, c.ConnID)

	m.log.WithFields(logrus.Fields{"room": code, "conn": c.ConnID, "name": name}).Info("player left")
	m.broadcastEvent(r, EventNewChat, name+" has left the game.")
	m.broadcastEvent(r, EventPlayerChanged, r.membersSnapshot())
}

// cancelFollowUpFor closes the room's open deferred conversation when a
// participant in it is gone, telling the surviving side to unblock. A
// dangling conversation would leave the asker's turn stuck.
func (m *Manager) cancelFollowUpFor(r *Room, connID string) {
	p := r.pending
	if p == nil || (p.originID != connID && p.targetID != connID) {
		return
	}
	r.pending = nil
	other := p.originID
	if other == connID {
		other = p.targetID
	}
	if other != "" && r.memberIndex(other) >= 0 {
		m.sender.Send(other, EventHideElements, nil)
	}
}
