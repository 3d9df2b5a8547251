// Package ws is the websocket transport: it accepts connections, decodes
// inbound envelopes into typed commands for the session loop, and drains
// per-connection outgoing queues. A slow or dead client only ever loses
// its own messages.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/JosephWong123/ExplodingPetrs/internal/game"
)

const (
	outQueueSize = 64
	writeTimeout = 5 * time.Second
)

// Dispatcher is the slice of the session manager the transport needs.
type Dispatcher interface {
	Dispatch(cmd game.Command)
}

// client is one live connection and its outgoing queue.
type client struct {
	id  string
	out chan []byte
}

// Server owns the connection set and implements game.Sender.
type Server struct {
	log     *logrus.Logger
	origins []string

	mgr Dispatcher

	mu    sync.RWMutex
	conns map[string]*client
}

// NewServer builds the transport. SetDispatcher must be called before
// serving; the manager and the transport reference each other.
func NewServer(log *logrus.Logger, origins []string) *Server {
	return &Server{
		log:     log,
		origins: origins,
		conns:   make(map[string]*client),
	}
}

// SetDispatcher wires the session manager in after construction.
func (s *Server) SetDispatcher(d Dispatcher) {
	s.mgr = d
}

// Send implements game.Sender. The push is non-blocking: if a client's
// queue is full the frame is dropped and logged, never stalling the
// session loop.
func (s *Server) Send(connID, event string, payload interface{}) {
	s.mu.RLock()
	c, ok := s.conns[connID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(outEnvelope{Event: event, Data: payload})
	if err != nil {
		s.log.WithError(err).WithField("event", event).Error("marshal outbound event")
		return
	}
	select {
	case c.out <- data:
	default:
		s.log.WithFields(logrus.Fields{"conn": connID, "event": event}).Warn("outgoing queue full, dropping frame")
	}
}

// HandleWS upgrades the request and runs the connection until it drops.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}

	c := &client{
		id:  uuid.NewString(),
		out: make(chan []byte, outQueueSize),
	}
	s.mu.Lock()
	s.conns[c.id] = c
	s.mu.Unlock()
	s.log.WithField("conn", c.id).Info("connection opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.writePump(ctx, conn, c)

	s.readLoop(ctx, conn, c)

	s.mu.Lock()
	delete(s.conns, c.id)
	s.mu.Unlock()
	s.mgr.Dispatch(game.Disconnect{ConnID: c.id})
	conn.Close(websocket.StatusNormalClosure, "")
	s.log.WithField("conn", c.id).Info("connection closed")
}

// readLoop decodes frames and hands typed commands to the session loop.
// Unknown events and malformed payloads are dropped here; a handler
// never sees free-form data.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, c *client) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.WithField("conn", c.id).Debug("dropped unparseable frame")
			continue
		}
		cmd, err := parseCommand(c.id, env)
		if err != nil {
			s.log.WithFields(logrus.Fields{"conn": c.id, "event": env.Event}).Debug("dropped invalid event")
			continue
		}
		s.mgr.Dispatch(cmd)
	}
}

// writePump drains the outgoing queue onto the socket.
func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, c *client) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-c.out:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
