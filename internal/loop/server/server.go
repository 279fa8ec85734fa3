// Package server tracks the sessions connected to one process: it hands each
// its own game, keeps a shared leaderboard and coordinates shutdown.
package server

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/sim"
)

// EventType identifies a server-to-client notification.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// ClientEvent is sent from the server to a client.
type ClientEvent struct {
	Type EventType
}

// ClientHandle is a session's registration with the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
}

// Options configures a Server.
type Options struct {
	Tables *catalog.Tables
	Tuning *sim.Tuning // Defaults to sim.DefaultTuning
	Logger *log.Logger
}

// Server is safe for concurrent use by session goroutines.
type Server struct {
	tables *catalog.Tables
	tuning sim.Tuning
	logger *log.Logger

	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	board        leaderboard
	seed         int64
}

// NewServer creates a server with no sessions.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	tables := opts.Tables
	if tables == nil {
		tables = catalog.Default()
	}
	tuning := sim.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	return &Server{
		tables:  tables,
		tuning:  tuning,
		logger:  logger,
		clients: make(map[int]*ClientHandle),
		seed:    time.Now().UnixNano(),
	}
}

// RegisterClient adds a session.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 4),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	s.logger.Debug("client registered", "id", handle.ID, "user", username, "clients", len(s.clients))
	return handle
}

// UnregisterClient removes a session.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, clientID)
	s.logger.Debug("client unregistered", "id", clientID, "clients", len(s.clients))
}

// Players returns the number of connected sessions.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// NewGame creates an independent game for a session, seeded per session.
func (s *Server) NewGame(handle *ClientHandle) (*sim.Game, error) {
	tuning := s.tuning
	return sim.New(sim.Options{
		Tables: s.tables,
		Tuning: &tuning,
		Rand:   rand.New(rand.NewSource(s.seed + int64(handle.ID))),
		Logger: s.logger.WithPrefix(handle.Username),
	})
}

// ReportScore records a finished level attempt on the leaderboard.
func (s *Server) ReportScore(handle *ClientHandle, level, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.record(ScoreEntry{Username: handle.Username, Level: level, Score: score, clientID: handle.ID})
}

// TopScores returns up to n leaderboard entries, best first.
func (s *Server) TopScores(n int) []ScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.top(n)
}

// Shutdown notifies every session and waits until all have disconnected or
// the timeout passes.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.Players())
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// ScoreEntry is one leaderboard line.
type ScoreEntry struct {
	Username string
	Level    int
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// leaderboard keeps each session's best result.
type leaderboard struct {
	entries []ScoreEntry
}

// record keeps the better of the session's previous and new result: higher
// level first, then higher score.
func (b *leaderboard) record(e ScoreEntry) {
	i := slices.IndexFunc(b.entries, func(x ScoreEntry) bool { return x.clientID == e.clientID })
	if i < 0 {
		b.entries = append(b.entries, e)
	} else if better(e, b.entries[i]) {
		b.entries[i] = e
	}
	slices.SortFunc(b.entries, func(x, y ScoreEntry) int {
		switch {
		case better(x, y):
			return -1
		case better(y, x):
			return 1
		default:
			return cmp.Or(strings.Compare(x.Username, y.Username), cmp.Compare(x.clientID, y.clientID))
		}
	})
}

func (b *leaderboard) top(n int) []ScoreEntry {
	return slices.Clone(b.entries[:min(n, len(b.entries))])
}

func better(x, y ScoreEntry) bool {
	if x.Level != y.Level {
		return x.Level > y.Level
	}
	return x.Score > y.Score
}
