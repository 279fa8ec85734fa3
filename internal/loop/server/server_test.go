package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestServer() *Server {
	return NewServer(Options{Logger: log.New(io.Discard)})
}

func TestRegisterAndUnregister(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client ID %d", a.ID)
	}
	if got := s.Players(); got != 2 {
		t.Errorf("Players() = %d; want 2", got)
	}
	s.UnregisterClient(a.ID)
	if got := s.Players(); got != 1 {
		t.Errorf("Players() = %d; want 1", got)
	}
}

func TestNewGameIsPerSession(t *testing.T) {
	s := newTestServer()
	a, b := s.RegisterClient("a"), s.RegisterClient("b")

	ga, err := s.NewGame(a)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	gb, err := s.NewGame(b)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	if ga == gb {
		t.Fatal("sessions share a game")
	}

	ga.ConfirmLevelIntro()
	if gb.Stage() == ga.Stage() {
		t.Error("confirming one session's intro affected the other")
	}
}

func TestLeaderboardKeepsBestPerSession(t *testing.T) {
	s := newTestServer()
	a, b, c := s.RegisterClient("a"), s.RegisterClient("b"), s.RegisterClient("c")

	s.ReportScore(a, 1, 40)
	s.ReportScore(b, 2, 10)
	s.ReportScore(a, 1, 90)
	s.ReportScore(a, 1, 20)
	s.ReportScore(c, 1, 90)

	got := s.TopScores(5)
	want := []struct {
		name         string
		level, score int
	}{
		{"b", 2, 10},
		{"a", 1, 90},
		{"c", 1, 90},
	}
	if len(got) != len(want) {
		t.Fatalf("TopScores() = %+v", got)
	}
	for i, w := range want {
		if got[i].Username != w.name || got[i].Level != w.level || got[i].Score != w.score {
			t.Errorf("entry %d = %+v; want %+v", i, got[i], w)
		}
	}
	if n := len(s.TopScores(2)); n != 2 {
		t.Errorf("TopScores(2) returned %d entries", n)
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := newTestServer()
	h := s.RegisterClient("a")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown() did not return after the last client left")
	}

	late := s.RegisterClient("late")
	select {
	case ev := <-late.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("late client got %v", ev.Type)
		}
	default:
		t.Error("client registered during shutdown was not notified")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := newTestServer()
	s.RegisterClient("stuck")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond || elapsed > 2*time.Second {
		t.Errorf("Shutdown() took %v; want about 300ms", elapsed)
	}
}
