package client

import (
	"math/rand"
	"time"

	"github.com/tomz197/lakeside/internal/draw"
	"github.com/tomz197/lakeside/internal/object"
	"github.com/tomz197/lakeside/internal/sim"
)

// ClientState holds per-session presentation state. The game itself lives in
// sim.Game; this is only what the terminal front end needs on top of it.
type ClientState struct {
	Running       bool
	delta         time.Duration     // Frame delta, clamped
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	shutdown      bool              // Server is shutting down
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	tooSmall      bool              // Terminal below the minimum size

	flash     string        // Short-lived catch/break message
	flashLeft time.Duration // Remaining display time for flash
	frameErr  string        // Set when the last frame failed

	droplets []object.Droplet // Splash effects above the surface
	rng      *rand.Rand       // Effects only; the game has its own source

	// Previous-frame values; a change forces a full clear.
	prevStage    sim.Stage
	wasInactive  bool
	wasShutdown  bool
	wasTooSmall  bool
	prevFrameErr string
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:   true,
		prevStage: sim.StageIntro,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// setFlash shows msg in the HUD for d.
func (s *ClientState) setFlash(msg string, d time.Duration) {
	s.flash = msg
	s.flashLeft = d
}

// tickFlash ages the flash message.
func (s *ClientState) tickFlash(dt time.Duration) {
	if s.flashLeft <= 0 {
		return
	}
	s.flashLeft -= dt
	if s.flashLeft <= 0 {
		s.flash = ""
		s.flashLeft = 0
	}
}

// splash throws up count droplets at (x, y).
func (s *ClientState) splash(x, y float64, count int) {
	s.droplets = append(s.droplets, object.Splash(s.rng, x, y, count, splashSpeed, splashLifetime)...)
}

// tickDroplets advances the splash effects.
func (s *ClientState) tickDroplets(dt time.Duration, surfaceY float64) {
	s.droplets = object.AdvanceDroplets(s.droplets, dt, surfaceY)
}

const (
	splashSpeed    = 5.0
	splashLifetime = 900 * time.Millisecond
)
