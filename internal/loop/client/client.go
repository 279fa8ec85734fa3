package client

import (
	"bufio"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/lakeside/internal/draw"
	"github.com/tomz197/lakeside/internal/input"
	"github.com/tomz197/lakeside/internal/loop/config"
	"github.com/tomz197/lakeside/internal/loop/server"
	"github.com/tomz197/lakeside/internal/sim"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       *server.Server
	handle       *server.ClientHandle
	game         *sim.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	styles       styles
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Renderer     *lipgloss.Renderer // Per-session renderer; defaults to one on w
	Logger       *log.Logger
}

// NewClient creates a new client with its own game, registered with the
// given server.
func NewClient(srv *server.Server, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	handle := srv.RegisterClient(opts.Username)
	game, err := srv.NewGame(handle)
	if err != nil {
		srv.UnregisterClient(handle.ID)
		return nil, fmt.Errorf("new game: %w", err)
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	field := game.Field()
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       srv,
		handle:       handle,
		game:         game,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		styles:       newStyles(renderer),
		logger:       logger,
	}, nil
}

// Run starts the client loop. Blocks until the client quits, the input
// ends or the server shutdown countdown runs out.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		_, _ = io.WriteString(c.writer, "\033[0m")
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
		c.server.UnregisterClient(c.handle.ID)
	}()

	lastTime := time.Now()
	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = clampDelta(frameStart.Sub(lastTime))
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if err := c.frame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// frame advances the game and draws it. A panic anywhere in the frame is
// logged and replaced by a diagnostic frame; the next frame starts fresh.
func (c *Client) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.state.frameErr = fmt.Sprint(r)
			c.logger.Error("frame panicked", "user", c.handle.Username, "panic", r, "stack", string(debug.Stack()))
			err = c.drawDiagnostic()
		}
	}()

	c.state.frameErr = ""
	c.step()
	return c.drawFrame()
}

// step advances the simulation by one frame.
func (c *Client) step() {
	c.state.tickFlash(c.state.delta)
	if c.state.shutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}
	if c.state.isInactive || c.state.tooSmall {
		return
	}

	if err := c.game.Tick(c.state.delta); err != nil {
		c.state.frameErr = err.Error()
		c.logger.Error("tick failed", "user", c.handle.Username, "err", err)
		return
	}
	c.state.tickDroplets(c.state.delta, c.game.Field().SurfaceY)
	c.handleGameEvents(c.game.DrainEvents())
}

// handleGameEvents turns game notifications into HUD messages and
// leaderboard entries.
func (c *Client) handleGameEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Type {
		case sim.EventLanded:
			c.state.setFlash(fmt.Sprintf("Landed %s  %+d", ev.Species, ev.Delta), config.FlashDuration)
			c.state.splash(c.game.HookX(), c.game.Field().SurfaceY, 14)
		case sim.EventLineBroke:
			c.state.setFlash(fmt.Sprintf("The line snapped!  %+d", ev.Delta), config.FlashDuration)
			c.state.splash(c.game.HookX(), c.game.Field().SurfaceY, 6)
		case sim.EventHooked:
			c.state.setFlash(fmt.Sprintf("%s on the hook!", ev.Species), config.FlashDuration)
		case sim.EventStageChanged:
			if ev.Stage.Over() {
				s := c.game.Snapshot()
				c.server.ReportScore(c.handle, s.Level, ev.Score)
				c.logger.Info("level finished", "user", c.handle.Username, "level", s.Level, "stage", ev.Stage, "score", ev.Score)
			}
		}
	}
}

// processInput reads input events and applies them.
func (c *Client) processInput() {
	events := input.ReadEvents(c.inputStream)
	if c.inputStream.Closed() {
		c.state.Running = false
	}

	if len(events) > 0 {
		c.lastInput = time.Now()
		if c.state.isInactive {
			// The key that wakes the session is not applied to the game.
			c.state.isInactive = false
			return
		}
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, ev := range events {
		if ev.Kind == input.KindKey && ev.Key == input.KeyQuit {
			c.state.Running = false
			return
		}
		if c.state.shutdown || c.state.tooSmall {
			continue
		}
		dispatch(c.game, ev, c.canvas.TerminalToLogical)
	}
}

// dispatch maps one input event to a game intent for the current stage.
func dispatch(g *sim.Game, ev input.Event, toLogical func(col, row int) (x, y float64)) {
	confirm := ev.Kind == input.KindMouseClick ||
		(ev.Kind == input.KindKey && (ev.Key == input.KeySpace || ev.Key == input.KeyEnter))
	restart := ev.Kind == input.KindKey && ev.Key == input.KeyRestart

	switch g.Stage() {
	case sim.StageIntro:
		if restart {
			g.ConfirmRestart()
		} else if confirm {
			g.ConfirmLevelIntro()
		}
	case sim.StagePlaying:
		switch {
		case restart:
			g.ConfirmRestart()
		case ev.Kind == input.KindMouseMove:
			x, _ := toLogical(ev.Col, ev.Row)
			g.SetBoatX(x)
		case ev.Kind == input.KindMouseClick:
			x, _ := toLogical(ev.Col, ev.Row)
			g.SetBoatX(x)
			g.ToggleCast()
		case ev.Key == input.KeySpace:
			g.ToggleCast()
		case ev.Key == input.KeyLeft:
			g.NudgeBoat(-config.BoatNudge)
		case ev.Key == input.KeyRight:
			g.NudgeBoat(config.BoatNudge)
		}
	case sim.StageLevelComplete:
		if restart {
			g.ConfirmRestart()
		} else if confirm {
			g.ConfirmAdvanceLevel()
		}
	case sim.StageFinalWin, sim.StageLost:
		if restart || confirm {
			g.ConfirmRestart()
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event := <-c.handle.EventsCh:
			if event.Type == server.EventServerShutdown && !c.state.shutdown {
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	c.state.tooSmall = termWidth < config.MinTermWidth || termHeight < config.MinTermHeight
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// clampDelta bounds the frame delta so a stalled session does not jump.
func clampDelta(d time.Duration) time.Duration {
	return max(0, min(d, config.MaxFrameDelta))
}
