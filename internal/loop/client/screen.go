package client

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/lakeside/internal/draw"
	"github.com/tomz197/lakeside/internal/loop/config"
	"github.com/tomz197/lakeside/internal/sim"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	s := c.game.Snapshot()

	// On stage, inactivity or shutdown transitions do a full terminal clear so
	// panels from the previous state don't persist on screen.
	st := c.state
	if s.Stage != st.prevStage || st.isInactive != st.wasInactive || st.shutdown != st.wasShutdown ||
		st.tooSmall != st.wasTooSmall || st.frameErr != st.prevFrameErr {
		c.chunkWriter.WriteString("\033[0m\033[H\033[2J")
		c.canvas.ForceRedraw()
		st.prevStage = s.Stage
		st.wasInactive = st.isInactive
		st.wasShutdown = st.shutdown
		st.wasTooSmall = st.tooSmall
		st.prevFrameErr = st.frameErr
	}

	if st.tooSmall {
		c.drawTooSmall()
		return c.chunkWriter.Flush()
	}

	c.canvas.Clear()
	c.drawScene(s)
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI(s)

	return c.chunkWriter.Flush()
}

// drawDiagnostic replaces a failed frame with an error panel.
func (c *Client) drawDiagnostic() error {
	c.chunkWriter.WriteString("\033[0m\033[H\033[2J")
	c.canvas.ForceRedraw()
	c.state.prevFrameErr = c.state.frameErr

	body := strings.Join([]string{
		c.styles.bad.Render("Something went wrong drawing this frame"),
		"",
		truncate(c.state.frameErr, max(c.canvas.TerminalWidth()-10, 10)),
		"",
		c.styles.dim.Render("The game carries on with the next frame. Q quits."),
	}, "\n")
	c.panel(c.styles.alert.Render(body))
	return c.chunkWriter.Flush()
}

// text writes s at the 1-based canvas position and marks the cells so the
// canvas repaints them next frame.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// panel writes a rendered block centered on the canvas.
func (c *Client) panel(block string) {
	width, height := lipgloss.Width(block), lipgloss.Height(block)
	col := max((c.canvas.TerminalWidth()-width)/2+1, 1)
	row := max((c.canvas.TerminalHeight()-height)/2+1, 1)
	for i, line := range strings.Split(block, "\n") {
		c.text(col, row+i, line)
	}
}

// drawUI draws the HUD and whichever panel the current state needs.
func (c *Client) drawUI(s sim.Snapshot) {
	if c.state.shutdown {
		c.drawShutdownScreen()
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen()
		return
	}
	if c.state.frameErr != "" {
		c.text(2, c.canvas.TerminalHeight(), c.styles.bad.Render(truncate("error: "+c.state.frameErr, c.canvas.TerminalWidth()-2)))
	}

	c.drawHUD(s)
	switch s.Stage {
	case sim.StageIntro:
		c.drawIntroPanel(s)
	case sim.StageLevelComplete:
		c.drawLevelCompletePanel(s)
	case sim.StageFinalWin:
		c.drawFinalWinPanel(s)
	case sim.StageLost:
		c.drawLostPanel(s)
	}
}

// drawHUD draws score, casts, catches and line tension.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(s sim.Snapshot) {
	width, height := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	hud := c.styles.hud

	status := fmt.Sprintf(" Level %d/%d  Score %4d/%-4d  Casts %2d/%-2d ",
		s.Level, s.LevelCount, s.Score, s.TargetScore, s.Stamina, s.StaminaMax)
	c.text(2, 1, hud.Render(status))

	online := fmt.Sprintf(" %d online ", c.server.Players())
	c.text(max((width-draw.TextWidth(online))/2, 1), 1, c.styles.dim.Render(online))

	if catches := catchLine(s); catches != "" {
		catches = " " + catches + " "
		c.text(max(width-draw.TextWidth(catches), 1), 1, hud.Render(catches))
	}

	c.text(2, height, c.tensionBar(s.Rig, 20)+c.styles.dim.Render(fmt.Sprintf("  %-8s", s.Rig.Phase)))

	hint := "SPACE/click cast-reel  ←/→/A/D/mouse move  R restart  Q quit"
	if draw.TextWidth(hint)+40 < width {
		c.text(width-draw.TextWidth(hint), height, c.styles.dim.Render(hint))
	}

	if c.state.flash != "" {
		msg := c.styles.flash.Render(c.state.flash)
		c.text(max((width-lipgloss.Width(msg))/2, 1), 3, msg)
	}
}

// catchLine lists landed fish per species in table order.
func catchLine(s sim.Snapshot) string {
	var parts []string
	seen := make(map[string]bool)
	for _, sp := range s.LevelSpecies {
		seen[sp.Name] = true
		if n := s.Caught[sp.Name]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", sp.Name, n))
		}
	}
	var extra []string
	for name, n := range s.Caught {
		if !seen[name] && n > 0 {
			extra = append(extra, fmt.Sprintf("%s x%d", name, n))
		}
	}
	slices.Sort(extra)
	return strings.Join(append(parts, extra...), "  ")
}

// tensionBar renders the line tension as a colored gauge.
func (c *Client) tensionBar(rig sim.RigView, cells int) string {
	frac := 0.0
	if rig.MaxTension > 0 {
		frac = math.Max(0, math.Min(1, rig.Tension/rig.MaxTension))
	}
	filled := int(math.Round(frac * float64(cells)))

	full := c.styles.barFull
	switch {
	case frac >= 0.8:
		full = c.styles.bad
	case frac >= 0.5:
		full = c.styles.warn
	}
	return "Tension " + full.Render(strings.Repeat("█", filled)) +
		c.styles.barEmpty.Render(strings.Repeat("░", cells-filled)) +
		fmt.Sprintf(" %3.0f%%", frac*100)
}

func (c *Client) blinkOn() bool {
	return time.Now().UnixMilli()/config.BlinkPeriod.Milliseconds()%2 == 0
}

func (c *Client) prompt(msg string) string {
	if !c.blinkOn() {
		return strings.Repeat(" ", draw.TextWidth(msg))
	}
	return c.styles.prompt.Render(msg)
}

// drawIntroPanel shows the level briefing with the species on offer.
func (c *Client) drawIntroPanel(s sim.Snapshot) {
	lines := []string{
		c.styles.title.Render("~ L A K E S I D E ~"),
		"",
		s.Message,
		"",
	}
	for _, sp := range s.LevelSpecies {
		style := c.styles.good
		note := ""
		if sp.Value < 0 {
			style = c.styles.bad
		}
		if sp.Protected {
			note = c.styles.dim.Render("  protected, let it go")
		}
		name := sp.Name + strings.Repeat(" ", max(12-draw.TextWidth(sp.Name), 1))
		lines = append(lines, name+style.Render(fmt.Sprintf("%+4d", sp.Value))+note)
	}
	lines = append(lines,
		"",
		c.styles.dim.Render("A snapped line costs points. Reel in slack to ease the tension."),
		"",
		c.prompt(">>  Press SPACE to start  <<"),
	)
	c.panel(c.styles.panel.Render(strings.Join(lines, "\n")))
}

// drawLevelCompletePanel congratulates and offers the next level.
func (c *Client) drawLevelCompletePanel(s sim.Snapshot) {
	body := strings.Join([]string{
		c.styles.good.Render(s.Message),
		"",
		fmt.Sprintf("Score %d / %d", s.Score, s.TargetScore),
		catchLine(s),
		"",
		c.prompt(fmt.Sprintf(">>  Press SPACE for level %d  <<", s.Level+1)),
	}, "\n")
	c.panel(c.styles.panel.Render(body))
}

// drawFinalWinPanel shows the final result and the leaderboard.
func (c *Client) drawFinalWinPanel(s sim.Snapshot) {
	lines := []string{
		c.styles.title.Render("CHAMPION ANGLER"),
		"",
		c.styles.good.Render(s.Message),
		fmt.Sprintf("Final score %d", s.Score),
		"",
	}
	lines = append(lines, c.leaderboardLines()...)
	lines = append(lines, "", c.prompt(">>  Press SPACE to play again  <<"))
	c.panel(c.styles.panel.Render(strings.Join(lines, "\n")))
}

// drawLostPanel shows the loss and the automatic restart countdown.
func (c *Client) drawLostPanel(s sim.Snapshot) {
	lines := []string{
		c.styles.bad.Render(s.Message),
		"",
		fmt.Sprintf("Score %d / %d", s.Score, s.TargetScore),
		"",
	}
	lines = append(lines, c.leaderboardLines()...)
	lines = append(lines,
		"",
		c.styles.dim.Render(fmt.Sprintf("Back to level 1 in %.1fs  (SPACE or R now)", s.ResetIn.Seconds())),
	)
	c.panel(c.styles.panel.Render(strings.Join(lines, "\n")))
}

// leaderboardLines renders the shared best results of this server.
func (c *Client) leaderboardLines() []string {
	entries := c.server.TopScores(config.TopScores)
	if len(entries) == 0 {
		return nil
	}
	lines := []string{c.styles.title.Render("Best anglers")}
	for i, e := range entries {
		name := truncate(e.Username, 16)
		if name == "" {
			name = "anonymous"
		}
		lines = append(lines, fmt.Sprintf("%d. %-16s L%d %5d", i+1, name, e.Level, e.Score))
	}
	return lines
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	body := strings.Join([]string{
		c.styles.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)),
		"",
		c.styles.dim.Render("Press any key to continue"),
	}, "\n")
	c.panel(c.styles.panel.Render(body))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	body := strings.Join([]string{
		c.styles.bad.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1),
		c.styles.dim.Render("Press Q to disconnect now"),
	}, "\n")
	c.panel(c.styles.alert.Render(body))
}

// drawTooSmall asks for a bigger terminal.
func (c *Client) drawTooSmall() {
	msg := fmt.Sprintf("Please enlarge the terminal to at least %dx%d", config.MinTermWidth, config.MinTermHeight)
	c.chunkWriter.WriteAbs(1, 1, truncate(msg, max(c.canvas.TerminalWidth(), 10)))
}

// truncate cuts s to at most width display columns.
func truncate(s string, width int) string {
	if draw.TextWidth(s) <= width {
		return s
	}
	out := []rune{}
	w := 0
	for _, r := range s {
		rw := draw.TextWidth(string(r))
		if w+rw > width-1 {
			break
		}
		out = append(out, r)
		w += rw
	}
	return string(out) + "…"
}
