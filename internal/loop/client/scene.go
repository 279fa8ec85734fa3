package client

import (
	"math"

	"github.com/tomz197/lakeside/internal/draw"
	"github.com/tomz197/lakeside/internal/sim"
)

// Scene palette (ANSI 256).
const (
	colorSky        draw.Color = 153
	colorSun        draw.Color = 228
	colorShallow    draw.Color = 31
	colorDeep       draw.Color = 24
	colorSand       draw.Color = 180
	colorSandDark   draw.Color = 137
	colorGrass      draw.Color = 34
	colorGrassDark  draw.Color = 28
	colorBubble     draw.Color = 195
	colorHull       draw.Color = 94
	colorCabin      draw.Color = 230
	colorAngler     draw.Color = 166
	colorLine       draw.Color = 255
	colorHook       draw.Color = 226
	colorFish       draw.Color = 220
	colorBigFish    draw.Color = 208
	colorProtected  draw.Color = 201
	colorHookedFish draw.Color = 231
	colorSpray      draw.Color = 117
	colorSprayFade  draw.Color = 110
)

// grassStalks are the x positions of the sea grass, as fractions of the
// field width.
var grassStalks = []float64{0.04, 0.11, 0.19, 0.3, 0.37, 0.52, 0.61, 0.7, 0.83, 0.9, 0.96}

// drawScene paints the lake and everything in it onto the canvas.
func (c *Client) drawScene(s sim.Snapshot) {
	cv := c.canvas
	f := s.Field
	mid := (f.SurfaceY + f.FloorY) / 2

	cv.FillRect(0, 0, f.Width, f.SurfaceY, colorSky)
	cv.FillEllipse(f.Width*0.85, f.SurfaceY*0.3, 40, 40, colorSun)
	cv.FillRect(0, f.SurfaceY, f.Width, mid, colorShallow)
	cv.FillRect(0, mid, f.Width, f.FloorY, colorDeep)
	cv.FillRect(0, f.FloorY, f.Width, f.Height, colorSand)
	cv.FillRect(0, f.FloorY+(f.Height-f.FloorY)*0.6, f.Width, f.Height, colorSandDark)

	sway := s.Elapsed.Seconds()
	for i, frac := range grassStalks {
		x := f.Width * frac
		height := 50 + float64(i%3)*20
		color := colorGrass
		if i%2 == 1 {
			color = colorGrassDark
		}
		bend := math.Sin(sway*1.5+float64(i)) * 8
		cv.DrawLine(draw.Point{X: x, Y: f.FloorY + 5}, draw.Point{X: x + bend/2, Y: f.FloorY - height/2}, color)
		cv.DrawLine(draw.Point{X: x + bend/2, Y: f.FloorY - height/2}, draw.Point{X: x + bend, Y: f.FloorY - height}, color)
	}

	for _, b := range s.Bubbles {
		cv.FillEllipse(b.X, b.Y, b.Radius, b.Radius, colorBubble)
	}
	for _, fish := range s.Fish {
		drawFish(cv, fish)
	}
	drawBoat(cv, s)

	for _, d := range c.state.droplets {
		color := colorSpray
		if d.Fading() {
			color = colorSprayFade
		}
		cv.FillEllipse(d.X, d.Y, 3, 3, color)
	}
}

// drawFish draws a body ellipse with a tail on the trailing side.
func drawFish(cv *draw.Canvas, f sim.FishView) {
	color := colorFish
	switch {
	case f.Hooked:
		color = colorHookedFish
	case f.Protected:
		color = colorProtected
	case f.Value >= 20:
		color = colorBigFish
	}

	dir := 1.0
	if f.Speed < 0 {
		dir = -1
	}
	bodyX := f.Size * 1.2
	cv.FillEllipse(f.X, f.Y, bodyX, f.Size*0.6, color)

	tailBase := f.X - dir*bodyX
	tailEnd := tailBase - dir*f.Size*0.8
	cv.FillPolygon([]draw.Point{
		{X: tailBase, Y: f.Y},
		{X: tailEnd, Y: f.Y - f.Size*0.6},
		{X: tailEnd, Y: f.Y + f.Size*0.6},
	}, color)
}

// drawBoat draws the boat on the surface, the rod and the line down to the hook.
func drawBoat(cv *draw.Canvas, s sim.Snapshot) {
	x, surface := s.Rig.BoatX, s.Field.SurfaceY

	cv.FillPolygon([]draw.Point{
		{X: x - 50, Y: surface - 18},
		{X: x + 50, Y: surface - 18},
		{X: x + 36, Y: surface + 4},
		{X: x - 36, Y: surface + 4},
	}, colorHull)
	cv.FillRect(x-30, surface-44, x-6, surface-18, colorCabin)
	cv.FillEllipse(x+14, surface-40, 8, 8, colorAngler)
	cv.FillRect(x+10, surface-32, x+18, surface-18, colorAngler)

	tipX, tipY := x+4, surface-70
	cv.DrawLine(draw.Point{X: x + 18, Y: surface - 26}, draw.Point{X: tipX, Y: tipY}, colorHull)
	cv.DrawLine(draw.Point{X: tipX, Y: tipY}, draw.Point{X: s.Rig.HookX, Y: s.Rig.HookY}, colorLine)
	cv.FillEllipse(s.Rig.HookX, s.Rig.HookY, 3, 3, colorHook)
}
