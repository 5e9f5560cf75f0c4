// Package render draws simulation snapshots onto a terminal canvas.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/rocketarena/internal/draw"
	"github.com/tomz197/rocketarena/internal/sim"
	"github.com/tomz197/rocketarena/internal/vmath"
)

const burstBarW = 10

// label is text queued during the shape pass and written after the canvas.
type label struct {
	pos   vmath.Vector
	text  string
	color string
}

// Terminal implements sim.Drawable on a half-block canvas. Shapes go to the
// canvas; text goes through the chunk writer once the canvas is rendered.
type Terminal struct {
	canvas *draw.Canvas
	out    *draw.ChunkWriter
	labels []label
	hud    []sim.EntitySnapshot
	verts  []vmath.Vector
	viewer int // Ship index highlighted in the HUD, -1 for none
}

// Compile-time check that Terminal is a drawable.
var _ sim.Drawable = (*Terminal)(nil)

// NewTerminal creates a renderer drawing on canvas and writing text to out.
func NewTerminal(canvas *draw.Canvas, out *draw.ChunkWriter) *Terminal {
	return &Terminal{canvas: canvas, out: out, viewer: -1}
}

// SetViewer selects the ship whose HUD line is highlighted.
func (t *Terminal) SetViewer(ship int) {
	t.viewer = ship
}

// Frame draws a whole snapshot: shapes, canvas flush, then labels and HUD.
func (t *Terminal) Frame(snap sim.Snapshot) error {
	t.canvas.Clear()
	t.labels = t.labels[:0]
	t.hud = t.hud[:0]

	snap.Draw(t)

	if err := t.canvas.Render(t.out); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	for _, l := range t.labels {
		t.writeLabel(l)
	}
	t.drawHUD(snap)
	return nil
}

// DrawEntity draws one entity.
func (t *Terminal) DrawEntity(e sim.EntitySnapshot) {
	switch e.Kind {
	case sim.KindHazard:
		t.drawHazard(e)
	case sim.KindShip:
		t.drawShip(e)
		t.hud = append(t.hud, e)
	case sim.KindProjectile:
		t.canvas.DrawCircle(point(e.Position), e.Radius, true, draw.ParseColor(e.Color))
	case sim.KindEffect:
		t.drawEffect(e)
	case sim.KindAnnouncement:
		t.labels = append(t.labels, label{pos: e.Position, text: e.Text, color: draw.ColorBold})
	case sim.KindCountdown:
		t.labels = append(t.labels, label{pos: e.Position, text: e.Text, color: draw.ColorBrightCyan})
	}
}

func (t *Terminal) drawShip(e sim.EntitySnapshot) {
	color := draw.ParseColor(e.Color)
	outline := ShipOutline(e)
	tri := t.canvas.BorrowPoints(3)
	for i, v := range outline {
		tri[i] = point(v)
	}
	t.canvas.DrawPolygon(tri, true, color)

	if e.Thrusting {
		from, to := Flame(e)
		t.canvas.DrawLine(point(from), point(to), draw.Orange)
	}
	if e.ShieldActive {
		t.canvas.DrawCircle(point(e.Position), e.Radius+ShieldPad, false, draw.Cyan)
	}
}

func (t *Terminal) drawHazard(e sim.EntitySnapshot) {
	t.verts = HazardOutline(e, t.verts)
	pts := t.canvas.BorrowPoints(len(t.verts))
	for i, v := range t.verts {
		pts[i] = point(v)
	}
	t.canvas.DrawPolygon(pts, false, draw.Gray)
}

func (t *Terminal) drawEffect(e sim.EntitySnapshot) {
	r, late := EffectRing(e)
	color := draw.Yellow
	if late {
		color = draw.Red
	}
	t.canvas.DrawCircle(point(e.Position), r, false, color)
}

// drawHUD writes each ship's score line at its score position.
func (t *Terminal) drawHUD(snap sim.Snapshot) {
	for _, s := range t.hud {
		bar := int(math.Round(s.BurstHeat * burstBarW))
		text := fmt.Sprintf("P%d %6d  dmg %-5d [%s%s]",
			s.ShipIndex+1, s.Score, s.Damage,
			strings.Repeat("#", bar), strings.Repeat(".", burstBarW-bar))
		color := ""
		if s.ShipIndex == t.viewer {
			color = draw.ColorBrightCyan
		}
		col, row := t.canvas.LogicalToTerminal(s.ScorePos.X, s.ScorePos.Y)
		t.writeAt(col, row, text, color)
	}

	round := fmt.Sprintf("ROUND %-3d %s", snap.Round, snap.Phase)
	t.writeAt(t.canvas.TerminalWidth()-len(round), t.canvas.TerminalHeight(), round, draw.ColorDim)
}

func (t *Terminal) writeLabel(l label) {
	col, row := t.canvas.LogicalToTerminal(l.pos.X, l.pos.Y)
	t.writeAt(col-len(l.text)/2, row, l.text, l.color)
}

// writeAt clips text to the canvas and marks the cells for repaint.
func (t *Terminal) writeAt(col, row int, text, color string) {
	if row < 1 || row > t.canvas.TerminalHeight() {
		return
	}
	if col < 1 {
		text = text[min(1-col, len(text)):]
		col = 1
	}
	if room := t.canvas.TerminalWidth() - col + 1; len(text) > room {
		text = text[:max(room, 0)]
	}
	if text == "" {
		return
	}
	if color != "" {
		t.out.WriteAt(col, row, color+text+draw.ColorReset)
	} else {
		t.out.WriteAt(col, row, text)
	}
	t.canvas.MarkTextDirty(col, row, len(text))
}

func point(v vmath.Vector) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}
