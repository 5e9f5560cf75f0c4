package desktop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/rocketarena/internal/render"
	"github.com/tomz197/rocketarena/internal/sim"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

var (
	background = color.RGBA{R: 8, G: 10, B: 16, A: 255}
	hazardTint = color.RGBA{R: 170, G: 170, B: 180, A: 255}
	flameTint  = color.RGBA{R: 255, G: 140, B: 40, A: 255}
	shieldTint = color.RGBA{R: 90, G: 220, B: 255, A: 200}
	effectHot  = color.RGBA{R: 255, G: 220, B: 80, A: 255}
	effectCool = color.RGBA{R: 230, G: 60, B: 50, A: 255}
)

var palette = map[string]color.RGBA{
	"red":     {R: 235, G: 70, B: 70, A: 255},
	"blue":    {R: 80, G: 130, B: 255, A: 255},
	"green":   {R: 90, G: 220, B: 110, A: 255},
	"yellow":  {R: 240, G: 220, B: 80, A: 255},
	"magenta": {R: 220, G: 90, B: 220, A: 255},
	"cyan":    {R: 80, G: 220, B: 230, A: 255},
	"orange":  {R: 255, G: 150, B: 50, A: 255},
	"white":   {R: 240, G: 240, B: 240, A: 255},
}

func tint(name string) color.RGBA {
	if c, ok := palette[strings.ToLower(name)]; ok {
		return c
	}
	return palette["white"]
}

// painter implements sim.Drawable on an ebiten image.
type painter struct {
	screen *ebiten.Image
	verts  []vmath.Vector
	ships  []sim.EntitySnapshot
}

var _ sim.Drawable = (*painter)(nil)

func newPainter() *painter {
	return &painter{}
}

func (p *painter) frame(screen *ebiten.Image, w *sim.World) {
	p.screen = screen
	p.ships = p.ships[:0]
	screen.Fill(background)

	w.Draw(p)

	for _, s := range p.ships {
		hud := fmt.Sprintf("P%d %d  dmg %d  burst %3.0f%%", s.ShipIndex+1, s.Score, s.Damage, s.BurstHeat*100)
		ebitenutil.DebugPrintAt(screen, hud, int(s.ScorePos.X), int(s.ScorePos.Y))
	}
	status := fmt.Sprintf("ROUND %d %s", w.Round(), w.Phase())
	b := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, status, b.Dx()-len(status)*glyphW-8, b.Dy()-glyphH-4)
	if len(p.ships) == 0 {
		hint := "ENTER / SPACE / gamepad A to launch"
		ebitenutil.DebugPrintAt(screen, hint, (b.Dx()-len(hint)*glyphW)/2, b.Dy()/2+40)
	}
}

// DrawEntity draws one entity.
func (p *painter) DrawEntity(e sim.EntitySnapshot) {
	switch e.Kind {
	case sim.KindHazard:
		p.verts = render.HazardOutline(e, p.verts)
		p.polyline(p.verts, 1.5, hazardTint)
	case sim.KindShip:
		p.drawShip(e)
		p.ships = append(p.ships, e)
	case sim.KindProjectile:
		vector.DrawFilledCircle(p.screen, float32(e.Position.X), float32(e.Position.Y), float32(e.Radius), tint(e.Color), true)
	case sim.KindEffect:
		r, late := render.EffectRing(e)
		c := effectHot
		if late {
			c = effectCool
		}
		vector.StrokeCircle(p.screen, float32(e.Position.X), float32(e.Position.Y), float32(r), 1.5, c, true)
	case sim.KindAnnouncement, sim.KindCountdown:
		x := int(e.Position.X) - len(e.Text)*glyphW/2
		ebitenutil.DebugPrintAt(p.screen, e.Text, x, int(e.Position.Y)-glyphH/2)
	}
}

func (p *painter) drawShip(e sim.EntitySnapshot) {
	tri := render.ShipOutline(e)
	p.polyline(tri[:], 2, tint(e.Color))
	if e.Thrusting {
		from, to := render.Flame(e)
		vector.StrokeLine(p.screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 2, flameTint, true)
	}
	if e.ShieldActive {
		vector.StrokeCircle(p.screen, float32(e.Position.X), float32(e.Position.Y), float32(e.Radius+render.ShieldPad), 1, shieldTint, true)
	}
}

// polyline strokes a closed outline.
func (p *painter) polyline(pts []vmath.Vector, width float32, c color.Color) {
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(p.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}
