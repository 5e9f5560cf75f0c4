// Package desktop is the windowed front end: one shared keyboard plus any
// number of gamepads flying ships in a single local world.
package desktop

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/rocketarena/internal/desktop/controls"
	lconfig "github.com/tomz197/rocketarena/internal/loop/config"
	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/sim"
)

// Keyboard seats.
const (
	seatArrows = "keys-arrows"
	seatWASD   = "keys-wasd"
)

// Game implements ebiten.Game around a sim.World.
type Game struct {
	world    *sim.World
	roster   *controls.Roster
	pads     map[string]controls.Pad
	sources  []string // Connected sources in device order
	controls []sim.Control
	painter  *painter
	log      *log.Logger
}

// NewGame starts a world in arena. The first fire press on each keyboard
// seat or gamepad spawns that player's ship.
func NewGame(arena physics.Arena, seed uint64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	w := sim.NewWorld(arena, sim.NewRand(seed))
	w.Start()
	return &Game{
		world:   w,
		roster:  controls.NewRoster(),
		pads:    make(map[string]controls.Pad),
		painter: newPainter(),
		log:     logger,
	}
}

// Update reads devices and advances the world by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.readDevices()

	g.controls = g.controls[:0]
	for _, source := range g.sources {
		pad := g.pads[source]
		ship, seated := g.roster.Ship(source)
		if !seated {
			if !pad.Fire {
				continue
			}
			ship = g.roster.Join(source, g.spawn)
			g.log.Info("player joined", "source", source, "ship", ship)
		}
		g.controls = append(g.controls, pad.Control(ship))
	}

	// Seats whose device went away give their ship up.
	for _, source := range append([]string(nil), g.roster.Sources()...) {
		if _, ok := g.pads[source]; !ok {
			g.roster.Leave(source, g.world.RemoveShip)
			g.log.Info("player left", "source", source)
		}
	}

	dt := 1.0 / float64(lconfig.ServerTickRate)
	if tps := ebiten.TPS(); tps > 0 {
		dt = 1 / float64(tps)
	}
	report := g.world.Step(dt, g.controls)
	if report.RoundCleared {
		g.log.Info("round cleared", "round", report.Round)
	}
	if report.WaveSpawned {
		g.log.Info("wave spawned", "round", report.Round)
	}
	return nil
}

func (g *Game) spawn() int {
	return g.world.CreateShip(lconfig.ShipColor(g.world.ShipCount()))
}

// readDevices refreshes g.pads from the keyboard and connected gamepads.
func (g *Game) readDevices() {
	clear(g.pads)
	g.sources = append(g.sources[:0], seatArrows, seatWASD)

	g.pads[seatArrows] = controls.Pad{
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Thrust: ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Shield: ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Fire:   ebiten.IsKeyPressed(ebiten.KeyEnter),
	}
	g.pads[seatWASD] = controls.Pad{
		Left:   ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD),
		Thrust: ebiten.IsKeyPressed(ebiten.KeyW),
		Shield: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Fire:   ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		source := fmt.Sprintf("pad-%d", id)
		g.sources = append(g.sources, source)
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			g.pads[source] = controls.Pad{
				Stick: ebiten.GamepadAxisValue(id, 0),
				Fire:  ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0),
			}
			continue
		}
		g.pads[source] = controls.Pad{
			Left:    ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft),
			Right:   ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight),
			Thrust:  ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop),
			Shield:  ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft),
			Fire:    ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom),
			Stick:   ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			Trigger: ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight),
		}
	}
}

// Draw paints the world and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.frame(screen, g.world)
}

// Layout keeps the logical screen at arena size; ebiten scales the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	a := g.world.Arena()
	return int(a.Width), int(a.Height)
}
