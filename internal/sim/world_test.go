package sim

import (
	"testing"

	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

func count(w *World, kind Kind) int {
	n := 0
	for _, e := range w.live {
		if e.Kind == kind && !e.IsExpired() {
			n++
		}
	}
	return n
}

func find(w *World, kind Kind) []*Entity {
	var out []*Entity
	for _, e := range w.live {
		if e.Kind == kind && !e.IsExpired() {
			out = append(out, e)
		}
	}
	return out
}

// parkHazard keeps a stationary hazard in a corner so the round stays open.
func parkHazard(w *World) *Entity {
	h := w.spawner.Hazard(HazardSmall, vmath.New(w.arena.Width-15, w.arena.Height-15), vmath.Zero)
	w.adopt(h)
	return h
}

func TestProjectileHitsShip(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	idx := w.CreateShip("red")
	ship := w.shipAt(idx)
	ship.Position = vmath.New(100, 100)

	p := w.spawner.Projectile(999, vmath.New(120, 100), vmath.Zero, "blue")
	w.adopt(p)

	r := w.Step(0, nil)
	if r.Collisions != 1 {
		t.Fatalf("collisions = %d, want 1", r.Collisions)
	}
	if ship.Ship.Damage != DamageFromProjectile {
		t.Fatalf("damage = %d, want %d", ship.Ship.Damage, DamageFromProjectile)
	}
	if !p.IsExpired() {
		t.Fatal("projectile survived the hit")
	}
	effects := find(w, KindEffect)
	if len(effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(effects))
	}
	if effects[0].Position != p.Position {
		t.Fatalf("effect at %v, want projectile position %v", effects[0].Position, p.Position)
	}
	// Owner 999 never existed; the award is dropped.
	if ship.Ship.Score != 0 {
		t.Fatalf("score = %d, want 0", ship.Ship.Score)
	}
}

func TestTouchingIsNotOverlap(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	ship := w.shipAt(w.CreateShip("red"))
	ship.Position = vmath.New(100, 100)
	w.adopt(w.spawner.Projectile(999, vmath.New(100+ShipRadius+ProjectileRadius, 100), vmath.Zero, "blue"))

	if r := w.Step(0, nil); r.Collisions != 0 {
		t.Fatalf("collisions = %d for touching circles", r.Collisions)
	}
}

func TestHitCreditsOwner(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	shooter := w.shipAt(w.CreateShip("red"))
	shooter.Position = vmath.New(500, 500)

	h := w.spawner.Hazard(HazardLarge, vmath.New(200, 300), vmath.Zero)
	w.adopt(h)
	w.adopt(w.spawner.Projectile(shooter.ID, vmath.New(200, 300), vmath.Zero, "red"))

	w.Step(0, nil)
	if shooter.Ship.Score != ScoreHit {
		t.Fatalf("score = %d, want %d", shooter.Ship.Score, ScoreHit)
	}
}

func TestStaleOwnerIsNoop(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	idx := w.CreateShip("red")
	owner := w.shipAt(idx).ID
	w.RemoveShip(idx)
	w.Step(0, nil)
	if _, ok := w.Ship(idx); ok {
		t.Fatal("removed ship still reported")
	}

	w.adopt(w.spawner.Hazard(HazardLarge, vmath.New(200, 300), vmath.Zero))
	w.adopt(w.spawner.Projectile(owner, vmath.New(200, 300), vmath.Zero, "red"))
	if r := w.Step(0, nil); r.Collisions != 1 {
		t.Fatalf("collisions = %d, want 1", r.Collisions)
	}
	if w.lookup(owner) != nil {
		t.Fatal("stale owner resolved")
	}
}

func TestFragmentationConservesMass(t *testing.T) {
	tests := []struct {
		size      HazardSize
		wantLive  int
		wantChild HazardSize
	}{
		{HazardLarge, 2, HazardMedium},
		{HazardMedium, 2, HazardSmall},
		{HazardSmall, 0, 0},
	}
	for _, tt := range tests {
		w := NewWorld(testArena, constRand(0.5))
		parked := parkHazard(w)
		h := w.spawner.Hazard(tt.size, vmath.New(300, 300), vmath.Zero)
		w.adopt(h)
		w.adopt(w.spawner.Projectile(999, vmath.New(300, 300), vmath.Zero, "red"))

		w.Step(0, nil)
		if !h.IsExpired() {
			t.Fatalf("size %d: hazard survived the hit", tt.size)
		}
		var children []*Entity
		for _, e := range find(w, KindHazard) {
			if e != parked {
				children = append(children, e)
			}
		}
		if len(children) != tt.wantLive {
			t.Fatalf("size %d: %d fragments, want %d", tt.size, len(children), tt.wantLive)
		}
		for _, c := range children {
			if c.Hazard.Size != tt.wantChild {
				t.Fatalf("size %d: fragment size %d, want %d", tt.size, c.Hazard.Size, tt.wantChild)
			}
		}
		if n := count(w, KindEffect); n != 1 {
			t.Fatalf("size %d: effects = %d, want 1", tt.size, n)
		}
	}
}

func TestSpawnsWaitForNextPass(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	ship := w.shipAt(w.CreateShip("red"))
	ship.Position = vmath.New(300, 300)
	w.adopt(w.spawner.Hazard(HazardLarge, vmath.New(300, 300), vmath.Zero))

	r := w.Step(0, nil)
	if r.Collisions != 1 {
		t.Fatalf("collisions = %d, want 1", r.Collisions)
	}
	// Fragments overlap the ship but only count from the next frame.
	if ship.Ship.Damage != DamageFromHazard {
		t.Fatalf("damage = %d, want %d", ship.Ship.Damage, DamageFromHazard)
	}
	w.Step(0, nil)
	if ship.Ship.Damage != 3*DamageFromHazard {
		t.Fatalf("damage after second frame = %d, want %d", ship.Ship.Damage, 3*DamageFromHazard)
	}
}

func TestExpiredSideSkipsPair(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	w.adopt(w.spawner.Hazard(HazardLarge, vmath.New(300, 300), vmath.Zero))
	w.adopt(w.spawner.Hazard(HazardLarge, vmath.New(305, 300), vmath.Zero))
	w.adopt(w.spawner.Projectile(999, vmath.New(302, 300), vmath.Zero, "red"))

	w.Step(0, nil)
	// One projectile destroys one hazard, not both.
	if n := count(w, KindHazard); n != 1+1+2 {
		t.Fatalf("hazards = %d, want parked + survivor + 2 fragments", n)
	}
}

func TestRoundClearing(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	w.adopt(w.spawner.Hazard(HazardLarge, vmath.New(300, 300), vmath.Zero))

	// Shoot every hazard until none are left; fragments stay put at dt 0.
	for i := 0; i < 10 && count(w, KindHazard) > 0; i++ {
		for _, h := range find(w, KindHazard) {
			w.adopt(w.spawner.Projectile(999, h.Position, vmath.Zero, "red"))
		}
		w.Step(0, nil)
	}
	if n := count(w, KindHazard); n != 0 {
		t.Fatalf("hazards left = %d", n)
	}
	if w.Round() != 1 {
		t.Fatalf("round advanced before purge: %d", w.Round())
	}

	r := w.Step(0, nil)
	if !r.RoundCleared || r.Round != 2 || r.Phase != PhaseCountdown {
		t.Fatalf("report = %+v, want round 2 countdown", r)
	}
	if n := count(w, KindCountdown); n != 1 {
		t.Fatalf("countdowns = %d, want 1", n)
	}

	for i := 0; i < 10; i++ {
		if r := w.Step(0.1, nil); r.RoundCleared {
			t.Fatalf("round cleared again on frame %d", i)
		}
	}
	if n := count(w, KindCountdown); n != 1 || w.Round() != 2 {
		t.Fatalf("countdowns = %d round = %d, want 1 and 2", n, w.Round())
	}

	waved := false
	for i := 0; i < 10 && !waved; i++ {
		waved = w.Step(1, nil).WaveSpawned
	}
	if !waved {
		t.Fatal("countdown never spawned a wave")
	}
	if n := count(w, KindHazard); n != 2*WaveHazardsPerRound {
		t.Fatalf("wave hazards = %d, want %d", n, 2*WaveHazardsPerRound)
	}
	if n := count(w, KindCountdown); n != 0 {
		t.Fatalf("countdowns = %d after the wave", n)
	}
	if w.Phase() != PhasePlaying || w.Round() != 2 {
		t.Fatalf("phase = %v round = %d, want playing round 2", w.Phase(), w.Round())
	}
	if n := count(w, KindAnnouncement); n != 1 {
		t.Fatalf("announcements = %d, want 1", n)
	}
}

func TestStart(t *testing.T) {
	w := NewWorld(testArena, NewRand(3))
	w.Start()
	if n := count(w, KindHazard); n != WaveHazardsPerRound {
		t.Fatalf("round 1 hazards = %d, want %d", n, WaveHazardsPerRound)
	}
	w.Start()
	if n := count(w, KindHazard); n != WaveHazardsPerRound {
		t.Fatalf("second Start added hazards: %d", n)
	}
	if r := w.Step(1.0/60, nil); r.RoundCleared {
		t.Fatal("round 1 cleared with hazards live")
	}
}

func TestInvalidShipIndexIgnored(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	parkHazard(w)
	w.CreateShip("red")
	r := w.Step(0.1, []Control{{Ship: 5, Fire: true}, {Ship: -1, Fire: true}})
	if r.Shots != 0 {
		t.Fatalf("shots = %d from unknown ships", r.Shots)
	}
}

func TestNegativeDtIsZero(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	h := parkHazard(w)
	h.Velocity = vmath.New(10, 10)
	e := w.spawner.Effect(vmath.New(50, 50))
	w.adopt(e)
	before := h.Position

	w.Step(-1, nil)
	if h.Position != before {
		t.Fatalf("hazard moved to %v on negative dt", h.Position)
	}
	if e.Timer.Age != 0 {
		t.Fatalf("effect aged %v on negative dt", e.Timer.Age)
	}
}

func TestPositionsStayWrapped(t *testing.T) {
	arena := physics.Arena{Width: 640, Height: 480}
	w := NewWorld(arena, NewRand(7))
	w.Start()
	a, b := w.CreateShip("red"), w.CreateShip("blue")
	rng := NewRand(11)

	for frame := 0; frame < 1500; frame++ {
		controls := []Control{
			{Ship: a, Steer: rng.Float64()*2 - 1, Throttle: rng.Float64(), Fire: rng.Float64() < 0.5},
			{Ship: b, Steer: rng.Float64()*2 - 1, Throttle: 1, Fire: true, Shield: frame%3 == 0},
		}
		w.Step(1.0/60, controls)
		for _, e := range w.live {
			if !arena.Contains(e.Position) {
				t.Fatalf("frame %d: %v at %v outside arena", frame, e.Kind, e.Position)
			}
		}
	}
}

func TestSnapshot(t *testing.T) {
	w := NewWorld(testArena, constRand(0.5))
	idx := w.CreateShip("red")
	w.Start()
	snap := w.Snapshot(nil)
	if snap.Round != 1 || len(snap.Entities) != w.Len() {
		t.Fatalf("snapshot round %d with %d entities, world has %d", snap.Round, len(snap.Entities), w.Len())
	}
	ship, ok := w.Ship(idx)
	if !ok || ship.Kind != KindShip || ship.Color != "red" {
		t.Fatalf("Ship(%d) = %+v, %v", idx, ship, ok)
	}
	if ship.ScorePos != vmath.New(50, 50) {
		t.Fatalf("score position = %v", ship.ScorePos)
	}

	var drawn []Kind
	w.Draw(drawFunc(func(s EntitySnapshot) { drawn = append(drawn, s.Kind) }))
	if len(drawn) != w.Len() || drawn[0] != KindShip {
		t.Fatalf("drawn = %v", drawn)
	}
}

type drawFunc func(EntitySnapshot)

func (f drawFunc) DrawEntity(s EntitySnapshot) { f(s) }
