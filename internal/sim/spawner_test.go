package sim

import (
	"math"
	"testing"

	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// constRand always returns the same draw.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand cycles through a fixed list of draws.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b vmath.Vector) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestFragmentPairSizes(t *testing.T) {
	sp := NewSpawner(constRand(0.5))
	pos := vmath.New(100, 100)

	tests := []struct {
		parent HazardSize
		want   HazardSize
		count  int
	}{
		{HazardLarge, HazardMedium, 2},
		{HazardMedium, HazardSmall, 2},
		{HazardSmall, 0, 0},
	}
	for _, tt := range tests {
		frags := sp.FragmentPair(tt.parent, pos, vmath.New(10, 0))
		if len(frags) != tt.count {
			t.Fatalf("FragmentPair(%d) returned %d fragments, want %d", tt.parent, len(frags), tt.count)
		}
		for _, f := range frags {
			if f.Kind != KindHazard || f.Hazard.Size != tt.want {
				t.Fatalf("fragment of %d has kind %v size %d, want hazard size %d", tt.parent, f.Kind, f.Hazard.Size, tt.want)
			}
			if f.Position != pos {
				t.Fatalf("fragment position = %v, want parent position %v", f.Position, pos)
			}
		}
	}
}

func TestFragmentPairImpulse(t *testing.T) {
	// With every draw at 0.5 the rotation is 0 and the magnitude is the
	// midpoint of the impulse range.
	sp := NewSpawner(constRand(0.5))
	mid := (FragmentImpulseMin + FragmentImpulseMax) / 2

	frags := sp.FragmentPair(HazardLarge, vmath.Zero, vmath.New(10, 0))
	want := vmath.New(10, mid)
	if !nearVec(frags[0].Velocity, want) {
		t.Fatalf("large fragment velocity = %v, want %v", frags[0].Velocity, want)
	}

	frags = sp.FragmentPair(HazardMedium, vmath.Zero, vmath.New(10, 0))
	want = vmath.New(10, mid*SmallFragmentBoost)
	if !nearVec(frags[0].Velocity, want) {
		t.Fatalf("medium fragment velocity = %v, want %v", frags[0].Velocity, want)
	}
}

func TestFragmentPairStationaryParent(t *testing.T) {
	sp := NewSpawner(constRand(0.5))
	frags := sp.FragmentPair(HazardLarge, vmath.Zero, vmath.Zero)
	mid := (FragmentImpulseMin + FragmentImpulseMax) / 2
	// Fallback heading +X, perpendicular +Y.
	if !nearVec(frags[0].Velocity, vmath.New(0, mid)) {
		t.Fatalf("stationary fragment velocity = %v, want (0,%v)", frags[0].Velocity, mid)
	}
}

func TestFragmentPairSpread(t *testing.T) {
	parentVel := vmath.New(3, -4)
	perp := parentVel.Normalize().Perp()
	for _, draw := range []float64{0, 0.25, 0.75, 0.999999} {
		sp := NewSpawner(constRand(draw))
		for _, f := range sp.FragmentPair(HazardLarge, vmath.Zero, parentVel) {
			impulse := f.Velocity.Sub(parentVel)
			mag := impulse.Length()
			if mag < FragmentImpulseMin-1e-9 || mag >= FragmentImpulseMax {
				t.Fatalf("draw %v: impulse magnitude %v outside [%v,%v)", draw, mag, FragmentImpulseMin, FragmentImpulseMax)
			}
			cos := impulse.Normalize().Dot(perp)
			if cos < math.Cos(FragmentSpread)-1e-9 {
				t.Fatalf("draw %v: impulse deviates %v rad from perpendicular", draw, math.Acos(cos))
			}
		}
	}
}

func TestWave(t *testing.T) {
	arena := physics.Arena{Width: 800, Height: 600}
	sp := NewSpawner(NewRand(42))
	wave := sp.Wave(20, arena, 150)
	if len(wave) != 20 {
		t.Fatalf("wave size = %d, want 20", len(wave))
	}
	for _, h := range wave {
		if h.Kind != KindHazard || h.Hazard.Size != HazardLarge {
			t.Fatalf("wave entity %v size %d, want large hazard", h.Kind, h.Hazard.Size)
		}
		if !arena.Contains(h.Position) {
			t.Fatalf("wave hazard at %v outside arena", h.Position)
		}
		if h.Velocity.X < 0 || h.Velocity.X >= 150 || h.Velocity.Y < 0 || h.Velocity.Y >= 150 {
			t.Fatalf("wave velocity %v outside [0,150) per axis", h.Velocity)
		}
		if h.Accel != vmath.Zero {
			t.Fatalf("wave acceleration = %v, want zero", h.Accel)
		}
	}
	if got := sp.Wave(0, arena, 10); len(got) != 0 {
		t.Fatalf("Wave(0) returned %d hazards", len(got))
	}
}

func TestFixedRadii(t *testing.T) {
	sp := NewSpawner(constRand(0.5))
	tests := []struct {
		e    *Entity
		want float64
		hit  bool
	}{
		{sp.Hazard(HazardSmall, vmath.Zero, vmath.Zero), 10, true},
		{sp.Hazard(HazardMedium, vmath.Zero, vmath.Zero), 20, true},
		{sp.Hazard(HazardLarge, vmath.Zero, vmath.Zero), 30, true},
		{sp.Ship(vmath.Zero, vmath.Zero, "red"), 20, true},
		{sp.Projectile(1, vmath.Zero, vmath.Zero, "red"), 3, true},
		{sp.Effect(vmath.Zero), 10, false},
		{sp.Announcement(vmath.Zero, "hi"), 10, false},
		{sp.Countdown(vmath.Zero), 10, false},
	}
	for _, tt := range tests {
		if got := tt.e.Radius(); got != tt.want {
			t.Errorf("%v radius = %v, want %v", tt.e.Kind, got, tt.want)
		}
		if got := tt.e.Collidable(); got != tt.hit {
			t.Errorf("%v collidable = %v, want %v", tt.e.Kind, got, tt.hit)
		}
	}
}

func TestWaveDrawOrder(t *testing.T) {
	arena := physics.Arena{Width: 800, Height: 600}
	sp := NewSpawner(&seqRand{vals: []float64{0.1, 0.2, 0.3, 0.4, 0.5}})
	h := sp.Wave(1, arena, 100)[0]
	if !nearVec(h.Position, vmath.New(80, 120)) {
		t.Fatalf("position = %v, want (80,120)", h.Position)
	}
	if !nearVec(h.Velocity, vmath.New(30, 40)) {
		t.Fatalf("velocity = %v, want (30,40)", h.Velocity)
	}
	if !near(h.Hazard.Spin, 0) {
		t.Fatalf("spin = %v, want 0", h.Hazard.Spin)
	}
}
