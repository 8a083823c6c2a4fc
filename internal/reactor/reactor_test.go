package reactor

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewReactorDefaults(t *testing.T) {
	r := NewSeeded(1)

	if r.Temperature() != BaseTemperature {
		t.Errorf("temperature = %v, want %v", r.Temperature(), BaseTemperature)
	}
	if r.Coolant() != initialCoolant {
		t.Errorf("coolant = %v", r.Coolant())
	}
	if r.RodPosition() != 0 {
		t.Errorf("rod position = %v", r.RodPosition())
	}
	if r.ParticleCount() != 0 || len(r.History()) != 0 {
		t.Error("new reactor should have no particles and no history")
	}
	if r.Exploding() {
		t.Error("new reactor should not be exploding")
	}
	if r.Status().Level != LevelIdle {
		t.Errorf("status = %q, want idle", r.Status())
	}
}

func TestReactorBounds(t *testing.T) {
	r := NewSeeded(42)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 3000; i++ {
		load := rng.Float64()*140 - 20
		r.Update(load)

		for name, v := range map[string]float64{
			"radiation":   r.Radiation(),
			"coolant":     r.Coolant(),
			"pressure":    r.Pressure(),
			"stability":   r.Stability(),
			"instability": r.Instability(),
		} {
			if v < 0 || v > 100 {
				t.Fatalf("tick %d: %s = %v out of [0, 100]", i, name, v)
			}
		}
		if r.Temperature() < BaseTemperature || r.Temperature() > MaxTemperature {
			t.Fatalf("tick %d: temperature = %v", i, r.Temperature())
		}
		if r.ParticleCount() > MaxParticles {
			t.Fatalf("tick %d: %d particles", i, r.ParticleCount())
		}
		if len(r.History()) > HistorySize {
			t.Fatalf("tick %d: history length %d", i, len(r.History()))
		}
		if r.ExplosionFrame() > MaxExplosionFrame {
			t.Fatalf("tick %d: explosion frame %d", i, r.ExplosionFrame())
		}
	}
}

func TestReactorClampsLoad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-50, 0},
		{150, 100},
		{math.NaN(), 0},
		{42, 42},
	}
	for _, tt := range tests {
		r := NewSeeded(1)
		r.Update(tt.in)
		if r.Load() != tt.want {
			t.Errorf("Update(%v): load = %v, want %v", tt.in, r.Load(), tt.want)
		}
	}
}

func TestRodEasesTowardLoad(t *testing.T) {
	r := NewSeeded(1)
	r.Update(60)

	if want := 0.6 * RodEase; !approx(r.RodPosition(), want) {
		t.Errorf("rod after one tick = %v, want %v", r.RodPosition(), want)
	}

	for i := 0; i < 500; i++ {
		r.Update(60)
	}
	if math.Abs(r.RodPosition()-0.6) > 0.01 {
		t.Errorf("rod should settle near 0.6, got %v", r.RodPosition())
	}
	target := BaseTemperature + 0.6*(MaxTemperature-BaseTemperature)
	if r.Temperature() < target-10 {
		t.Errorf("temperature should reach about %v, got %v", target, r.Temperature())
	}
	if r.Exploding() {
		t.Error("moderate load should never reach meltdown stability")
	}
}

func TestHistorySampling(t *testing.T) {
	r := NewSeeded(1)

	for i := 0; i < HistoryCadence-1; i++ {
		r.Update(10)
	}
	if n := len(r.History()); n != 0 {
		t.Fatalf("history sampled too early: %d samples", n)
	}
	r.Update(10)
	if n := len(r.History()); n != 1 {
		t.Fatalf("expected one sample, got %d", n)
	}

	for i := 0; i < HistoryCadence*HistorySize*2; i++ {
		r.Update(10)
	}
	if n := len(r.History()); n != HistorySize {
		t.Fatalf("history length = %d, want %d", n, HistorySize)
	}
}

func TestHistoryIsACopy(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < HistoryCadence; i++ {
		r.Update(50)
	}
	h := r.History()
	h[0] = -1
	if r.History()[0] == -1 {
		t.Error("History should return a copy")
	}
}

func TestScanCollisionsSaturates(t *testing.T) {
	r := NewSeeded(9)
	r.totalCollisions = math.MaxUint32 - 1
	r.particles = append(r.particles,
		Particle{X: 0.5, Y: 0.5, VX: 0.01, Radius: CollisionRadius, Lifetime: 100, Energy: 1},
		Particle{X: 0.51, Y: 0.5, VX: -0.01, Radius: CollisionRadius, Lifetime: 100, Energy: 1},
		Particle{X: 0.5, Y: 0.51, VY: -0.01, Radius: CollisionRadius, Lifetime: 100, Energy: 1},
	)

	for i := 0; i < 5; i++ {
		r.scanCollisions(100)
	}

	if r.TotalCollisions() != math.MaxUint32 {
		t.Errorf("total collisions wrapped: %d", r.TotalCollisions())
	}
}

func TestScanCollisionsBouncesAndHeats(t *testing.T) {
	r := NewSeeded(2)
	r.particles = append(r.particles,
		Particle{X: 0.5, Y: 0.5, VX: 0.01, VY: 0.02, Radius: CollisionRadius, Lifetime: 100, Energy: 1},
		Particle{X: 0.52, Y: 0.5, VX: -0.01, VY: 0.03, Radius: CollisionRadius, Lifetime: 100, Energy: 1},
	)
	before := r.Temperature()

	r.scanCollisions(0)

	if r.Collisions() != 1 || r.TotalCollisions() != 1 {
		t.Fatalf("collisions = %d/%d, want 1/1", r.Collisions(), r.TotalCollisions())
	}
	if got := r.Temperature(); !approx(got, before+CollisionHeat) {
		t.Errorf("temperature = %v, want %v", got, before+CollisionHeat)
	}
	p := r.Particles()
	if p[0].VX != -0.01 || p[0].VY != -0.02 || p[1].VX != 0.01 || p[1].VY != -0.03 {
		t.Errorf("velocities not inverted: %+v %+v", p[0], p[1])
	}
	for _, child := range p[2:] {
		if !approx(child.X, 0.51) || !approx(child.Y, 0.5) {
			t.Errorf("child not at midpoint: %+v", child)
		}
	}
}

func TestScanCollisionsRespectsCapacity(t *testing.T) {
	r := NewSeeded(4)
	for i := 0; i < MaxParticles; i++ {
		r.particles = append(r.particles, Particle{X: 0.5, Y: 0.5, Radius: CollisionRadius, Lifetime: 200, Energy: 1})
	}

	r.scanCollisions(100)

	if r.ParticleCount() != MaxParticles {
		t.Errorf("particle count = %d, want %d", r.ParticleCount(), MaxParticles)
	}
	if r.Temperature() != MaxTemperature {
		t.Errorf("temperature should cap at %v, got %v", MaxTemperature, r.Temperature())
	}
}

func TestDeadParticlesAreCulled(t *testing.T) {
	r := NewSeeded(1)
	r.particles = append(r.particles,
		Particle{X: 0.2, Y: 0.2, Radius: CollisionRadius, Lifetime: 0},
		Particle{X: 0.3, Y: 0.3, Radius: CollisionRadius, Lifetime: 5},
		Particle{X: 0.4, Y: 0.4, Radius: CollisionRadius, Lifetime: 0},
		Particle{X: 0.6, Y: 0.6, Radius: CollisionRadius, Lifetime: 9},
	)

	r.updateParticles(0)

	p := r.Particles()
	if len(p) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(p))
	}
	if p[0].Lifetime != 4 || p[1].Lifetime != 8 {
		t.Errorf("survivors out of order or not advanced: %+v", p)
	}
}

func TestExplosionLatch(t *testing.T) {
	r := NewSeeded(6)
	r.totalCollisions = ExplosionCollisions + 1
	r.rodPosition = 1
	r.temperature = MaxTemperature

	r.Update(100)

	if !r.Exploding() {
		t.Fatalf("expected meltdown, stability = %v", r.Stability())
	}
	if r.ExplosionFrame() != 0 {
		t.Errorf("explosion frame = %d, want 0", r.ExplosionFrame())
	}

	temp, rad, cool, stab := r.Temperature(), r.Radiation(), r.Coolant(), r.Stability()
	particles, total := r.ParticleCount(), r.TotalCollisions()
	history := len(r.History())

	for i := 0; i < ExplosionCadence*(MaxExplosionFrame+10); i++ {
		r.Update(float64(i % 100))
	}

	if r.Temperature() != temp || r.Radiation() != rad || r.Coolant() != cool || r.Stability() != stab {
		t.Error("physics fields changed while exploding")
	}
	if r.ParticleCount() != particles || r.TotalCollisions() != total || len(r.History()) != history {
		t.Error("particles or counters changed while exploding")
	}
	if r.ExplosionFrame() != MaxExplosionFrame {
		t.Errorf("explosion frame = %d, want cap %d", r.ExplosionFrame(), MaxExplosionFrame)
	}
	if r.Status().Level != LevelMeltdown {
		t.Errorf("status = %q", r.Status())
	}
}

func TestExplosionFrameCadence(t *testing.T) {
	r := NewSeeded(6)
	r.exploding = true

	for i := 1; i <= ExplosionCadence*4; i++ {
		r.Update(50)
		if want := uint32(i / ExplosionCadence); r.ExplosionFrame() != want {
			t.Fatalf("call %d: frame = %d, want %d", i, r.ExplosionFrame(), want)
		}
	}
}

func TestSustainedHighLoad(t *testing.T) {
	r := NewSeeded(1234)
	sawParticles := false

	for i := 0; i < 1000; i++ {
		r.Update(95)
		if r.ParticleCount() > 0 {
			sawParticles = true
		}
	}

	if !sawParticles || r.ParticleCount() == 0 {
		t.Error("expected particles under sustained load")
	}
	if r.Temperature() < 700 {
		t.Errorf("temperature %v should trend toward the high load target", r.Temperature())
	}
	if !r.Exploding() {
		t.Errorf("expected meltdown after sustained load, total collisions = %d, stability = %v",
			r.TotalCollisions(), r.Stability())
	}
}

func TestSpawnAmbientLimits(t *testing.T) {
	tests := []struct {
		load    float64
		ceiling int
	}{
		{0, 0},
		{0.4, 0},
		{10, 20},
		{30, 60},
		{75, 150},
		{100, MaxParticles},
	}

	for _, tt := range tests {
		r := NewSeeded(17)
		r.radiation = 100

		if got := int(MaxParticles * tt.load / 100); got != tt.ceiling {
			t.Fatalf("load %v: ceiling = %d, want %d", tt.load, got, tt.ceiling)
		}

		for i := 0; i < 2000; i++ {
			before := len(r.particles)
			r.spawnAmbient(tt.load)
			added := len(r.particles) - before
			if added > MaxSpawnPerTick {
				t.Fatalf("load %v: %d particles spawned in one tick", tt.load, added)
			}
			if len(r.particles) > tt.ceiling {
				t.Fatalf("load %v: %d particles above ceiling %d", tt.load, len(r.particles), tt.ceiling)
			}
		}

		if got := len(r.particles); got != tt.ceiling {
			t.Errorf("load %v: population settled at %d, want ceiling %d", tt.load, got, tt.ceiling)
		}
	}
}

func TestIdleLoad(t *testing.T) {
	r := NewSeeded(1234)

	for i := 0; i < 1000; i++ {
		r.Update(0)
		if r.ParticleCount() != 0 {
			t.Fatalf("tick %d: idle reactor spawned %d particles", i, r.ParticleCount())
		}
		if r.Exploding() {
			t.Fatalf("tick %d: idle reactor exploded", i)
		}
	}
	if r.Stability() > 10 {
		t.Errorf("idle stability = %v, want low", r.Stability())
	}
	if r.Status().Level != LevelIdle {
		t.Errorf("status = %q", r.Status())
	}
}

func TestSeededReactorsAreReproducible(t *testing.T) {
	a, b := NewSeeded(77), NewSeeded(77)
	for i := 0; i < 400; i++ {
		load := float64(i % 100)
		a.Update(load)
		b.Update(load)
	}
	if a.ParticleCount() != b.ParticleCount() || a.TotalCollisions() != b.TotalCollisions() ||
		a.Stability() != b.Stability() {
		t.Error("identically seeded reactors diverged")
	}
}

func TestCoreLoadFallback(t *testing.T) {
	r := NewSeeded(1)
	r.ObserveCores([]float64{10, 20, 130})
	r.Update(55)

	tests := []struct {
		index int
		want  float64
	}{
		{0, 10},
		{1, 20},
		{2, 100},
		{3, 55},
		{-1, 55},
	}
	for _, tt := range tests {
		if got := r.CoreLoad(tt.index); got != tt.want {
			t.Errorf("CoreLoad(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
	if r.CoreCount() != 3 {
		t.Errorf("CoreCount = %d", r.CoreCount())
	}
}

func TestCollisionsUntilMeltdown(t *testing.T) {
	r := NewSeeded(1)
	if got := r.CollisionsUntilMeltdown(); got != ExplosionCollisions+1 {
		t.Errorf("fresh reactor: %d", got)
	}
	r.totalCollisions = 60
	if got := r.CollisionsUntilMeltdown(); got != 41 {
		t.Errorf("at 60: %d", got)
	}
	r.totalCollisions = 500
	if got := r.CollisionsUntilMeltdown(); got != 0 {
		t.Errorf("at 500: %d", got)
	}
}
