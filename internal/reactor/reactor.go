// Package reactor simulates the nuclear reactor driven by host load: control
// rods, core temperature, radiation particles and the meltdown sequence.
//
// A Reactor is not safe for concurrent use. It is meant to be driven by a
// single tick loop that calls Update once per frame.
package reactor

import (
	"math"
	"math/rand"
	"slices"
	"time"
)

const (
	// MaxParticles caps the live particles; HistorySize the sampled temperatures.
	MaxParticles = 200
	HistorySize  = 60

	// BaseTemperature is the core temperature of an idle reactor and
	// MaxTemperature that of a fully withdrawn one, in °C.
	BaseTemperature = 220.0
	MaxTemperature  = 1000.0

	// Fraction of the remaining gap closed per tick by the rods (toward the
	// load) and by the core temperature (toward the rods).
	RodEase     = 0.05
	ThermalEase = 0.02

	// HistoryCadence is the number of ticks between temperature samples.
	HistoryCadence = 10

	// A collision scan runs with CollisionScanChance per tick once more than
	// MinScanParticles are alive. Each hit adds CollisionHeat °C and, with
	// ChildSpawnChance scaled by load, splits into up to MaxChildren particles.
	CollisionScanChance = 0.02
	MinScanParticles    = 5
	CollisionHeat       = 0.5
	ChildSpawnChance    = 0.3
	MaxChildren         = 3

	// Ambient emission: at most MaxSpawnPerTick particles per tick, within
	// SpawnSpread of the core center.
	MaxSpawnPerTick = 3
	SpawnSpread     = 0.1

	// Meltdown starts past ExplosionCollisions total collisions while stability
	// exceeds ExplosionStability. The animation then advances one frame every
	// ExplosionCadence updates up to MaxExplosionFrame.
	ExplosionCollisions = 100
	ExplosionStability  = 80.0
	ExplosionCadence    = 3
	MaxExplosionFrame   = 30
)

const (
	initialRadiation = 5.0
	initialCoolant   = 95.0
)

// Reactor holds the complete simulation state.
type Reactor struct {
	rng *rand.Rand

	load        float64
	rodPosition float64
	temperature float64
	radiation   float64
	pressure    float64
	coolant     float64
	instability float64
	stability   float64

	particles []Particle
	staged    []Particle

	collisions      uint32
	totalCollisions uint32

	history []float64
	ticks   uint64

	exploding      bool
	explosionFrame uint32
	explosionTicks uint32

	coreLoads []float64
}

// New returns a reactor seeded from the clock.
func New() *Reactor {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a reactor whose random stream is fixed by seed, so two
// reactors fed the same loads evolve identically.
func NewSeeded(seed int64) *Reactor {
	r := &Reactor{
		rng:       rand.New(rand.NewSource(seed)),
		particles: make([]Particle, 0, MaxParticles),
		staged:    make([]Particle, 0, MaxParticles),
		history:   make([]float64, 0, HistorySize),
	}
	r.Reset()
	return r
}

// Reset returns the reactor to its initial state. The random stream and the
// observed core loads are kept.
func (r *Reactor) Reset() {
	r.load = 0
	r.rodPosition = 0
	r.temperature = BaseTemperature
	r.radiation = initialRadiation
	r.pressure = 0
	r.coolant = initialCoolant
	r.instability = 0
	r.stability = r.computeStability()

	r.particles = r.particles[:0]
	r.staged = r.staged[:0]
	r.collisions = 0
	r.totalCollisions = 0
	r.history = r.history[:0]
	r.ticks = 0

	r.exploding = false
	r.explosionFrame = 0
	r.explosionTicks = 0
}

// Update advances the simulation by one tick. load is the aggregate CPU
// utilisation in percent; out of range values are clamped.
func (r *Reactor) Update(load float64) {
	if r.exploding {
		r.advanceExplosion()
		return
	}

	load = clampPercent(load)
	r.load = load
	r.ticks++

	r.updateThermal(load)
	r.updateInstability()
	r.sampleHistory()
	r.updateParticles(load)
	r.spawnAmbient(load)

	if r.totalCollisions > ExplosionCollisions && r.stability > ExplosionStability {
		r.exploding = true
		r.explosionFrame = 0
		r.explosionTicks = 0
	}
}

func (r *Reactor) advanceExplosion() {
	r.explosionTicks++
	if r.explosionTicks%ExplosionCadence == 0 && r.explosionFrame < MaxExplosionFrame {
		r.explosionFrame++
	}
}

// updateThermal eases the rods toward the load and the core temperature
// toward the rods, then derives radiation, pressure and coolant.
func (r *Reactor) updateThermal(load float64) {
	target := load / 100
	r.rodPosition = clamp(r.rodPosition+(target-r.rodPosition)*RodEase, 0, 1)

	targetTemp := BaseTemperature + r.rodPosition*(MaxTemperature-BaseTemperature)
	r.temperature = clamp(r.temperature+(targetTemp-r.temperature)*ThermalEase, BaseTemperature, MaxTemperature)

	heat := r.heat()
	r.radiation = clampPercent(initialRadiation + r.rodPosition*r.rodPosition*95)
	r.pressure = clampPercent(heat * 100)
	r.coolant = clampPercent(initialCoolant - heat*85)
}

func (r *Reactor) updateInstability() {
	noise := (r.rng.Float64() - 0.5) * 10 * (0.5 + r.rodPosition)
	r.instability = clampPercent(r.rodPosition*40 + noise)
	r.stability = r.computeStability()
}

// heat is the temperature's position between base and max, in [0, 1].
func (r *Reactor) heat() float64 {
	span := MaxTemperature - BaseTemperature
	if span <= 0 {
		return 0
	}
	return clamp((r.temperature-BaseTemperature)/span, 0, 1)
}

func (r *Reactor) computeStability() float64 {
	return clampPercent(0.35*r.heat()*100 +
		0.30*r.radiation +
		0.25*r.instability +
		0.30*(100-r.coolant))
}

func (r *Reactor) sampleHistory() {
	if r.ticks%HistoryCadence != 0 {
		return
	}
	if len(r.history) == HistorySize {
		copy(r.history, r.history[1:])
		r.history = r.history[:HistorySize-1]
	}
	r.history = append(r.history, r.temperature)
}

func (r *Reactor) updateParticles(load float64) {
	r.collisions = 0

	r.particles = slices.DeleteFunc(r.particles, func(p Particle) bool {
		return !p.Alive()
	})
	for i := range r.particles {
		r.particles[i].Update()
	}

	if len(r.particles) > MinScanParticles && r.rng.Float64() < CollisionScanChance {
		r.scanCollisions(load)
	}
}

// scanCollisions bounces every overlapping pair and may split them into
// children. Children are staged and only merged once the scan is done.
func (r *Reactor) scanCollisions(load float64) {
	r.staged = r.staged[:0]
	splitChance := ChildSpawnChance * (0.5 + load/200)

	for i := 0; i < len(r.particles); i++ {
		for j := i + 1; j < len(r.particles); j++ {
			p1, p2 := &r.particles[i], &r.particles[j]
			if !p1.CollidesWith(*p2) {
				continue
			}

			r.collisions = addSaturatingU32(r.collisions, 1)
			r.totalCollisions = addSaturatingU32(r.totalCollisions, 1)
			r.temperature = math.Min(r.temperature+CollisionHeat, MaxTemperature)

			p1.bounce()
			p2.bounce()

			if r.rng.Float64() >= splitChance {
				continue
			}
			children := 1 + r.rng.Intn(MaxChildren)
			for k := 0; k < children && len(r.particles)+len(r.staged) < MaxParticles; k++ {
				r.staged = append(r.staged, SpawnFromCollision(*p1, *p2, r.rng))
			}
		}
	}

	r.particles = append(r.particles, r.staged...)
	r.staged = r.staged[:0]
}

// spawnAmbient emits particles near the core. The population ceiling scales
// with load, so an idle reactor stays empty.
func (r *Reactor) spawnAmbient(load float64) {
	ceiling := min(int(MaxParticles*load/100), MaxParticles)
	chance := r.radiation / 100 * load / 100
	intensity := r.radiation / 100

	for i := 0; i < MaxSpawnPerTick && len(r.particles) < ceiling; i++ {
		if r.rng.Float64() >= chance {
			continue
		}
		x := 0.5 + (r.rng.Float64()*2-1)*SpawnSpread
		y := 0.5 + (r.rng.Float64()*2-1)*SpawnSpread
		r.particles = append(r.particles, NewParticle(r.rng, x, y, intensity))
	}
}

// ObserveCores records the latest per-core loads for display.
func (r *Reactor) ObserveCores(loads []float64) {
	r.coreLoads = append(r.coreLoads[:0], loads...)
}

// CoreLoad returns the load of core i, or the aggregate load when i is not
// a known core.
func (r *Reactor) CoreLoad(i int) float64 {
	if i < 0 || i >= len(r.coreLoads) {
		return r.load
	}
	return clampPercent(r.coreLoads[i])
}

// CoreCount returns the number of cores last observed.
func (r *Reactor) CoreCount() int { return len(r.coreLoads) }

func (r *Reactor) Load() float64        { return r.load }
func (r *Reactor) RodPosition() float64 { return r.rodPosition }
func (r *Reactor) Temperature() float64 { return r.temperature }
func (r *Reactor) Radiation() float64   { return r.radiation }
func (r *Reactor) Pressure() float64    { return r.pressure }
func (r *Reactor) Coolant() float64     { return r.coolant }
func (r *Reactor) Instability() float64 { return r.instability }

// Stability is the instability score in [0, 100]; higher is worse.
func (r *Reactor) Stability() float64 { return r.stability }

// Collisions returns the number of collisions detected during the last tick.
func (r *Reactor) Collisions() uint32 { return r.collisions }

func (r *Reactor) TotalCollisions() uint32 { return r.totalCollisions }

// CollisionsUntilMeltdown returns how many more collisions are needed before
// the collision half of the meltdown condition holds.
func (r *Reactor) CollisionsUntilMeltdown() uint32 {
	if r.totalCollisions > ExplosionCollisions {
		return 0
	}
	return ExplosionCollisions + 1 - r.totalCollisions
}

func (r *Reactor) Exploding() bool        { return r.exploding }
func (r *Reactor) ExplosionFrame() uint32 { return r.explosionFrame }

// Particles returns a copy of the live particles.
func (r *Reactor) Particles() []Particle { return slices.Clone(r.particles) }

// ParticleCount avoids the copy made by Particles.
func (r *Reactor) ParticleCount() int { return len(r.particles) }

// History returns a copy of the sampled temperatures, oldest first.
func (r *Reactor) History() []float64 { return slices.Clone(r.history) }
