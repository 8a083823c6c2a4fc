package metrics

import (
	"math"
	"math/rand"
	"time"
)

// MockProvider produces plausible, slowly wandering host metrics so the
// reactor can be demonstrated on any machine.
type MockProvider struct {
	Cores int

	rng       *rand.Rand
	phase     float64
	started   time.Time
	lastStats SystemStats
}

func (m *MockProvider) Init() error {
	if m.Cores <= 0 {
		m.Cores = 8 // Simulate 8 cores
	}
	m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	m.started = time.Now()
	m.lastStats = SystemStats{
		CPU: CPUStats{
			PerCoreUsage: make([]float64, m.Cores),
			PerCoreTemp:  make([]float64, m.Cores),
		},
		GPU: GPUStats{
			Available: true,
			Name:      "NVIDIA GeForce RTX 4090",
		},
	}
	return nil
}

func (m *MockProvider) GetStats() (*SystemStats, error) {
	if m.rng == nil {
		if err := m.Init(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	m.lastStats.Timestamp = now
	m.lastStats.Uptime = uint64(now.Sub(m.started).Seconds())

	// A slow swell between ~15% and ~75% with per-core jitter.
	m.phase += 0.15
	base := 45 + 30*math.Sin(m.phase)

	var total float64
	for i := range m.lastStats.CPU.PerCoreUsage {
		u := base + (m.rng.Float64()-0.5)*30
		u = math.Max(0, math.Min(100, u))
		m.lastStats.CPU.PerCoreUsage[i] = u
		m.lastStats.CPU.PerCoreTemp[i] = 40 + u*0.4 + m.rng.Float64()*5
		total += u
	}
	m.lastStats.CPU.GlobalUsagePercent = total / float64(len(m.lastStats.CPU.PerCoreUsage))
	m.lastStats.CPU.LoadAvg = [3]float64{base / 25, base / 30, base / 40}

	// Memory
	m.lastStats.Memory.Total = 32 * 1024 * 1024 * 1024
	m.lastStats.Memory.Used = uint64(float64(m.lastStats.Memory.Total) * (0.35 + base/400))
	m.lastStats.Memory.UsedPercent = float64(m.lastStats.Memory.Used) / float64(m.lastStats.Memory.Total) * 100

	// GPU
	m.lastStats.GPU.Utilization = uint32(50 + m.rng.Intn(30))
	m.lastStats.GPU.Temperature = uint32(60 + m.rng.Intn(10))

	stats := m.lastStats
	stats.CPU.PerCoreUsage = append([]float64(nil), m.lastStats.CPU.PerCoreUsage...)
	stats.CPU.PerCoreTemp = append([]float64(nil), m.lastStats.CPU.PerCoreTemp...)
	return &stats, nil
}

func (m *MockProvider) Shutdown() {}
