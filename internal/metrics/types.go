package metrics

import (
	"time"
)

// SystemStats holds the host metrics that drive the reactor at a point in time.
type SystemStats struct {
	Timestamp time.Time
	Uptime    uint64 // Uptime in seconds
	CPU       CPUStats
	Memory    MemoryStats
	GPU       GPUStats
}

// CPUStats holds CPU related metrics.
type CPUStats struct {
	GlobalUsagePercent float64
	PerCoreUsage       []float64  // Percent usage per core
	PerCoreTemp        []float64  // Temperature per core (if available)
	LoadAvg            [3]float64 // 1, 5, 15 min load average
}

// CoreUsage returns the usage of core i, falling back to the global usage
// when the core is unknown.
func (c CPUStats) CoreUsage(i int) float64 {
	if i < 0 || i >= len(c.PerCoreUsage) {
		return c.GlobalUsagePercent
	}
	return c.PerCoreUsage[i]
}

// MemoryStats holds memory related metrics.
type MemoryStats struct {
	Total       uint64
	Used        uint64
	UsedPercent float64
}

// GPUStats holds NVIDIA GPU metrics.
type GPUStats struct {
	Available   bool // True if GPU is present and accessible
	Name        string
	Utilization uint32 // GPU Utilization in percent
	Temperature uint32 // GPU Temperature in Celsius
}

// Provider defines the interface for fetching system metrics.
type Provider interface {
	Init() error
	GetStats() (*SystemStats, error)
	Shutdown()
}
