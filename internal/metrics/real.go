package metrics

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mindprince/gonvml"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// RealProvider reads metrics from the running host.
type RealProvider struct {
	hasGPU bool
}

func (r *RealProvider) Init() error {
	// Prime the CPU counters so the first GetStats reports a real delta.
	if _, err := cpu.Percent(0, true); err != nil {
		return fmt.Errorf("read cpu counters: %w", err)
	}

	// Initialize NVML
	if err := gonvml.Initialize(); err != nil {
		log.Printf("NVML initialization failed (GPU metrics unavailable): %v", err)
		r.hasGPU = false
	} else {
		r.hasGPU = true
	}
	return nil
}

func (r *RealProvider) GetStats() (*SystemStats, error) {
	stats := &SystemStats{
		Timestamp: time.Now(),
	}

	// Host Info (Uptime)
	if uptime, err := host.Uptime(); err == nil {
		stats.Uptime = uptime
	}

	// CPU Usage
	cpuPercent, err := cpu.Percent(0, true)
	if err != nil {
		return nil, fmt.Errorf("read cpu usage: %w", err)
	}
	stats.CPU.PerCoreUsage = cpuPercent
	for _, p := range cpuPercent {
		stats.CPU.GlobalUsagePercent += p
	}
	if len(cpuPercent) > 0 {
		stats.CPU.GlobalUsagePercent /= float64(len(cpuPercent))
	}

	// CPU Temps
	if temps, err := host.SensorsTemperatures(); err == nil {
		// Simple heuristic: collect all 'core' temps
		var coreTemps []float64
		for _, t := range temps {
			if strings.HasPrefix(t.SensorKey, "core") {
				coreTemps = append(coreTemps, t.Temperature)
			}
		}
		stats.CPU.PerCoreTemp = coreTemps
	}

	// Load Average
	if avg, err := load.Avg(); err == nil {
		stats.CPU.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	// Memory
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("read memory usage: %w", err)
	}
	stats.Memory.Total = vm.Total
	stats.Memory.Used = vm.Used
	stats.Memory.UsedPercent = vm.UsedPercent

	if r.hasGPU {
		stats.GPU = readGPU()
	}

	return stats, nil
}

// readGPU samples the first NVIDIA device. Any failure leaves the GPU
// reported as unavailable.
func readGPU() GPUStats {
	count, err := gonvml.DeviceCount()
	if err != nil || count == 0 {
		return GPUStats{}
	}
	dev, err := gonvml.DeviceHandleByIndex(0)
	if err != nil {
		return GPUStats{}
	}

	gpu := GPUStats{Available: true}
	gpu.Name, _ = dev.Name()
	if util, _, err := dev.UtilizationRates(); err == nil {
		gpu.Utilization = uint32(util)
	}
	if temp, err := dev.Temperature(); err == nil {
		gpu.Temperature = uint32(temp)
	}
	return gpu
}

func (r *RealProvider) Shutdown() {
	if r.hasGPU {
		gonvml.Shutdown()
	}
}
