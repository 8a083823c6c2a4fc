package config

// ProfileConfiguration defines the user-configurable settings for reactortop.
type ProfileConfiguration struct {
	Theme           string           `yaml:"theme"`
	TickRate        int              `yaml:"tick_rate"`        // Simulation frame interval in milliseconds
	RefreshInterval int              `yaml:"refresh_interval"` // Metrics poll interval in milliseconds
	Seed            int64            `yaml:"seed"`             // 0 seeds from the clock
	Sound           bool             `yaml:"sound"`
	StressWorkers   int              `yaml:"stress_workers"`
	Simulation      SimulationConfig `yaml:"simulation"`
	Layout          LayoutConfig     `yaml:"layout"`
}

// SimulationConfig shapes the synthetic load used in simulation mode.
type SimulationConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Step  float64 `yaml:"step"`
	Start float64 `yaml:"start"`
}

// LayoutConfig splits the screen. Both values are fractions of the terminal.
type LayoutConfig struct {
	ReactorWidth float64 `yaml:"reactor_width"`
	TopHeight    float64 `yaml:"top_height"`
}

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() *ProfileConfiguration {
	return &ProfileConfiguration{
		Theme:           "lich-king",
		TickRate:        33,
		RefreshInterval: 1000,
		StressWorkers:   1,
		Simulation: SimulationConfig{
			Min:   20,
			Max:   95,
			Step:  0.5,
			Start: 40,
		},
		Layout: LayoutConfig{
			ReactorWidth: 0.70,
			TopHeight:    0.70,
		},
	}
}
