package metrics

// LoadOscillator produces a synthetic CPU load that sweeps back and forth
// between Min and Max by Step on every call to Next.
type LoadOscillator struct {
	Min, Max, Step float64

	value     float64
	direction float64
}

// NewLoadOscillator starts an oscillator at start, rising.
func NewLoadOscillator(min, max, step, start float64) *LoadOscillator {
	if max < min {
		min, max = max, min
	}
	if step < 0 {
		step = -step
	}
	o := &LoadOscillator{Min: min, Max: max, Step: step, direction: 1}
	o.value = o.bound(start)
	return o
}

// Next advances the sweep and returns the new load.
func (o *LoadOscillator) Next() float64 {
	o.value += o.direction * o.Step
	switch {
	case o.value > o.Max:
		o.value = o.Max
		o.direction = -1
	case o.value < o.Min:
		o.value = o.Min
		o.direction = 1
	}
	return o.value
}

// Value returns the current load without advancing.
func (o *LoadOscillator) Value() float64 { return o.value }

func (o *LoadOscillator) bound(v float64) float64 {
	if v < o.Min {
		return o.Min
	}
	if v > o.Max {
		return o.Max
	}
	return v
}
