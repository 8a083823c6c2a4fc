package reactor

// Level orders the reactor conditions from calm to meltdown.
type Level int

const (
	LevelIdle Level = iota
	LevelNormal
	LevelCaution
	LevelWarning
	LevelDanger
	LevelCritical
	LevelMeltdown
)

// Status is the human readable classification of the reactor.
type Status struct {
	Level Level
	Label string
}

func (s Status) String() string { return s.Label }

var statusLabels = map[Level]string{
	LevelIdle:     "Idle - Minimal Load",
	LevelNormal:   "Normal - Routine Operation",
	LevelCaution:  "Caution - Increased Radiation Levels",
	LevelWarning:  "Warning - Reactor Unstable",
	LevelDanger:   "Danger - Severe Radiation Leakage",
	LevelCritical: "Critical - Meltdown Imminent!",
	LevelMeltdown: "CRITICAL - MELTDOWN IMMINENT!",
}

// Classify bands a stability score. Exploding takes precedence over any score.
func Classify(stability float64, exploding bool) Status {
	var l Level
	switch {
	case exploding:
		l = LevelMeltdown
	case stability > 90:
		l = LevelCritical
	case stability > 75:
		l = LevelDanger
	case stability > 60:
		l = LevelWarning
	case stability > 40:
		l = LevelCaution
	case stability > 20:
		l = LevelNormal
	default:
		l = LevelIdle
	}
	return Status{Level: l, Label: statusLabels[l]}
}

// Status classifies the reactor's current state.
func (r *Reactor) Status() Status {
	return Classify(r.stability, r.exploding)
}
