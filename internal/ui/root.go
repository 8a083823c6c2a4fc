package ui

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/config"
	"github.com/google/reactortop/internal/metrics"
	"github.com/google/reactortop/internal/reactor"
)

const (
	modeLive       = "LIVE"
	modeSimulation = "SIMULATION"
	modeStress     = "STRESS TEST"
)

// TickMsg asks for a metrics poll.
type TickMsg time.Time

// FrameMsg advances the reactor by one frame.
type FrameMsg time.Time

// tickRand is used to add jitter to polling intervals.
// Safe for use in this context as tick() is only called from
// the single-threaded Bubble Tea event loop.
var tickRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// tick schedules the next metrics poll with ±10% jitter.
func tick(interval time.Duration) tea.Cmd {
	spread := int64(interval / 5)
	var jitter time.Duration
	if spread > 0 {
		jitter = time.Duration(tickRand.Int63n(spread) - spread/2)
	}
	return tea.Tick(interval+jitter, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func frame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Alarm is sounded while the reactor melts down.
type Alarm interface {
	Sound()
	Silence()
}

// Stressor puts real load on the host.
type Stressor interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
}

type nopAlarm struct{}

func (nopAlarm) Sound()   {}
func (nopAlarm) Silence() {}

// Option customizes a RootModel.
type Option func(*RootModel)

// WithReactor drives the given reactor instead of a fresh one.
func WithReactor(r *reactor.Reactor) Option {
	return func(m *RootModel) { m.reactor = r }
}

// WithAlarm sets the alarm sounded during meltdown.
func WithAlarm(a Alarm) Option {
	return func(m *RootModel) { m.alarm = a }
}

// WithStressor sets the generator toggled by the stress key.
func WithStressor(s Stressor) Option {
	return func(m *RootModel) { m.stress = s }
}

type RootModel struct {
	provider metrics.Provider
	config   *config.ProfileConfiguration

	reactor    *reactor.Reactor
	oscillator *metrics.LoadOscillator
	stress     Stressor
	alarm      Alarm
	alarmOn    bool

	keys keyMap
	help help.Model

	paused     bool
	simulating bool
	showHelp   bool
	load       float64 // last load fed to the reactor
	latest     metrics.SystemStats

	frameInterval time.Duration
	pollInterval  time.Duration

	// Sub-models
	vessel VesselModel
	gauges GaugesModel
	chart  ChartModel
	cores  CoresModel
	status StatusModel
	footer FooterModel

	// Layout state
	width, height int
	reactorPct    float64 // Percentage of width for the vessel
	topPct        float64 // Percentage of height for the top row
}

func NewRootModel(provider metrics.Provider, cfg *config.ProfileConfiguration, opts ...Option) RootModel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if !ApplyTheme(cfg.Theme) {
		log.Printf("ui: unknown theme %q, keeping default", cfg.Theme)
	}

	fps := max(1000/max(cfg.TickRate, 1), 1)
	keys := newKeyMap()
	sim := cfg.Simulation

	m := RootModel{
		provider:      provider,
		config:        cfg,
		oscillator:    metrics.NewLoadOscillator(sim.Min, sim.Max, sim.Step, sim.Start),
		alarm:         nopAlarm{},
		keys:          keys,
		help:          help.New(),
		frameInterval: time.Duration(cfg.TickRate) * time.Millisecond,
		pollInterval:  time.Duration(cfg.RefreshInterval) * time.Millisecond,
		vessel:        NewVesselModel(),
		gauges:        NewGaugesModel(fps),
		chart:         NewChartModel(),
		cores:         NewCoresModel(),
		status:        NewStatusModel(),
		footer:        NewFooterModel(keys),
		reactorPct:    cfg.Layout.ReactorWidth,
		topPct:        cfg.Layout.TopHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.reactor == nil {
		if cfg.Seed != 0 {
			m.reactor = reactor.NewSeeded(cfg.Seed)
		} else {
			m.reactor = reactor.New()
		}
	}
	if m.stress == nil {
		m.stress = nopStressor{}
	}
	m.refresh()
	return m
}

type nopStressor struct{}

func (nopStressor) Start(context.Context) {}
func (nopStressor) Stop()                 {}
func (nopStressor) Running() bool         { return false }

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(
		frame(m.frameInterval),
		// Poll once right away so the first frames have real data.
		func() tea.Msg { return TickMsg(time.Now()) },
	)
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.showHelp && msg.String() != "ctrl+c" {
				m.showHelp = false
				break
			}
			m.shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Stress):
			m.toggleStress()
		case key.Matches(msg, m.keys.Reset):
			log.Printf("reactor: reset")
			m.reactor.Reset()
			m.updateAlarm()
		case key.Matches(msg, m.keys.Narrow):
			m.reactorPct = max(m.reactorPct-0.05, 0.2)
			m.resizeModules()
		case key.Matches(msg, m.keys.Widen):
			m.reactorPct = min(m.reactorPct+0.05, 0.9)
			m.resizeModules()
		}
		m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeModules()

	case FrameMsg:
		if !m.paused {
			m.step()
		}
		m.gauges.Step()
		cmds = append(cmds, frame(m.frameInterval))

	case TickMsg:
		if !m.paused {
			m.poll()
		}
		// Continue tick
		cmds = append(cmds, tick(m.pollInterval))
	}

	return m, tea.Batch(cmds...)
}

// step feeds one frame of load into the reactor. In simulation mode the
// oscillator replaces the measured CPU load.
func (m *RootModel) step() {
	load := m.latest.CPU.GlobalUsagePercent
	if m.simulating {
		load = m.oscillator.Next()
	}
	m.load = load
	m.reactor.Update(load)
	m.updateAlarm()
	m.refresh()
}

func (m *RootModel) poll() {
	stats, err := m.provider.GetStats()
	if err != nil {
		log.Printf("metrics: %v", err)
		return
	}
	m.latest = *stats
	m.reactor.ObserveCores(stats.CPU.PerCoreUsage)
	m.gauges.SetStats(*stats)
	m.cores.SetStats(stats.CPU)
}

// toggleStress cycles stress test, simulation and live load. Stopping the
// stress test hands over to the simulation so the reactor stays busy.
func (m *RootModel) toggleStress() {
	switch {
	case m.stress.Running():
		m.stress.Stop()
		m.simulating = true
	case m.simulating:
		m.simulating = false
	default:
		m.stress.Start(context.Background())
	}
}

func (m *RootModel) updateAlarm() {
	exploding := m.reactor.Exploding()
	switch {
	case exploding && !m.alarmOn:
		log.Printf("reactor: meltdown after %d collisions at %.0f°C", m.reactor.TotalCollisions(), m.reactor.Temperature())
		m.alarm.Sound()
		m.alarmOn = true
	case !exploding && m.alarmOn:
		m.alarm.Silence()
		m.alarmOn = false
	}
}

func (m *RootModel) shutdown() {
	m.stress.Stop()
	m.alarm.Silence()
	m.alarmOn = false
}

func (m RootModel) mode() string {
	switch {
	case m.stress.Running():
		return modeStress
	case m.simulating:
		return modeSimulation
	default:
		return modeLive
	}
}

// refresh pushes the reactor state into every sub-model.
func (m *RootModel) refresh() {
	m.vessel.SetReactor(m.reactor)
	m.gauges.SetReactor(m.reactor, m.load, m.simulating)
	m.chart.SetHistory(m.reactor.History())
	m.status.SetReactor(m.reactor)

	mode := m.mode()
	m.status.SetMode(mode, m.paused)
	m.footer.SetMode(mode)
}

func (m *RootModel) resizeModules() {
	if m.width == 0 || m.height == 0 {
		return
	}

	// Height available for rows (minus footer)
	h := max(m.height-1, 2)
	topH := max(int(float64(h)*m.topPct), 1)
	bottomH := max(h-topH, 1)

	leftW := int(float64(m.width) * m.reactorPct)
	m.vessel.SetSize(leftW, topH)
	m.gauges.SetSize(m.width-leftW, topH)

	chartW := int(float64(m.width) * 0.45)
	coresW := int(float64(m.width) * 0.25)
	m.chart.SetSize(chartW, bottomH)
	m.cores.SetSize(coresW, bottomH)
	m.status.SetSize(m.width-chartW-coresW, bottomH)

	m.footer.SetSize(m.width)
	m.help.Width = m.width
}

func (m RootModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return renderHelp(m.help, m.keys, m.width, m.height)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.vessel.View(),
		m.gauges.View(),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chart.View(),
		m.cores.View(),
		m.status.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		bottom,
		m.footer.View(),
	)
}
