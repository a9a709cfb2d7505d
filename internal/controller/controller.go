package controller

import (
	"context"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/fin2go/internal/command"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/markusressel/fin2go/internal/util"
	"github.com/markusressel/fin2go/internal/waveform"
)

// TickWindowSize is the number of cycles the tick duration statistics
// are computed over.
const TickWindowSize = 100

// Snapshot is a consistent view of the controller state after the most
// recent cycle.
type Snapshot struct {
	Clock   gait.PhaseClock `json:"clock"`
	Mode    waveform.Mode   `json:"mode"`
	Command gait.Command    `json:"command"`
}

type FinController interface {
	// Run blocks and drives the fins until ctx is cancelled.
	Run(ctx context.Context) error

	// UpdateActuation executes a single control cycle.
	UpdateActuation() error

	Snapshot() Snapshot

	// TickDurationAvg returns the average cycle duration in
	// milliseconds over the most recent cycles.
	TickDurationAvg() float64

	// TickDurationMax returns the worst cycle duration in
	// milliseconds over the most recent cycles.
	TickDurationMax() float64
}

type finController struct {
	gaitController *gait.Controller
	source         command.Source
	tickRate       time.Duration
	settleTicks    int
	settleDelay    time.Duration

	mu          sync.Mutex
	clock       gait.PhaseClock
	mode        waveform.Mode
	lastCommand gait.Command
	tickWindow  *rolling.PointPolicy
}

func NewFinController(
	gaitController *gait.Controller,
	source command.Source,
	tickRate time.Duration,
	settleTicks int,
	settleDelay time.Duration,
) FinController {
	return &finController{
		gaitController: gaitController,
		source:         source,
		tickRate:       tickRate,
		settleTicks:    settleTicks,
		settleDelay:    settleDelay,
		mode:           waveform.ModeSine,
		tickWindow:     util.CreateRollingWindow(TickWindowSize),
	}
}

func (f *finController) Run(ctx context.Context) error {
	if err := f.settle(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}

	ui.Info("Starting control loop, polling command source '%s'", f.source.GetId())

	tick := time.Tick(f.tickRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			start := time.Now()
			err := f.UpdateActuation()
			f.recordTickDuration(time.Since(start))
			if err != nil {
				ui.Error("Error driving fins: %v", err)
			}
		}
	}
}

// settle walks every fin ray from its unknown power-on position into
// the calibrated neutral pose. The rate limiter bounds each step, so
// the routine needs multiple cycles.
func (f *finController) settle(ctx context.Context) error {
	ui.Info("Settling fin rays into neutral position...")

	for i := 0; i < f.settleTicks; i++ {
		if err := f.gaitController.ApplyNeutral(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.settleDelay):
		}
	}
	return nil
}

func (f *finController) UpdateActuation() error {
	cmd, err := f.source.Get()
	if err != nil {
		// keep swimming with the last known command
		f.mu.Lock()
		cmd = f.lastCommand
		f.mu.Unlock()
		ui.Warning("Command source %s unavailable, reusing last command: %v", f.source.GetId(), err)
	}

	f.mu.Lock()
	clock := f.clock
	f.mu.Unlock()

	newClock, mode, err := f.gaitController.Step(cmd, clock)

	f.mu.Lock()
	f.clock = newClock
	f.mode = mode
	f.lastCommand = cmd
	f.mu.Unlock()

	return err
}

func (f *finController) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Clock:   f.clock,
		Mode:    f.mode,
		Command: f.lastCommand,
	}
}

func (f *finController) TickDurationAvg() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return util.GetWindowAvg(f.tickWindow)
}

func (f *finController) TickDurationMax() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return util.GetWindowMax(f.tickWindow)
}

func (f *finController) recordTickDuration(duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickWindow.Append(float64(duration.Microseconds()) / 1000.0)
}
