package waveform

import (
	"sync"

	"github.com/markusressel/fin2go/internal/ui"
)

type Mode string

const (
	ModeSine        Mode = "sine"
	ModeFlat        Mode = "flat"
	ModeStanding    Mode = "standing"
	ModeSineAndFlat Mode = "sineandflat"
)

func Modes() []Mode {
	return []Mode{ModeSine, ModeFlat, ModeStanding, ModeSineAndFlat}
}

// Generator computes the deflection angle of a single fin ray.
//
// amplitude is dimensionless (1.0 produces the full configured
// deflection), wavelength and phase are in milliseconds of phase time,
// ray is the index of the fin ray along the fin.
type Generator interface {
	Angle(amplitude float64, wavelength float64, phase float64, ray int) float64
}

// Registry dispatches angle calculations to the Generator registered
// for a mode. A mode without a generator contributes no deflection;
// its first occurrence is logged.
type Registry struct {
	generators map[Mode]Generator

	unknownSeen map[Mode]bool
	mu          sync.Mutex
}

func NewRegistry(raysPerSide int, maxDeflection float64) *Registry {
	sine := &SineGenerator{
		RaysPerSide:   raysPerSide,
		MaxDeflection: maxDeflection,
	}
	flat := &FlatGenerator{
		MaxDeflection: maxDeflection,
	}

	return &Registry{
		generators: map[Mode]Generator{
			ModeSine: sine,
			ModeFlat: flat,
			ModeStanding: &StandingGenerator{
				RaysPerSide:   raysPerSide,
				MaxDeflection: maxDeflection,
			},
			ModeSineAndFlat: &SineAndFlatGenerator{
				Sine: sine,
				Flat: flat,
			},
		},
		unknownSeen: map[Mode]bool{},
	}
}

func (r *Registry) Angle(mode Mode, amplitude float64, wavelength float64, phase float64, ray int) float64 {
	generator, ok := r.generators[mode]
	if !ok {
		r.warnUnknownMode(mode)
		return 0
	}
	return generator.Angle(amplitude, wavelength, phase, ray)
}

func (r *Registry) warnUnknownMode(mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unknownSeen[mode] {
		return
	}
	r.unknownSeen[mode] = true
	ui.Warning("Unknown waveform mode '%s', holding affected fin rays at neutral", mode)
}
