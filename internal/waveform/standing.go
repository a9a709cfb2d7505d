package waveform

import "math"

// StandingGenerator produces a standing wave with nodes just outside
// the first and the last ray. All rays share the temporal phase, the
// deflection envelope peaks at the middle of the fin.
type StandingGenerator struct {
	RaysPerSide   int
	MaxDeflection float64
}

func (g *StandingGenerator) Angle(amplitude float64, wavelength float64, phase float64, ray int) float64 {
	envelope := math.Sin(math.Pi * float64(ray+1) / float64(g.RaysPerSide+1))
	return amplitude * g.MaxDeflection * envelope * math.Sin(2*math.Pi*phase/wavelength)
}
