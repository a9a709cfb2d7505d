package waveform

import "math"

// SineGenerator produces a traveling wave along the fin. Each ray lags
// its neighbour by an equal fraction of the wave period, so one full
// period spans the whole fin.
type SineGenerator struct {
	RaysPerSide   int
	MaxDeflection float64
}

func (g *SineGenerator) Angle(amplitude float64, wavelength float64, phase float64, ray int) float64 {
	spatial := float64(ray) / float64(g.RaysPerSide)
	return amplitude * g.MaxDeflection * math.Sin(2*math.Pi*(phase/wavelength-spatial))
}
