package waveform

import "math"

// FlatGenerator swings all rays in unison, paddling the fin as a
// rigid plate.
type FlatGenerator struct {
	MaxDeflection float64
}

func (g *FlatGenerator) Angle(amplitude float64, wavelength float64, phase float64, ray int) float64 {
	return amplitude * g.MaxDeflection * math.Sin(2*math.Pi*phase/wavelength)
}
