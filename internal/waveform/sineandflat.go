package waveform

// SineAndFlatGenerator blends the traveling wave and the flat paddle
// stroke in equal parts.
type SineAndFlatGenerator struct {
	Sine *SineGenerator
	Flat *FlatGenerator
}

func (g *SineAndFlatGenerator) Angle(amplitude float64, wavelength float64, phase float64, ray int) float64 {
	sine := g.Sine.Angle(amplitude, wavelength, phase, ray)
	flat := g.Flat.Angle(amplitude, wavelength, phase, ray)
	return (sine + flat) / 2
}
