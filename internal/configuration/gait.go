package configuration

type GaitConfig struct {
	// Largest advance (milliseconds) either phase clock may make in a single cycle.
	MaxTimeIncrement float64 `json:"maxTimeIncrement"`
	// Largest change (degrees) a single fin ray may make in a single cycle.
	MaxAngleDelta float64 `json:"maxAngleDelta"`
	// Wave period (milliseconds) used while swimming.
	Wavelength float64 `json:"wavelength"`
	// Wave period (milliseconds) used by the startup settle routine.
	SettleWavelength float64 `json:"settleWavelength"`
	// Fin ray deflection (degrees) produced by amplitude 1.0.
	MaxDeflection float64 `json:"maxDeflection"`
}
