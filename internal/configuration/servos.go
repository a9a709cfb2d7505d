package configuration

type ServoConfig struct {
	// Number of servos on each fin bank. Port servos occupy output
	// channels [0, countPerSide), starboard servos the next block.
	CountPerSide int `json:"countPerSide"`
	// Pulse values (in PWM counts) corresponding to -90 and +90 degrees.
	MinPulse int `json:"minPulse"`
	MaxPulse int `json:"maxPulse"`
	// Mechanical neutral offsets in degrees, one entry per servo.
	// An empty list means all neutrals are zero.
	Neutrals NeutralConfig `json:"neutrals"`
}

type NeutralConfig struct {
	Port      []float64 `json:"port"`
	Starboard []float64 `json:"starboard"`
}
