package configuration

type CommandConfig struct {
	// Id of the source the control loop polls for locomotion commands.
	Active  string                `json:"active"`
	Sources []CommandSourceConfig `json:"sources"`
}

type CommandSourceConfig struct {
	ID     string              `json:"id"`
	Static *StaticSourceConfig `json:"static,omitempty"`
	File   *FileSourceConfig   `json:"file,omitempty"`
	Serial *SerialSourceConfig `json:"serial,omitempty"`
	Api    *ApiSourceConfig    `json:"api,omitempty"`
	Shape  *ShapeSourceConfig  `json:"shape,omitempty"`
}

type StaticSourceConfig struct {
	Surge     float64 `json:"surge"`
	Sway      float64 `json:"sway"`
	Pitch     float64 `json:"pitch"`
	Yaw       float64 `json:"yaw"`
	Amplitude float64 `json:"amplitude"`
}

type FileSourceConfig struct {
	Path string `json:"path"`
}

type SerialSourceConfig struct {
	Port string `json:"port"`
	// Unset (0) falls back to 115200.
	BaudRate int `json:"baudRate"`
}

type ApiSourceConfig struct {
}

type ShapeSourceConfig struct {
	// Id of the source whose commands are reshaped.
	Source string `json:"source"`
	// Per-axis transforms, keyed by axis name
	// (surge | sway | pitch | yaw | amplitude).
	Axes map[string]AxisShapeConfig `json:"axes"`
}

type AxisShapeConfig struct {
	// Multiplier applied to the axis value. Unset means 1.0.
	Scale *float64 `json:"scale,omitempty"`
	// Invert flips the sign of the axis value.
	Invert bool `json:"invert"`
	// Exponential bend in [0, 1], 0 keeps the axis linear.
	Expo float64 `json:"expo"`
	// Offset added after scaling.
	Trim float64 `json:"trim"`
}

const (
	AxisSurge     = "surge"
	AxisSway      = "sway"
	AxisPitch     = "pitch"
	AxisYaw       = "yaw"
	AxisAmplitude = "amplitude"
)
