package configuration

type OutputConfig struct {
	Pca9685 *Pca9685OutputConfig `json:"pca9685,omitempty"`
	File    *FileOutputConfig    `json:"file,omitempty"`
	Cmd     *CmdOutputConfig     `json:"cmd,omitempty"`
}

type Pca9685OutputConfig struct {
	// I2C bus name, e.g. "1" or "/dev/i2c-1". Empty selects the first available bus.
	Bus string `json:"bus"`
	// Device address on the bus. Unset (0) falls back to 0x40.
	Address HexAddress `json:"address"`
	// PWM refresh rate in Hz. Unset (0) falls back to 50.
	Frequency int `json:"frequency"`
}

type FileOutputConfig struct {
	// Directory that receives one pwm<channel> file per output channel.
	Path string `json:"path"`
}

type CmdOutputConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
