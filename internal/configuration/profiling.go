package configuration

// ProfilingConfig configures the pprof endpoint used to inspect
// control loop timing on the vehicle.
type ProfilingConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port,omitempty"`
}
