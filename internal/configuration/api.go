package configuration

// ApiConfig configures the REST service used to inspect and
// steer the daemon at runtime.
type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}
