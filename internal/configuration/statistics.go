package configuration

// StatisticsConfig configures the prometheus metrics endpoint.
type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}
