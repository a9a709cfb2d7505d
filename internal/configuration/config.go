package configuration

import (
	"os"
	"time"

	"github.com/markusressel/fin2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Time interval between two actuation cycles.
	TickRate time.Duration `json:"tickRate"`

	// Number of zero-amplitude cycles driven on startup to walk
	// all fin rays from their power-on position to neutral.
	SettleTicks int           `json:"settleTicks"`
	SettleDelay time.Duration `json:"settleDelay"`

	Gait   GaitConfig   `json:"gait"`
	Servos ServoConfig  `json:"servos"`
	Output OutputConfig `json:"output"`

	Command CommandConfig `json:"command"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fin2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fin2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/fin2go/fin2go.db")
	viper.SetDefault("TickRate", 20*time.Millisecond)
	viper.SetDefault("SettleTicks", 30)
	viper.SetDefault("SettleDelay", 100*time.Millisecond)

	viper.SetDefault("gait.MaxTimeIncrement", 20.0)
	viper.SetDefault("gait.MaxAngleDelta", 5.0)
	viper.SetDefault("gait.Wavelength", 480.0)
	viper.SetDefault("gait.SettleWavelength", 240.0)
	viper.SetDefault("gait.MaxDeflection", 40.0)

	viper.SetDefault("servos.CountPerSide", 5)
	viper.SetDefault("servos.MinPulse", 150)
	viper.SetDefault("servos.MaxPulse", 600)

	viper.SetDefault("command.sources", []CommandSourceConfig{})

	viper.SetDefault("statistics.Port", 9000)
	viper.SetDefault("api.Host", "localhost")
	viper.SetDefault("api.Port", 9001)
	viper.SetDefault("profiling.Host", "localhost")
	viper.SetDefault("profiling.Port", 6060)
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	err := readInConfig()
	if err != nil {
		ui.Fatal("Error reading config file, %s", err)
	}
	return GetFilePath()
}

// readInConfig reads and parses the config file
func readInConfig() error {
	return viper.ReadInConfig()
}

// GetFilePath this is only populated _after_ readInConfig()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			hexAddressHookFunc(),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
