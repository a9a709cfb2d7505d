package servo

import (
	"fmt"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/persistence"
	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/markusressel/fin2go/internal/waveform"
	"github.com/spf13/cobra"
)

var servoChannel int

var Command = &cobra.Command{
	Use:              "servo",
	Short:            "Servo related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().IntVarP(
		&servoChannel,
		"channel", "n",
		-1,
		"Output channel of the servo, port rays first, starboard rays above",
	)
}

// loadVerifiedConfig reads, parses and validates the configuration file.
func loadVerifiedConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal(err.Error())
	}
}

// buildMapper assembles the angle to pulse chain from the current
// configuration, with saved neutral trim merged over the configured
// neutrals.
func buildMapper(output servos.PwmOutput) *gait.Mapper {
	config := configuration.CurrentConfig
	raysPerSide := config.Servos.CountPerSide

	pers := persistence.NewPersistence(config.DbPath)
	registry := waveform.NewRegistry(raysPerSide, config.Gait.MaxDeflection)
	limiter := gait.NewRateLimiter(raysPerSide, config.Gait.MaxAngleDelta)

	return gait.NewMapper(gait.MapperParams{
		RaysPerSide:       raysPerSide,
		NeutralsPort:      effectiveNeutrals(pers, gait.SidePort),
		NeutralsStarboard: effectiveNeutrals(pers, gait.SideStarboard),
		MinPulse:          config.Servos.MinPulse,
		MaxPulse:          config.Servos.MaxPulse,
	}, registry, limiter, output)
}

// configuredNeutrals returns the neutral angles of one fin bank as
// configured, padded with zeros to the number of rays.
func configuredNeutrals(side gait.Side) []float64 {
	config := configuration.CurrentConfig

	configured := config.Servos.Neutrals.Port
	if side == gait.SideStarboard {
		configured = config.Servos.Neutrals.Starboard
	}

	neutrals := make([]float64, config.Servos.CountPerSide)
	copy(neutrals, configured)
	return neutrals
}

// savedTrim returns the persisted neutral trim of one fin bank, or nil
// if there is none matching the configured number of rays.
func savedTrim(pers persistence.Persistence, side gait.Side) []float64 {
	saved, err := pers.LoadNeutrals(side)
	if err != nil || len(saved) != configuration.CurrentConfig.Servos.CountPerSide {
		return nil
	}
	return saved
}

// effectiveNeutrals merges saved trim over the configured neutrals.
func effectiveNeutrals(pers persistence.Persistence, side gait.Side) []float64 {
	if saved := savedTrim(pers, side); saved != nil {
		return saved
	}
	return configuredNeutrals(side)
}

// sideAndRay resolves an output channel onto a fin bank and ray index.
func sideAndRay(channel int) (gait.Side, int, error) {
	raysPerSide := configuration.CurrentConfig.Servos.CountPerSide
	if channel < 0 || channel >= 2*raysPerSide {
		return gait.SidePort, 0, fmt.Errorf("no servo on channel %d, options: [0..%d]", channel, 2*raysPerSide-1)
	}
	if channel >= raysPerSide {
		return gait.SideStarboard, channel - raysPerSide, nil
	}
	return gait.SidePort, channel, nil
}
