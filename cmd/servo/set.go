package servo

import (
	"strconv"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Drive a single servo to the given deflection angle in degrees",
	Long: `Maps the given angle onto a pulse width the same way the control loop
does, including the neutral offset of the ray and the starboard mirror,
and writes it to the output. The rate limiter is not involved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}

		loadVerifiedConfig()

		side, ray, err := sideAndRay(servoChannel)
		if err != nil {
			return err
		}

		config := configuration.CurrentConfig
		output, err := servos.NewPwmOutput(config.Output, 2*config.Servos.CountPerSide)
		if err != nil {
			return err
		}
		if err := output.Init(); err != nil {
			return err
		}
		defer func() {
			_ = output.Close()
		}()

		mapper := buildMapper(output)
		pulse := mapper.PulseForAngle(angle+mapper.Neutral(side, ray), side)

		ui.Info("Driving channel %d (%s ray %d) to %.1f degrees, pulse %d", servoChannel, side, ray, angle, pulse)
		return output.SetPulse(servoChannel, pulse)
	},
}

func init() {
	Command.AddCommand(setCmd)
}
