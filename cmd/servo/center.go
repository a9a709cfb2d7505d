package servo

import (
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/spf13/cobra"
)

var centerCmd = &cobra.Command{
	Use:   "center",
	Short: "Drive all servos to their neutral position",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadVerifiedConfig()

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
		for _, side := range []gait.Side{gait.SidePort, gait.SideStarboard} {
			for ray := 0; ray < mapper.RaysPerSide(); ray++ {
				channel := mapper.Channel(side, ray)
				pulse := mapper.PulseForAngle(mapper.Neutral(side, ray), side)
				if err := output.SetPulse(channel, pulse); err != nil {
					return err
				}
			}
		}

		ui.Success("All fin rays centered.")
		return nil
	},
}

func init() {
	Command.AddCommand(centerCmd)
}
