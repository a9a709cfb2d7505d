package servo

import (
	"fmt"
	"strconv"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/persistence"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/spf13/cobra"
)

var trimReset bool

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Adjust and persist the neutral trim of a servo",
	Long: `Overrides the neutral angle of a single fin ray and stores it in the
database. Saved trim takes precedence over the configured neutrals
whenever the daemon starts. Use --reset to discard all saved trim.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadVerifiedConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)

		if trimReset {
			if err := pers.DeleteNeutrals(gait.SidePort); err != nil {
				return err
			}
			if err := pers.DeleteNeutrals(gait.SideStarboard); err != nil {
				return err
			}
			ui.Success("Neutral trim cleared.")
			return nil
		}

		if len(args) < 1 {
			return fmt.Errorf("requires an angle argument or --reset")
		}
		angle, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}

		side, ray, err := sideAndRay(servoChannel)
		if err != nil {
			return err
		}

		neutrals := effectiveNeutrals(pers, side)
		neutrals[ray] = angle
		if err := pers.SaveNeutrals(side, neutrals); err != nil {
			return err
		}

		ui.Success("Saved neutral trim of channel %d (%s ray %d): %.1f degrees", servoChannel, side, ray, angle)
		return nil
	},
}

func init() {
	trimCmd.Flags().BoolVarP(&trimReset, "reset", "", false, "Discard all saved neutral trim")
	Command.AddCommand(trimCmd)
}
