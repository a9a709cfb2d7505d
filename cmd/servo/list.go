package servo

import (
	"bytes"
	"strconv"

	"github.com/markusressel/fin2go/cmd/global"
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/persistence"
	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print an overview of all configured servos",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadVerifiedConfig()

		config := configuration.CurrentConfig
		output, err := servos.NewPwmOutput(config.Output, 2*config.Servos.CountPerSide)
		if err != nil {
			return err
		}
		mapper := buildMapper(output)
		pers := persistence.NewPersistence(config.DbPath)

		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		ui.Printfln("> %s output, %d channels", output.GetId(), output.Channels())

		var servoRows [][]string
		for _, side := range []gait.Side{gait.SidePort, gait.SideStarboard} {
			configured := configuredNeutrals(side)
			trim := savedTrim(pers, side)

			for ray := 0; ray < mapper.RaysPerSide(); ray++ {
				trimText := "N/A"
				if trim != nil {
					trimText = strconv.FormatFloat(trim[ray], 'f', 1, 64)
				}

				// pulse at the effective neutral angle
				neutral := mapper.Neutral(side, ray)
				pulse := mapper.PulseForAngle(neutral, side)

				servoRows = append(servoRows, []string{
					"",
					strconv.Itoa(mapper.Channel(side, ray)),
					side.String(),
					strconv.Itoa(ray),
					strconv.FormatFloat(configured[ray], 'f', 1, 64),
					trimText,
					strconv.Itoa(pulse),
				})
			}
		}
		var servoHeaders = []string{"Servos ", "Channel", "Side", "Ray", "Neutral", "Trim", "Pulse"}

		servoTable := table.Table{
			Headers: servoHeaders,
			Rows:    servoRows,
		}

		var buf bytes.Buffer
		tableErr := servoTable.WriteTable(&buf, tableConfig)
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
