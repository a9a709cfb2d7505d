package cmd

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/markusressel/fin2go/cmd/global"
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect servo controllers",
	Long:  `Scans all i2c buses for a PCA9685 servo controller and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.LoadConfig()

		if _, err := host.Init(); err != nil {
			ui.Fatal("Error initializing host drivers: %v", err)
		}

		// probe the configured address if there is one, the factory default otherwise
		address := pca9685.I2CAddr
		pca9685Config := configuration.CurrentConfig.Output.Pca9685
		if pca9685Config != nil && pca9685Config.Address != 0 {
			address = uint16(pca9685Config.Address)
		}

		buses := i2creg.All()
		if len(buses) <= 0 {
			ui.Printfln("No i2c buses found.")
			return
		}

		// === Print detected devices ===
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

		ui.Printfln("> probing for PCA9685 at %s", configuration.HexAddress(address))

		var busRows [][]string
		for _, busRef := range buses {
			stateText := "no response"
			bus, err := busRef.Open()
			if err != nil {
				stateText = "bus error: " + err.Error()
			} else {
				if _, probeErr := pca9685.NewI2C(bus, address); probeErr == nil {
					stateText = "found"
				}
				_ = bus.Close()
			}

			busRows = append(busRows, []string{
				"", busRef.Name, strconv.Itoa(busRef.Number), strings.Join(busRef.Aliases, ", "), stateText,
			})
		}
		var busHeaders = []string{"Buses  ", "Name", "Number", "Aliases", "PCA9685"}

		busTable := table.Table{
			Headers: busHeaders,
			Rows:    busRows,
		}

		var buf bytes.Buffer
		tableErr := busTable.WriteTable(&buf, tableConfig)
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
