package waveform

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/fin2go/cmd/global"
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/markusressel/fin2go/internal/waveform"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"golang.org/x/exp/slices"
)

const previewSamples = 100

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Plot one period of a waveform mode to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.Fatal(err.Error())
		}

		mode := waveform.Mode(waveformMode)
		if !slices.Contains(waveform.Modes(), mode) {
			return fmt.Errorf("unknown waveform mode: %s, options: %v", waveformMode, waveform.Modes())
		}

		config := configuration.CurrentConfig
		raysPerSide := config.Servos.CountPerSide
		if previewRay < 0 || previewRay >= raysPerSide {
			return fmt.Errorf("no fin ray with index %d, options: [0..%d]", previewRay, raysPerSide-1)
		}

		registry := waveform.NewRegistry(raysPerSide, config.Gait.MaxDeflection)
		wavelength := config.Gait.Wavelength

		// print table
		tab := table.Table{
			Headers: []string{"Mode", "Ray", "Wavelength", "Max Deflection"},
			Rows: [][]string{
				{
					string(mode),
					strconv.Itoa(previewRay),
					strconv.FormatFloat(wavelength, 'f', 0, 64),
					strconv.FormatFloat(config.Gait.MaxDeflection, 'f', 0, 64),
				},
			},
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		tableString := buf.String()
		ui.Printfln(tableString)

		// one full period at full amplitude
		values := make([]float64, 0, previewSamples+1)
		for i := 0; i <= previewSamples; i++ {
			phase := wavelength * float64(i) / float64(previewSamples)
			values = append(values, registry.Angle(mode, 1.0, wavelength, phase, previewRay))
		}

		caption := "deflection (deg) / phase"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(previewCmd)
}
