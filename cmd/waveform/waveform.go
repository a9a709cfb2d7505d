package waveform

import (
	"github.com/spf13/cobra"
)

var (
	waveformMode string
	previewRay   int
)

var Command = &cobra.Command{
	Use:              "waveform",
	Short:            "Waveform related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&waveformMode,
		"mode", "m",
		"sine",
		"Waveform mode (sine | flat | standing | sineandflat)",
	)
	Command.PersistentFlags().IntVarP(
		&previewRay,
		"ray", "r",
		0,
		"Index of the fin ray along the fin",
	)
}
