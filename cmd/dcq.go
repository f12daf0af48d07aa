package cmd

import (
	"github.com/fredebaene/qpcr/internal/quant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dcqCmd normalizes each target of interest against the internal controls.
var dcqCmd = &cobra.Command{
	Use:   "dcq",
	Run:   quant.RunDeltaCq,
	Short: "Normalize targets of interest against the internal controls",
	Long: `Compute the delta Cq of every target of interest in every sample.

The mean Cq values of the internal control targets are averaged per sample
and subtracted from the mean Cq of each target of interest. The relative
expression of a target is two to the negative power of its delta Cq.
Replicate scatter is propagated into the delta Cq standard deviation`,
	SuggestionsMinimumDistance: 2,
	Example:                    "  qpcr dcq -i cqs.csv -r GAPDH,ACTB -o dcq.json",
}

// set flags
func init() {
	dcqCmd.Flags().StringP("in", "i", "", "input file with raw Cq values <CSV>")
	dcqCmd.Flags().StringP("out", "o", "", "output file name, JSON or CSV by extension (default stdout)")
	dcqCmd.Flags().StringP("references", "r", "", "comma-separated internal control (housekeeping) targets")
	dcqCmd.Flags().StringP("sheet", "s", "", "sample sheet with groups, references and calibrator <YAML>")
	dcqCmd.Flags().Float64P("confidence", "l", 0.95, "confidence level for intervals on the mean Cq")

	viper.BindPFlag("confidence", dcqCmd.Flags().Lookup("confidence"))

	RootCmd.AddCommand(dcqCmd)
}
