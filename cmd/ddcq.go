package cmd

import (
	"github.com/fredebaene/qpcr/internal/quant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ddcqCmd computes fold changes relative to a calibrator sample or group.
var ddcqCmd = &cobra.Command{
	Use:   "ddcq",
	Run:   quant.RunDeltaDeltaCq,
	Short: "Compute fold changes relative to a calibrator (delta-delta Cq)",
	Long: `Compute the delta-delta Cq and fold change of every target of interest.

By default the delta Cq of the calibrator sample is subtracted from the
delta Cq of every other sample, per target. With --groups, samples are
pooled by their condition group from the sample sheet instead: the mean
delta Cq of the control group is subtracted from the mean delta Cq of each
treatment group. Fold change is two to the negative power of the
delta-delta Cq, reported with a confidence interval from the propagated
standard deviation`,
	SuggestionsMinimumDistance: 2,
	Example:                    "  qpcr ddcq -i cqs.csv -r GAPDH -c untreated_1 -o results.json",
}

// set flags
func init() {
	ddcqCmd.Flags().StringP("in", "i", "", "input file with raw Cq values <CSV>")
	ddcqCmd.Flags().StringP("out", "o", "", "output file name, JSON or CSV by extension (default stdout)")
	ddcqCmd.Flags().StringP("references", "r", "", "comma-separated internal control (housekeeping) targets")
	ddcqCmd.Flags().StringP("calibrator", "c", "", "sample all other samples are compared against")
	ddcqCmd.Flags().StringP("sheet", "s", "", "sample sheet with groups, references and calibrator <YAML>")
	ddcqCmd.Flags().BoolP("groups", "g", false, "compare condition groups from the sample sheet instead of samples")
	ddcqCmd.Flags().Float64P("confidence", "l", 0.95, "confidence level for the fold change interval")

	viper.BindPFlag("confidence", ddcqCmd.Flags().Lookup("confidence"))

	RootCmd.AddCommand(ddcqCmd)
}
