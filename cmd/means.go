package cmd

import (
	"github.com/fredebaene/qpcr/internal/quant"
	"github.com/spf13/cobra"
)

// meansCmd aggregates the technical replicates of each sample-target pair.
var meansCmd = &cobra.Command{
	Use:   "means",
	Run:   quant.RunMeans,
	Short: "Average the technical replicates of every sample-target pair",
	Long: `Compute the mean and standard deviation of the technical replicates
for every sample-target combination in a table of raw Cq values.

Rows whose Cq is undetermined are dropped or substituted with the
amplification ceiling, depending on the 'undetermined' setting. Pairs with
enough usable replicates also get a Student-t confidence interval on the
mean Cq`,
	SuggestionsMinimumDistance: 2,
	Example:                    "  qpcr means -i cqs.csv -o means.csv",
}

// set flags
func init() {
	meansCmd.Flags().StringP("in", "i", "", "input file with raw Cq values <CSV>")
	meansCmd.Flags().StringP("out", "o", "", "output file name, JSON or CSV by extension (default stdout)")

	RootCmd.AddCommand(meansCmd)
}
