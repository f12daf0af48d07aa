// Package quant implements relative quantification of qPCR data with
// the comparative Ct method of Livak & Schmittgen: technical replicates
// are averaged per sample-target pair, targets of interest are
// normalized against internal control targets (delta Cq), and
// expression is compared against a calibrator sample or control group
// as a fold change, 2^-(delta-delta Cq).
package quant

import (
	"github.com/fredebaene/qpcr/config"
	"github.com/spf13/cobra"
)

// RunMeans is a cobra runner for the means command.
func RunMeans(cmd *cobra.Command, args []string) {
	fs, c := parseCmdFlags(cmd)
	if _, err := Aggregate(fs, c); err != nil {
		stderr.Fatal(err)
	}
}

// RunDeltaCq is a cobra runner for the dcq command.
func RunDeltaCq(cmd *cobra.Command, args []string) {
	fs, c := parseCmdFlags(cmd)
	if _, err := Normalize(fs, c); err != nil {
		stderr.Fatal(err)
	}
}

// RunDeltaDeltaCq is a cobra runner for the ddcq command.
func RunDeltaDeltaCq(cmd *cobra.Command, args []string) {
	fs, c := parseCmdFlags(cmd)
	if _, err := Quantify(fs, c); err != nil {
		stderr.Fatal(err)
	}
}

// Aggregate averages the technical replicates of every sample-target
// pair in the input table and writes the results to the output flag.
func Aggregate(fs *Flags, c *config.Config) ([]MeanResult, error) {
	t, err := ReadTable(fs.in)
	if err != nil {
		return nil, err
	}

	results, err := Means(t, c)
	if err != nil {
		return nil, err
	}

	out := newOutput(fs.in)
	out.Confidence = c.Confidence
	out.setMeans(results)
	return results, out.write(fs.out)
}

// Normalize computes the delta Cq of every target of interest in the
// input table and writes the results to the output flag.
func Normalize(fs *Flags, c *config.Config) ([]DeltaResult, error) {
	t, err := ReadTable(fs.in)
	if err != nil {
		return nil, err
	}

	results, err := DeltaCqs(t, fs.references, c)
	if err != nil {
		return nil, err
	}

	out := newOutput(fs.in)
	out.References = fs.references
	out.setDeltaCqs(results)
	return results, out.write(fs.out)
}

// Quantify computes fold changes against the calibrator sample, or
// against the control group with the groups flag, and writes the
// results to the output flag.
func Quantify(fs *Flags, c *config.Config) ([]FoldResult, error) {
	t, err := ReadTable(fs.in)
	if err != nil {
		return nil, err
	}

	var results []FoldResult
	if fs.groups {
		results, err = GroupFoldChanges(t, fs.sheet, fs.references, c)
	} else {
		results, err = FoldChanges(t, fs.references, fs.calibrator, c)
	}
	if err != nil {
		return nil, err
	}

	out := newOutput(fs.in)
	out.References = fs.references
	out.Confidence = c.Confidence
	if fs.groups {
		out.Grouped = true
		out.Calibrator = fs.sheet.Control
	} else {
		out.Calibrator = fs.calibrator
	}
	out.setFoldChanges(results)
	return results, out.write(fs.out)
}
