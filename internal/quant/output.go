package quant

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// Output is the document written after an analysis run. Only the
// section for the command that ran is filled in.
type Output struct {
	// Time, ex: "2026-01-01 20:41:00"
	Time string `json:"time"`

	// Input is the path of the Cq table that was analyzed
	Input string `json:"input"`

	// References are the internal control targets used for normalization
	References []string `json:"references,omitempty"`

	// Calibrator sample (or control group, with Grouped) compared against
	Calibrator string `json:"calibrator,omitempty"`

	// Grouped is whether condition groups were compared instead of samples
	Grouped bool `json:"grouped,omitempty"`

	// Confidence level of the reported intervals
	Confidence float64 `json:"confidence,omitempty"`

	// Means are replicate aggregates (qpcr means)
	Means []meanRow `json:"means,omitempty"`

	// DeltaCqs are normalized expressions (qpcr dcq)
	DeltaCqs []deltaRow `json:"deltaCqs,omitempty"`

	// FoldChanges are expressions relative to the calibrator (qpcr ddcq)
	FoldChanges []foldRow `json:"foldChanges,omitempty"`
}

// meanRow is the serialized form of a MeanResult. Missing values are
// null in JSON and NA in CSV, never NaN.
type meanRow struct {
	Sample     string   `json:"sample"`
	Target     string   `json:"target"`
	Replicates int      `json:"replicates"`
	Dropped    int      `json:"dropped,omitempty"`
	MeanCq     *float64 `json:"meanCq"`
	SD         *float64 `json:"sd"`
	CILow      *float64 `json:"ciLow"`
	CIHigh     *float64 `json:"ciHigh"`
	Scattered  bool     `json:"scattered,omitempty"`
}

// deltaRow is the serialized form of a DeltaResult.
type deltaRow struct {
	Sample        string   `json:"sample"`
	Target        string   `json:"target"`
	Replicates    int      `json:"replicates"`
	MeanCq        *float64 `json:"meanCq"`
	ControlCq     *float64 `json:"controlCq"`
	DeltaCq       *float64 `json:"deltaCq"`
	SD            *float64 `json:"sd"`
	RelExpression *float64 `json:"relExpression"`
}

// foldRow is the serialized form of a FoldResult.
type foldRow struct {
	Sample            string   `json:"sample"`
	Target            string   `json:"target"`
	Replicates        int      `json:"replicates"`
	DeltaCq           *float64 `json:"deltaCq"`
	CalibratorDeltaCq *float64 `json:"calibratorDeltaCq"`
	DeltaDeltaCq      *float64 `json:"deltaDeltaCq"`
	SD                *float64 `json:"sd"`
	FoldChange        *float64 `json:"foldChange"`
	FoldLow           *float64 `json:"foldLow"`
	FoldHigh          *float64 `json:"foldHigh"`
}

// opt rounds a stat to three decimal places and turns NaN into nil so
// results serialize as null/NA rather than failing on NaN.
func opt(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	rounded, err := strconv.ParseFloat(fmt.Sprintf("%.3f", f), 64)
	if err != nil {
		return &f
	}
	return &rounded
}

// newOutput stamps an Output the same way repp stamps its assembly
// results, with same format as log.Println.
func newOutput(input string) *Output {
	t := time.Now()
	return &Output{
		Time: fmt.Sprintf(
			"%d/%02d/%02d %02d:%02d:%02d",
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		),
		Input: input,
	}
}

func (o *Output) setMeans(results []MeanResult) {
	for _, r := range results {
		o.Means = append(o.Means, meanRow{
			Sample:     r.Sample,
			Target:     r.Target,
			Replicates: r.Replicates,
			Dropped:    r.Dropped,
			MeanCq:     opt(r.MeanCq),
			SD:         opt(r.SD),
			CILow:      opt(r.CILow),
			CIHigh:     opt(r.CIHigh),
			Scattered:  r.Scattered,
		})
	}
}

func (o *Output) setDeltaCqs(results []DeltaResult) {
	for _, r := range results {
		o.DeltaCqs = append(o.DeltaCqs, deltaRow{
			Sample:        r.Sample,
			Target:        r.Target,
			Replicates:    r.Replicates,
			MeanCq:        opt(r.MeanCq),
			ControlCq:     opt(r.ControlCq),
			DeltaCq:       opt(r.DeltaCq),
			SD:            opt(r.SD),
			RelExpression: opt(r.RelExpression),
		})
	}
}

func (o *Output) setFoldChanges(results []FoldResult) {
	for _, r := range results {
		o.FoldChanges = append(o.FoldChanges, foldRow{
			Sample:            r.Sample,
			Target:            r.Target,
			Replicates:        r.Replicates,
			DeltaCq:           opt(r.DeltaCq),
			CalibratorDeltaCq: opt(r.CalibratorDeltaCq),
			DeltaDeltaCq:      opt(r.DeltaDeltaCq),
			SD:                opt(r.SD),
			FoldChange:        opt(r.FoldChange),
			FoldLow:           opt(r.FoldLow),
			FoldHigh:          opt(r.FoldHigh),
		})
	}
}

// write sends the output to the filename requested: pretty JSON by
// default, CSV/TSV when the extension asks for it, a table on stdout
// when no filename was given.
func (o *Output) write(filename string) error {
	if filename == "" {
		return o.writeTable(os.Stdout)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return o.writeCSV(filename, ',')
	case ".tsv":
		return o.writeCSV(filename, '\t')
	default:
		return o.writeJSON(filename)
	}
}

// writeJSON writes the output as indented JSON.
func (o *Output) writeJSON(filename string) error {
	output, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return fmt.Errorf("failed to write the output: %w", err)
	}

	return nil
}

// header and records flatten whichever section is filled in.
func (o *Output) records() (header []string, rows [][]string) {
	f := func(p *float64) string {
		if p == nil {
			return "NA"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}

	switch {
	case o.Means != nil:
		header = []string{"sample", "target", "replicates", "dropped", "mean_cq", "sd", "ci_low", "ci_high", "scattered"}
		for _, r := range o.Means {
			rows = append(rows, []string{
				r.Sample, r.Target,
				strconv.Itoa(r.Replicates), strconv.Itoa(r.Dropped),
				f(r.MeanCq), f(r.SD), f(r.CILow), f(r.CIHigh),
				strconv.FormatBool(r.Scattered),
			})
		}
	case o.DeltaCqs != nil:
		header = []string{"sample", "target", "replicates", "mean_cq", "control_cq", "d_cq", "sd", "rel_expression"}
		for _, r := range o.DeltaCqs {
			rows = append(rows, []string{
				r.Sample, r.Target, strconv.Itoa(r.Replicates),
				f(r.MeanCq), f(r.ControlCq), f(r.DeltaCq), f(r.SD), f(r.RelExpression),
			})
		}
	case o.FoldChanges != nil:
		header = []string{"sample", "target", "replicates", "d_cq", "calibrator_d_cq", "dd_cq", "sd", "fold_change", "fold_low", "fold_high"}
		for _, r := range o.FoldChanges {
			rows = append(rows, []string{
				r.Sample, r.Target, strconv.Itoa(r.Replicates),
				f(r.DeltaCq), f(r.CalibratorDeltaCq), f(r.DeltaDeltaCq), f(r.SD),
				f(r.FoldChange), f(r.FoldLow), f(r.FoldHigh),
			})
		}
	}

	return header, rows
}

// writeCSV writes the filled in section as delimited rows.
func (o *Output) writeCSV(filename string, delim rune) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create the output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = delim

	header, rows := o.records()
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write the output: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write the output: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// writeTable prints the filled in section as an aligned table.
func (o *Output) writeTable(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	header, rows := o.records()
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}
