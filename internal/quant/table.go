package quant

import (
	"fmt"
)

// Measurement is one raw Cq reading for a sample-target pair. Cq is NaN
// when the instrument reported no amplification (undetermined).
type Measurement struct {
	// Sample is the biological/experimental unit the reading came from.
	Sample string

	// Target is the assayed gene.
	Target string

	// Well is the instrument well the reading came from (optional).
	Well string

	// Cq is the quantification cycle. NaN when Undetermined.
	Cq float64

	// Undetermined is whether the reading never crossed the detection
	// threshold. Never encoded as a Cq of zero.
	Undetermined bool
}

// pair is a distinct sample-target combination.
type pair struct {
	sample string
	target string
}

// Table is an immutable set of raw Cq readings. Samples, targets and
// pairs keep the order they first appear in the input.
type Table struct {
	measurements []Measurement

	pairs   []pair
	byPair  map[pair][]int
	samples []string
	targets []string
}

// NewTable indexes a slice of measurements into a Table.
func NewTable(measurements []Measurement) (*Table, error) {
	if len(measurements) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		measurements: measurements,
		byPair:       make(map[pair][]int),
	}

	seenSample := make(map[string]bool)
	seenTarget := make(map[string]bool)
	for i, m := range measurements {
		if !m.Undetermined && m.Cq < 0 {
			return nil, fmt.Errorf("%w: %s/%s cq=%f", ErrNegativeCq, m.Sample, m.Target, m.Cq)
		}

		p := pair{m.Sample, m.Target}
		if _, seen := t.byPair[p]; !seen {
			t.pairs = append(t.pairs, p)
		}
		t.byPair[p] = append(t.byPair[p], i)

		if !seenSample[m.Sample] {
			seenSample[m.Sample] = true
			t.samples = append(t.samples, m.Sample)
		}
		if !seenTarget[m.Target] {
			seenTarget[m.Target] = true
			t.targets = append(t.targets, m.Target)
		}
	}

	return t, nil
}

// Samples returns the distinct sample names in input order.
func (t *Table) Samples() []string {
	return t.samples
}

// Targets returns the distinct target names in input order.
func (t *Table) Targets() []string {
	return t.targets
}

// HasSample returns whether the table holds any reading for the sample.
func (t *Table) HasSample(sample string) bool {
	for _, s := range t.samples {
		if s == sample {
			return true
		}
	}
	return false
}

// HasTarget returns whether the table holds any reading for the target.
func (t *Table) HasTarget(target string) bool {
	for _, tg := range t.targets {
		if tg == target {
			return true
		}
	}
	return false
}

// replicates returns the measurements of one sample-target pair.
func (t *Table) replicates(sample, target string) []Measurement {
	idx := t.byPair[pair{sample, target}]
	ms := make([]Measurement, 0, len(idx))
	for _, i := range idx {
		ms = append(ms, t.measurements[i])
	}
	return ms
}
