package quant

import (
	"fmt"
	"math"

	"github.com/fredebaene/qpcr/config"
)

// MeanResult is the technical-replicate aggregate of one sample-target pair.
type MeanResult struct {
	Sample string
	Target string

	// Replicates is the number of usable Cq readings behind the mean.
	Replicates int

	// Dropped is the number of undetermined readings left out.
	Dropped int

	// MeanCq is NaN when no reading was usable.
	MeanCq float64

	// SD is the sample standard deviation, NaN below two replicates.
	SD float64

	// CILow/CIHigh bound the mean Cq at the configured confidence
	// level. NaN below the configured minimum replicate count.
	CILow  float64
	CIHigh float64

	// Scattered is whether SD exceeds the sd-warn threshold.
	Scattered bool
}

// DeltaResult is the normalized expression of one target of interest
// in one sample.
type DeltaResult struct {
	Sample string
	Target string

	// Replicates behind the target's mean Cq.
	Replicates int

	// MeanCq of the target in this sample.
	MeanCq float64

	// ControlCq is the average of the internal control mean Cqs.
	ControlCq float64

	// DeltaCq = MeanCq - ControlCq.
	DeltaCq float64

	// SD of DeltaCq, target and control scatter propagated.
	SD float64

	// RelExpression = 2^-DeltaCq, expression relative to the controls.
	RelExpression float64
}

// FoldResult is the fold change of one target of interest against the
// calibrator. Sample holds the condition group name in group mode.
type FoldResult struct {
	Sample string
	Target string

	// Replicates behind DeltaCq: technical replicates in calibrator
	// mode, biological replicates (samples) in group mode.
	Replicates int

	// DeltaCq of this sample or group.
	DeltaCq float64

	// CalibratorDeltaCq is the delta Cq being subtracted.
	CalibratorDeltaCq float64

	// DeltaDeltaCq = DeltaCq - CalibratorDeltaCq.
	DeltaDeltaCq float64

	// SD of DeltaDeltaCq.
	SD float64

	// FoldChange = 2^-DeltaDeltaCq.
	FoldChange float64

	// FoldLow/FoldHigh bound the fold change at the configured
	// confidence level, from the propagated SD.
	FoldLow  float64
	FoldHigh float64
}

// usableCqs applies the amplification ceiling and the undetermined
// policy to the raw readings of one sample-target pair.
func usableCqs(ms []Measurement, c *config.Config) (values []float64, dropped int) {
	for _, m := range ms {
		if m.Undetermined || m.Cq > c.MaxCq {
			if c.Undetermined == config.UndeterminedCeiling {
				values = append(values, c.MaxCq)
			} else {
				dropped++
			}
			continue
		}
		values = append(values, m.Cq)
	}
	return values, dropped
}

// Means aggregates the technical replicates of every sample-target
// pair: mean, standard deviation, and a Student-t confidence interval
// on the mean Cq. Pairs whose readings were all undetermined keep a
// row with a NaN mean.
func Means(t *Table, c *config.Config) ([]MeanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results := make([]MeanResult, 0, len(t.pairs))
	for _, p := range t.pairs {
		values, dropped := usableCqs(t.replicates(p.sample, p.target), c)
		s := summarize(values)

		r := MeanResult{
			Sample:     p.sample,
			Target:     p.target,
			Replicates: s.n,
			Dropped:    dropped,
			MeanCq:     s.mean,
			SD:         s.sd,
			CILow:      math.NaN(),
			CIHigh:     math.NaN(),
			Scattered:  !math.IsNaN(s.sd) && s.sd > c.SDWarn,
		}

		if s.n >= c.MinReplicates && !math.IsNaN(s.sd) {
			half := tScore(c.Confidence, s.n-1) * s.sd / math.Sqrt(float64(s.n))
			r.CILow = s.mean - half
			r.CIHigh = s.mean + half
		}

		results = append(results, r)
	}

	return results, nil
}

// control is the per-sample average of the internal control mean Cqs.
type control struct {
	mean float64
	sd   float64
}

// DeltaCqs normalizes every target of interest against the internal
// controls: per sample, the mean Cqs of the reference targets are
// averaged and subtracted from each target of interest's mean Cq.
func DeltaCqs(t *Table, references []string, c *config.Config) ([]DeltaResult, error) {
	if len(references) == 0 {
		return nil, ErrNoReferences
	}

	isRef := make(map[string]bool, len(references))
	for _, ref := range references {
		if !t.HasTarget(ref) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReference, ref)
		}
		isRef[ref] = true
	}

	means, err := Means(t, c)
	if err != nil {
		return nil, err
	}
	byPair := make(map[pair]MeanResult, len(means))
	for _, m := range means {
		byPair[pair{m.Sample, m.Target}] = m
	}

	// every sample needs a usable Cq for every internal control
	controls := make(map[string]control, len(t.samples))
	for _, sample := range t.samples {
		refMeans := make([]float64, 0, len(references))
		refSDs := make([]float64, 0, len(references))
		for _, ref := range references {
			m, ok := byPair[pair{sample, ref}]
			if !ok || math.IsNaN(m.MeanCq) {
				return nil, fmt.Errorf("%w: sample %q, control %q", ErrMissingReference, sample, ref)
			}
			refMeans = append(refMeans, m.MeanCq)
			refSDs = append(refSDs, m.SD)
		}

		controls[sample] = control{
			mean: summarize(refMeans).mean,
			sd:   propagateSD(refSDs...) / float64(len(refSDs)),
		}
	}

	results := []DeltaResult{}
	for _, p := range t.pairs {
		if isRef[p.target] {
			continue
		}

		m := byPair[p]
		ctrl := controls[p.sample]
		dCq := m.MeanCq - ctrl.mean

		results = append(results, DeltaResult{
			Sample:        p.sample,
			Target:        p.target,
			Replicates:    m.Replicates,
			MeanCq:        m.MeanCq,
			ControlCq:     ctrl.mean,
			DeltaCq:       dCq,
			SD:            propagateSD(m.SD, ctrl.sd),
			RelExpression: foldChange(dCq),
		})
	}

	return results, nil
}

// FoldChanges computes the delta-delta Cq and fold change of every
// target of interest in every sample, relative to the calibrator
// sample. The calibrator's own rows come out with a fold change of 1.
func FoldChanges(t *Table, references []string, calibrator string, c *config.Config) ([]FoldResult, error) {
	if calibrator == "" {
		return nil, ErrNoCalibrator
	}
	if !t.HasSample(calibrator) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalibrator, calibrator)
	}

	deltas, err := DeltaCqs(t, references, c)
	if err != nil {
		return nil, err
	}

	cal := make(map[string]DeltaResult)
	for _, d := range deltas {
		if d.Sample == calibrator {
			cal[d.Target] = d
		}
	}

	results := make([]FoldResult, 0, len(deltas))
	for _, d := range deltas {
		r := FoldResult{
			Sample:            d.Sample,
			Target:            d.Target,
			Replicates:        d.Replicates,
			DeltaCq:           d.DeltaCq,
			CalibratorDeltaCq: math.NaN(),
			DeltaDeltaCq:      math.NaN(),
			SD:                math.NaN(),
			FoldChange:        math.NaN(),
			FoldLow:           math.NaN(),
			FoldHigh:          math.NaN(),
		}

		if cd, ok := cal[d.Target]; ok {
			r.CalibratorDeltaCq = cd.DeltaCq
			r.DeltaDeltaCq = d.DeltaCq - cd.DeltaCq
			r.SD = propagateSD(d.SD, cd.SD)
			r.FoldChange = foldChange(r.DeltaDeltaCq)

			if df := d.Replicates + cd.Replicates - 2; df >= 1 && !math.IsNaN(r.SD) {
				ts := tScore(c.Confidence, df)
				r.FoldLow = foldChange(r.DeltaDeltaCq + ts*r.SD)
				r.FoldHigh = foldChange(r.DeltaDeltaCq - ts*r.SD)
			}
		}

		results = append(results, r)
	}

	return results, nil
}

// GroupFoldChanges pools samples by their condition group and compares
// each group's mean delta Cq against the control group's, per target.
// Group scatter comes from the biological replicates, not the wells.
func GroupFoldChanges(t *Table, sheet *Sheet, references []string, c *config.Config) ([]FoldResult, error) {
	if sheet == nil || sheet.Control == "" {
		return nil, ErrNoControlGroup
	}
	ctrlGroup := sheet.group(sheet.Control)
	if ctrlGroup == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, sheet.Control)
	}
	for _, g := range sheet.Groups {
		for _, s := range g.Samples {
			if !t.HasSample(s) {
				return nil, fmt.Errorf("%w: %q in group %q", ErrUnknownSample, s, g.Name)
			}
		}
	}

	deltas, err := DeltaCqs(t, references, c)
	if err != nil {
		return nil, err
	}

	byPair := make(map[pair]DeltaResult, len(deltas))
	targets := []string{}
	seenTarget := make(map[string]bool)
	for _, d := range deltas {
		byPair[pair{d.Sample, d.Target}] = d
		if !seenTarget[d.Target] {
			seenTarget[d.Target] = true
			targets = append(targets, d.Target)
		}
	}

	// pool the delta Cqs of each group's member samples
	pooled := make(map[pair]summary)
	for _, g := range sheet.Groups {
		for _, target := range targets {
			values := []float64{}
			for _, sample := range g.Samples {
				if d, ok := byPair[pair{sample, target}]; ok && !math.IsNaN(d.DeltaCq) {
					values = append(values, d.DeltaCq)
				}
			}
			pooled[pair{g.Name, target}] = summarize(values)
		}
	}

	results := []FoldResult{}
	for _, g := range sheet.Groups {
		for _, target := range targets {
			s := pooled[pair{g.Name, target}]
			ctrl := pooled[pair{ctrlGroup.Name, target}]

			r := FoldResult{
				Sample:            g.Name,
				Target:            target,
				Replicates:        s.n,
				DeltaCq:           s.mean,
				CalibratorDeltaCq: ctrl.mean,
				DeltaDeltaCq:      s.mean - ctrl.mean,
				SD:                propagateSD(s.sd, ctrl.sd),
				FoldLow:           math.NaN(),
				FoldHigh:          math.NaN(),
			}
			r.FoldChange = foldChange(r.DeltaDeltaCq)

			if df := s.n + ctrl.n - 2; df >= 1 && !math.IsNaN(r.SD) {
				ts := tScore(c.Confidence, df)
				r.FoldLow = foldChange(r.DeltaDeltaCq + ts*r.SD)
				r.FoldHigh = foldChange(r.DeltaDeltaCq - ts*r.SD)
			}

			results = append(results, r)
		}
	}

	return results, nil
}
