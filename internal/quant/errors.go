package quant

import "errors"

// Sentinel errors for the quant package.
// Use errors.Is to check: errors.Is(err, quant.ErrMissingColumn)
var (
	ErrEmptyTable        = errors.New("quant: no Cq readings in input")
	ErrMissingColumn     = errors.New("quant: required column missing from input")
	ErrBadCq             = errors.New("quant: Cq value is not a number")
	ErrNegativeCq        = errors.New("quant: Cq value is negative")
	ErrNoReferences      = errors.New("quant: no internal control targets chosen")
	ErrUnknownReference  = errors.New("quant: internal control target not in input")
	ErrMissingReference  = errors.New("quant: sample has no usable internal control Cq")
	ErrUnknownCalibrator = errors.New("quant: calibrator sample not in input")
	ErrNoCalibrator      = errors.New("quant: no calibrator sample chosen")
	ErrNoControlGroup    = errors.New("quant: sample sheet names no control group")
	ErrUnknownGroup      = errors.New("quant: control group not in sample sheet")
	ErrUnknownSample     = errors.New("quant: sample sheet names a sample not in input")
)
