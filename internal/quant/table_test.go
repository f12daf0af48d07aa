package quant

import (
	"errors"
	"math"
	"testing"
)

func Test_NewTable(t *testing.T) {
	tbl, err := NewTable([]Measurement{
		{Sample: "ctrl", Target: "GAPDH", Cq: 20.0},
		{Sample: "ctrl", Target: "IL6", Cq: 25.0},
		{Sample: "trt", Target: "GAPDH", Cq: 20.1},
		{Sample: "ctrl", Target: "GAPDH", Cq: 20.2},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	wantSamples := []string{"ctrl", "trt"}
	for i, s := range tbl.Samples() {
		if s != wantSamples[i] {
			t.Errorf("sample %d = %q, want %q", i, s, wantSamples[i])
		}
	}

	wantTargets := []string{"GAPDH", "IL6"}
	for i, tg := range tbl.Targets() {
		if tg != wantTargets[i] {
			t.Errorf("target %d = %q, want %q", i, tg, wantTargets[i])
		}
	}

	if reps := tbl.replicates("ctrl", "GAPDH"); len(reps) != 2 {
		t.Errorf("ctrl/GAPDH replicates = %d, want 2", len(reps))
	}
	if !tbl.HasSample("trt") || tbl.HasSample("missing") {
		t.Error("HasSample misreported")
	}
	if !tbl.HasTarget("IL6") || tbl.HasTarget("missing") {
		t.Error("HasTarget misreported")
	}
}

func Test_NewTableEmpty(t *testing.T) {
	if _, err := NewTable(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("NewTable(nil) = %v, want ErrEmptyTable", err)
	}
}

func Test_NewTableNegativeCq(t *testing.T) {
	_, err := NewTable([]Measurement{
		{Sample: "ctrl", Target: "GAPDH", Cq: -1.5},
	})
	if !errors.Is(err, ErrNegativeCq) {
		t.Errorf("negative Cq = %v, want ErrNegativeCq", err)
	}
}

func Test_NewTableUndetermined(t *testing.T) {
	// an undetermined reading is a NaN Cq, never a zero
	tbl, err := NewTable([]Measurement{
		{Sample: "ctrl", Target: "GAPDH", Cq: math.NaN(), Undetermined: true},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	reps := tbl.replicates("ctrl", "GAPDH")
	if len(reps) != 1 || !reps[0].Undetermined || !math.IsNaN(reps[0].Cq) {
		t.Errorf("undetermined replicate mangled: %+v", reps)
	}
}
