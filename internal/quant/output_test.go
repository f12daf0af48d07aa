package quant

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fredebaene/qpcr/config"
)

func foldResults(t *testing.T) []FoldResult {
	t.Helper()
	results, err := FoldChanges(testTable(t), []string{"GAPDH"}, "ctrl", config.Default())
	if err != nil {
		t.Fatalf("FoldChanges: %v", err)
	}
	return results
}

func Test_writeJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.json")

	o := newOutput("cqs.csv")
	o.References = []string{"GAPDH"}
	o.Calibrator = "ctrl"
	o.Confidence = 0.95
	o.setFoldChanges(foldResults(t))
	if err := o.write(out); err != nil {
		t.Fatalf("write: %v", err)
	}

	dat, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var parsed Output
	if err := json.Unmarshal(dat, &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if parsed.Input != "cqs.csv" || parsed.Calibrator != "ctrl" {
		t.Errorf("header mangled: %+v", parsed)
	}
	if len(parsed.FoldChanges) != 2 {
		t.Fatalf("got %d fold changes, want 2", len(parsed.FoldChanges))
	}
	if fc := parsed.FoldChanges[1].FoldChange; fc == nil || *fc != 4.0 {
		t.Errorf("trt fold change = %v, want 4", fc)
	}
}

func Test_writeJSONNaN(t *testing.T) {
	// NaN stats must serialize as null, not break the encoder
	out := filepath.Join(t.TempDir(), "means.json")

	o := newOutput("cqs.csv")
	o.setMeans([]MeanResult{{
		Sample: "s1", Target: "IL6", Replicates: 0, Dropped: 2,
		MeanCq: math.NaN(), SD: math.NaN(), CILow: math.NaN(), CIHigh: math.NaN(),
	}})
	if err := o.write(out); err != nil {
		t.Fatalf("write: %v", err)
	}

	dat, _ := os.ReadFile(out)
	var parsed Output
	if err := json.Unmarshal(dat, &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.Means[0].MeanCq != nil {
		t.Errorf("NaN mean = %v, want null", parsed.Means[0].MeanCq)
	}
}

func Test_writeCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.csv")

	o := newOutput("cqs.csv")
	o.setFoldChanges(foldResults(t))
	if err := o.write(out); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][0] != "sample" || records[0][7] != "fold_change" {
		t.Errorf("header mangled: %v", records[0])
	}
	if records[2][0] != "trt" || records[2][7] != "4" {
		t.Errorf("trt row mangled: %v", records[2])
	}
}

func Test_writeTable(t *testing.T) {
	o := newOutput("cqs.csv")
	o.setFoldChanges(foldResults(t))

	var buf bytes.Buffer
	if err := o.writeTable(&buf); err != nil {
		t.Fatalf("writeTable: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "sample") {
		t.Errorf("header mangled: %q", lines[0])
	}
}

func Test_opt(t *testing.T) {
	if opt(math.NaN()) != nil {
		t.Error("opt(NaN) should be nil")
	}
	if v := opt(1.23456); v == nil || *v != 1.235 {
		t.Errorf("opt(1.23456) = %v, want 1.235", v)
	}
}
