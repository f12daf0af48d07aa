package quant

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeFile drops test input into a temp dir and returns its path.
func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(contents), 0666); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func Test_ReadTable(t *testing.T) {
	in := writeFile(t, "cqs.csv", `well,sample,target,cq
A1,ctrl,GAPDH,20.0
A2,ctrl,GAPDH,20.2
A3,ctrl,IL6,25.1
A4,trt,IL6,Undetermined
`)

	tbl, err := ReadTable(in)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if len(tbl.measurements) != 4 {
		t.Fatalf("got %d measurements, want 4", len(tbl.measurements))
	}
	if tbl.measurements[0].Well != "A1" {
		t.Errorf("well = %q, want A1", tbl.measurements[0].Well)
	}

	und := tbl.measurements[3]
	if !und.Undetermined || !math.IsNaN(und.Cq) {
		t.Errorf("undetermined row mangled: %+v", und)
	}
}

func Test_ReadTableHeaderAliases(t *testing.T) {
	// "gene" and "ct" headers from other instrument exports, any case
	in := writeFile(t, "cqs.csv", `Sample,Gene,CT
ctrl,GAPDH,20.0
`)

	tbl, err := ReadTable(in)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	m := tbl.measurements[0]
	if m.Sample != "ctrl" || m.Target != "GAPDH" || m.Cq != 20.0 {
		t.Errorf("row mangled: %+v", m)
	}
}

func Test_ReadTableErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     error
	}{
		{
			"missing cq column",
			"sample,target\nctrl,GAPDH\n",
			ErrMissingColumn,
		},
		{
			"missing sample column",
			"target,cq\nGAPDH,20.0\n",
			ErrMissingColumn,
		},
		{
			"non-numeric cq",
			"sample,target,cq\nctrl,GAPDH,twenty\n",
			ErrBadCq,
		},
		{
			"negative cq",
			"sample,target,cq\nctrl,GAPDH,-3.0\n",
			ErrNegativeCq,
		},
		{
			"header only",
			"sample,target,cq\n",
			ErrEmptyTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeFile(t, "cqs.csv", tt.contents)
			if _, err := ReadTable(in); !errors.Is(err, tt.want) {
				t.Errorf("ReadTable() = %v, want %v", err, tt.want)
			}
		})
	}
}

func Test_ReadSheet(t *testing.T) {
	in := writeFile(t, "sheet.yaml", `references: [GAPDH, ACTB]
calibrator: u1
control: untreated
groups:
  - name: untreated
    samples: [u1, u2]
  - name: treated
    samples: [t1, t2]
`)

	s, err := ReadSheet(in)
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}

	if len(s.References) != 2 || s.References[0] != "GAPDH" {
		t.Errorf("references = %v", s.References)
	}
	if s.Calibrator != "u1" || s.Control != "untreated" {
		t.Errorf("calibrator = %q control = %q", s.Calibrator, s.Control)
	}
	if g := s.group("treated"); g == nil || len(g.Samples) != 2 {
		t.Errorf("treated group = %+v", s.group("treated"))
	}
	if s.group("mock") != nil {
		t.Error("unknown group should be nil")
	}
}

func Test_parseReferences(t *testing.T) {
	p := inputParser{}

	tests := []struct {
		in   string
		want []string
	}{
		{"GAPDH,ACTB", []string{"GAPDH", "ACTB"}},
		{"GAPDH, ACTB", []string{"GAPDH", "ACTB"}},
		{"GAPDH ACTB", []string{"GAPDH", "ACTB"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := p.parseReferences(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseReferences(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseReferences(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func Test_NewFlagsSheetBackfill(t *testing.T) {
	sheet := writeFile(t, "sheet.yaml", `references: [GAPDH]
calibrator: u1
`)

	fs, c := NewFlags("cqs.csv", "", "", "", sheet, false)

	if c == nil || c.MaxCq != 40 {
		t.Fatalf("config = %+v, want defaults", c)
	}
	if len(fs.references) != 1 || fs.references[0] != "GAPDH" {
		t.Errorf("references = %v, want [GAPDH] from the sheet", fs.references)
	}
	if fs.calibrator != "u1" {
		t.Errorf("calibrator = %q, want u1 from the sheet", fs.calibrator)
	}

	// flags win over the sheet
	fs, _ = NewFlags("cqs.csv", "", "ACTB", "u2", sheet, false)
	if fs.references[0] != "ACTB" || fs.calibrator != "u2" {
		t.Errorf("flags should win: %v, %q", fs.references, fs.calibrator)
	}
}
