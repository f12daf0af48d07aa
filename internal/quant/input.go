package quant

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fredebaene/qpcr/config"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra flags like "in", "out", "references", etc
// that are used by multiple commands.
type Flags struct {
	// the name of the file to read the raw Cq values from
	in string

	// the name of the file to write the results to ("" means stdout)
	out string

	// the internal control (housekeeping) targets
	references []string

	// the sample all other samples are compared against
	calibrator string

	// the sample sheet, if one was passed
	sheet *Sheet

	// whether to compare condition groups rather than single samples
	groups bool
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, out, references, calibrator, sheetPath string, groups bool) (*Flags, *config.Config) {
	p := inputParser{}

	var sheet *Sheet
	if sheetPath != "" {
		var err error
		if sheet, err = ReadSheet(sheetPath); err != nil {
			stderr.Fatal(err)
		}
	}

	fs := &Flags{
		in:         in,
		out:        out,
		references: p.parseReferences(references),
		calibrator: calibrator,
		sheet:      sheet,
		groups:     groups,
	}
	fs.fillFromSheet()

	return fs, config.Default()
}

// parseCmdFlags gathers the in path, out path, etc from a cobra cmd object.
// returns Flags and a Config struct for the quant commands.
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	var err error
	fs := &Flags{} // parsed flags
	p := inputParser{}
	c := config.New()

	if err = c.Validate(); err != nil {
		stderr.Fatal(err)
	}

	if fs.in, err = cmd.Flags().GetString("in"); fs.in == "" || err != nil {
		if fs.in, err = p.guessInput(); err != nil {
			// no input file specified and none found
			cmd.Help()
			stderr.Fatal(err)
		}
	}

	if fs.out, err = cmd.Flags().GetString("out"); err != nil {
		fs.out = "" // write to stdout
	}

	if sheetPath, err := cmd.Flags().GetString("sheet"); err == nil && sheetPath != "" {
		if fs.sheet, err = ReadSheet(sheetPath); err != nil {
			stderr.Fatal(err)
		}
	}

	if refs, err := cmd.Flags().GetString("references"); err == nil {
		fs.references = p.parseReferences(refs)
	}

	if calibrator, err := cmd.Flags().GetString("calibrator"); err == nil {
		fs.calibrator = calibrator
	}

	if groups, err := cmd.Flags().GetBool("groups"); err == nil {
		fs.groups = groups
	}

	// flags win over the sample sheet
	fs.fillFromSheet()

	return fs, c
}

// fillFromSheet backfills references and calibrator from the sample
// sheet when they were not passed as flags.
func (fs *Flags) fillFromSheet() {
	if fs.sheet == nil {
		return
	}
	if len(fs.references) == 0 {
		fs.references = fs.sheet.References
	}
	if fs.calibrator == "" {
		fs.calibrator = fs.sheet.Calibrator
	}
}

// guessInput returns the first csv file in the current directory. Is used
// if the user hasn't specified an input file.
func (p *inputParser) guessInput() (in string, err error) {
	dir, _ := filepath.Abs(".")
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext == ".csv" {
			return file.Name(), nil
		}
	}

	return "", fmt.Errorf("failed: no input argument set and no csv file found in %s", dir)
}

// parseReferences turns a comma/space separated list of internal
// control targets into a cleaned up slice of their names.
func (p *inputParser) parseReferences(refs string) []string {
	return strings.Fields(strings.ReplaceAll(refs, ",", " "))
}

// undetermined Cq spellings seen in instrument exports
var undeterminedCqs = map[string]bool{
	"":             true,
	"undetermined": true,
	"undet":        true,
	"na":           true,
	"n/a":          true,
	"nan":          true,
}

// ReadTable parses a CSV of raw Cq values into a Table. The header must
// name a sample, target (or gene) and cq (or ct) column, any case. A
// well column is carried through when present, other columns are ignored.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	sampleCol, targetCol, cqCol, wellCol := -1, -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "sample", "sample_name":
			sampleCol = i
		case "target", "gene":
			targetCol = i
		case "cq", "ct":
			cqCol = i
		case "well":
			wellCol = i
		}
	}
	if sampleCol < 0 {
		return nil, fmt.Errorf("%w: sample", ErrMissingColumn)
	}
	if targetCol < 0 {
		return nil, fmt.Errorf("%w: target", ErrMissingColumn)
	}
	if cqCol < 0 {
		return nil, fmt.Errorf("%w: cq", ErrMissingColumn)
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	measurements := make([]Measurement, 0, len(records))
	for i, rec := range records {
		m := Measurement{
			Sample: strings.TrimSpace(rec[sampleCol]),
			Target: strings.TrimSpace(rec[targetCol]),
		}
		if wellCol >= 0 {
			m.Well = strings.TrimSpace(rec[wellCol])
		}

		raw := strings.TrimSpace(rec[cqCol])
		if undeterminedCqs[strings.ToLower(raw)] {
			m.Cq = math.NaN()
			m.Undetermined = true
		} else if m.Cq, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("%w: %q on line %d", ErrBadCq, raw, i+2)
		} else if math.IsNaN(m.Cq) {
			m.Undetermined = true
		}

		measurements = append(measurements, m)
	}

	return NewTable(measurements)
}
