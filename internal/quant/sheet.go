package quant

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Group is one condition group of a sample sheet.
type Group struct {
	// Name of the condition, e.g. "untreated" or "treated_24h".
	Name string `yaml:"name"`

	// Samples belonging to the condition.
	Samples []string `yaml:"samples"`
}

// Sheet is a YAML sample sheet describing an experiment: the internal
// control targets, the calibrator sample, and the condition groups.
// Everything in it can be overridden from the command line.
type Sheet struct {
	// References are the internal control (housekeeping) targets.
	References []string `yaml:"references"`

	// Calibrator is the sample all others are compared against.
	Calibrator string `yaml:"calibrator"`

	// Control names the group in Groups acting as the control condition.
	Control string `yaml:"control"`

	// Groups assigns samples to conditions, in sheet order.
	Groups []Group `yaml:"groups"`
}

// ReadSheet parses a YAML sample sheet.
func ReadSheet(path string) (*Sheet, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample sheet: %w", err)
	}

	var s Sheet
	if err := yaml.Unmarshal(dat, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sample sheet: %w", err)
	}

	return &s, nil
}

// group returns the named condition group, or nil.
func (s *Sheet) group(name string) *Group {
	for i := range s.Groups {
		if s.Groups[i].Name == name {
			return &s.Groups[i]
		}
	}
	return nil
}
