package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/touchstate/internal/touch"
)

// Scenario is a framed touch stream with per-frame expectations.
type Scenario struct {
	// Name uniquely identifies this scenario.
	// Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options configure the reducer for the whole run.
	Options Options `yaml:"options,omitempty"`

	// Frames are processed in order, one Reducer.Step each.
	Frames []Frame `yaml:"frames"`
}

// Options select reducer behavior.
type Options struct {
	// OrphanMove is "fail" (default) or "drop".
	OrphanMove string `yaml:"orphan_move,omitempty" json:"orphan_move,omitempty"`

	// LegacyPressTracking leaves just_pressed empty on Started.
	LegacyPressTracking bool `yaml:"legacy_press_tracking,omitempty" json:"legacy_press_tracking,omitempty"`
}

// ReducerOptions converts o to reducer options.
func (o Options) ReducerOptions() ([]touch.Option, error) {
	policy, err := touch.ParseOrphanMovePolicy(o.OrphanMove)
	if err != nil {
		return nil, err
	}
	opts := []touch.Option{touch.WithOrphanMovePolicy(policy)}
	if o.LegacyPressTracking {
		opts = append(opts, touch.WithLegacyPressTracking())
	}
	return opts, nil
}

// Frame is one host frame.
type Frame struct {
	// Events arrive in this order within the frame.
	Events []touch.TouchInput `yaml:"events"`

	// Expect is checked against the snapshot after the frame.
	// If nil, nothing is checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Recording is a framed touch stream without expectations, as written by
// input capture tools and accepted by `touchstate record`.
type Recording struct {
	Name   string           `yaml:"name"`
	Frames []RecordingFrame `yaml:"frames"`
}

// RecordingFrame is one captured frame.
type RecordingFrame struct {
	Events []touch.TouchInput `yaml:"events"`
}

// Inputs returns the recorded events grouped by frame.
func (r *Recording) Inputs() [][]touch.TouchInput {
	out := make([][]touch.TouchInput, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Events
		if out[i] == nil {
			out[i] = []touch.TouchInput{}
		}
	}
	return out
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if err := decodeStrict(data, &scenario); err != nil {
		return nil, err
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadRecording reads and parses a recording YAML file.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording file: %w", err)
	}

	var rec Recording
	if err := decodeStrict(data, &rec); err != nil {
		return nil, err
	}

	if len(rec.Frames) == 0 {
		return nil, fmt.Errorf("invalid recording: frames list is required and must be non-empty")
	}
	for i, f := range rec.Frames {
		if err := validateEvents(fmt.Sprintf("frames[%d]", i), f.Events); err != nil {
			return nil, fmt.Errorf("invalid recording: %w", err)
		}
	}

	return &rec, nil
}

// FindScenarioFiles returns the .yaml and .yml files under dir, sorted.
// A non-empty filter is matched against the file name without extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// decodeStrict parses YAML and rejects unknown fields, so typos such as
// "just_presed:" fail loudly instead of silently skipping a check.
func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Frames) == 0 {
		return fmt.Errorf("frames list is required and must be non-empty")
	}

	if _, err := s.Options.ReducerOptions(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	for i, f := range s.Frames {
		prefix := fmt.Sprintf("frames[%d]", i)
		if err := validateEvents(prefix, f.Events); err != nil {
			return err
		}
		if f.Expect != nil {
			if err := validateExpect(prefix+".expect", f.Expect); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateEvents(prefix string, events []touch.TouchInput) error {
	for j, ev := range events {
		if !ev.Phase.Valid() {
			return fmt.Errorf("%s.events[%d]: phase is required", prefix, j)
		}
	}
	return nil
}

func validateExpect(prefix string, e *Expect) error {
	switch touch.ReducerErrorCode(e.Error) {
	case "", touch.ErrCodeOrphanMove, touch.ErrCodeUnknownPhase:
	default:
		return fmt.Errorf("%s: unknown error code %q", prefix, e.Error)
	}

	if e.Active != nil {
		seen := make(map[uint64]bool)
		for _, a := range *e.Active {
			if seen[a.ID] {
				return fmt.Errorf("%s.active: duplicate id %d", prefix, a.ID)
			}
			seen[a.ID] = true
		}
	}

	return nil
}
