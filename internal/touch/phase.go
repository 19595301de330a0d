package touch

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/invopop/jsonschema"
)

// TouchPhase is the lifecycle stage of one touch-contact event.
type TouchPhase int

const (
	// PhaseUnknown is the zero value. It never appears in a valid event so
	// an omitted phase in a recording is caught instead of read as Started.
	PhaseUnknown TouchPhase = iota
	// PhaseStarted marks a finger touching down.
	PhaseStarted
	// PhaseMoved marks a finger moving while down.
	PhaseMoved
	// PhaseEnded marks a finger lifting.
	PhaseEnded
	// PhaseCancelled marks the platform abandoning a contact.
	PhaseCancelled
)

// phaseNames is indexed by TouchPhase.
var phaseNames = [...]string{
	PhaseUnknown:   "Unknown",
	PhaseStarted:   "Started",
	PhaseMoved:     "Moved",
	PhaseEnded:     "Ended",
	PhaseCancelled: "Cancelled",
}

// suggestMaxDistance bounds how far a misspelling may be from a phase name
// before ParsePhase stops offering it as a suggestion.
const suggestMaxDistance = 2

// Phases returns the four valid phases in declaration order.
func Phases() []TouchPhase {
	return []TouchPhase{PhaseStarted, PhaseMoved, PhaseEnded, PhaseCancelled}
}

// Valid reports whether p is one of the four named phases.
func (p TouchPhase) Valid() bool {
	return p >= PhaseStarted && p <= PhaseCancelled
}

func (p TouchPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("TouchPhase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase as its name. Unknown phases are rejected
// so that recordings never contain a value ParsePhase cannot read back.
func (p TouchPhase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal phase: invalid phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name (see ParsePhase).
func (p *TouchPhase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase parses a phase name case-insensitively. Near misses produce an
// error that names the closest valid phase.
func ParsePhase(s string) (TouchPhase, error) {
	name := strings.TrimSpace(s)
	for _, p := range Phases() {
		if strings.EqualFold(name, phaseNames[p]) {
			return p, nil
		}
	}

	if suggestion, ok := closestPhase(name); ok {
		return PhaseUnknown, fmt.Errorf("unknown touch phase %q (did you mean %q?)", s, suggestion)
	}
	return PhaseUnknown, fmt.Errorf("unknown touch phase %q: must be one of Started, Moved, Ended, Cancelled", s)
}

// closestPhase returns the phase name nearest to s by edit distance.
func closestPhase(s string) (string, bool) {
	lower := strings.ToLower(s)
	best := ""
	bestDist := suggestMaxDistance + 1
	for _, p := range Phases() {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(phaseNames[p]))
		if d < bestDist {
			best, bestDist = phaseNames[p], d
		}
	}
	return best, best != ""
}

// JSONSchema describes the phase as a string enum of the four names.
func (TouchPhase) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, 4)
	for _, p := range Phases() {
		enum = append(enum, phaseNames[p])
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Touch lifecycle phase",
	}
}
