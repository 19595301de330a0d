package store

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/touchstate/internal/touch"
)

// fingerToColumn bit-casts a platform finger id into SQLite's signed
// INTEGER. go-sqlite3 rejects uint64 values with the high bit set, and the
// cast round-trips exactly through fingerFromColumn.
func fingerToColumn(id uint64) int64 {
	return int64(id)
}

func fingerFromColumn(v int64) uint64 {
	return uint64(v)
}

// phaseToColumn stores a phase by name so the log stays readable with the
// sqlite3 shell.
func phaseToColumn(p touch.TouchPhase) (string, error) {
	text, err := p.MarshalText()
	if err != nil {
		return "", fmt.Errorf("marshal phase: %w", err)
	}
	return string(text), nil
}

func phaseFromColumn(s string) (touch.TouchPhase, error) {
	p, err := touch.ParsePhase(s)
	if err != nil {
		return touch.PhaseUnknown, fmt.Errorf("unmarshal phase: %w", err)
	}
	return p, nil
}

// NormalizeName trims and NFC-normalizes a session name so that visually
// identical names typed on different platforms match.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
