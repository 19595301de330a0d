package touch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Started", PhaseStarted.String())
	assert.Equal(t, "Moved", PhaseMoved.String())
	assert.Equal(t, "Ended", PhaseEnded.String())
	assert.Equal(t, "Cancelled", PhaseCancelled.String())
	assert.Equal(t, "Unknown", PhaseUnknown.String())
	assert.Equal(t, "TouchPhase(12)", TouchPhase(12).String())
}

func TestPhase_Valid(t *testing.T) {
	for _, p := range Phases() {
		assert.True(t, p.Valid(), p.String())
	}
	assert.False(t, PhaseUnknown.Valid())
	assert.False(t, TouchPhase(-1).Valid())
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in      string
		want    TouchPhase
		wantErr string
	}{
		{in: "Started", want: PhaseStarted},
		{in: "moved", want: PhaseMoved},
		{in: " ENDED ", want: PhaseEnded},
		{in: "cancelled", want: PhaseCancelled},
		{in: "Strated", wantErr: `did you mean "Started"`},
		{in: "Canceled", wantErr: `did you mean "Cancelled"`},
		{in: "pinch", wantErr: "must be one of"},
		{in: "", wantErr: "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePhase(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhase_MarshalText_RejectsUnknown(t *testing.T) {
	_, err := PhaseUnknown.MarshalText()
	require.Error(t, err)
}

func TestTouchInput_JSON(t *testing.T) {
	data, err := json.Marshal(Moved(3, 1.5, -2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"Moved","x":1.5,"y":-2,"id":3}`, string(data))

	var in TouchInput
	require.NoError(t, json.Unmarshal([]byte(`{"phase":"cancelled","x":4,"y":5,"id":18446744073709551615}`), &in))
	assert.Equal(t, Cancelled(18446744073709551615, 4, 5), in)
}

func TestTouchInput_YAML(t *testing.T) {
	var events []TouchInput
	src := `
- {phase: Started, id: 1, x: 0, y: 0}
- {phase: Moved, id: 1, x: 3, y: 4}
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &events))
	assert.Equal(t, []TouchInput{Started(1, 0, 0), Moved(1, 3, 4)}, events)

	var bad []TouchInput
	err := yaml.Unmarshal([]byte(`- {phase: Movd, id: 1, x: 0, y: 0}`), &bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Moved"`)
}
