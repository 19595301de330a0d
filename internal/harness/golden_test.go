package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/touchstate/internal/touch"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := FindScenarioFiles("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	frames := [][]touch.TouchInput{
		{touch.Started(2, 1, 1), touch.Started(1, 0, 0)},
		{touch.Ended(2, 1, 1)},
	}

	first, err := MarshalSnapshot("det", Options{}, Play(frames, nil))
	require.NoError(t, err)
	second, err := MarshalSnapshot("det", Options{}, Play(frames, nil))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.True(t, strings.HasSuffix(string(first), "}\n"))
	assert.Contains(t, string(first), `"options": {}`)
}
