package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunCommandSynthesizesAndEmitsACircuit exercises the full CLI
// pipeline end to end on a tiny spec (X={1}, Y={2}, F = y2 <-> x1) and
// checks that a circuit document is emitted for the output variable. The
// command returns an error, and emits nothing, when the loop hits its
// iteration cap, so the test also requires the run to converge within the
// small cap of 20 iterations.
func TestRunCommandSynthesizesAndEmitsACircuit(t *testing.T) {
	doc := "p cnf 2 2\na 1 0\ne 2 0\n-1 2 0\n1 -2 0\n"
	specPath := writeTempQDIMACS(t, doc)
	outPath := filepath.Join(t.TempDir(), "circuit.json")

	cmd := newRunCmd()
	cmd.SetArgs([]string{
		specPath,
		"--output", outPath,
		"--samples", "4",
		"--iteration-cap", "20",
	})
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var circuit struct {
		Order   []string                   `json:"order"`
		Outputs map[string]json.RawMessage `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal(data, &circuit))
	assert.Equal(t, []string{"x2"}, circuit.Order)
	assert.Contains(t, circuit.Outputs, "x2")
}
