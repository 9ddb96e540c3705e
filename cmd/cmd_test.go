package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScheduleSampleJSON(t *testing.T) {
	out, _, err := execute(t, "schedule", "--sample")
	require.NoError(t, err)

	var res struct {
		Schedule       [][]string `json:"schedule"`
		ConsumedEnergy struct {
			Value float64 `json:"value"`
		} `json:"consumedEnergy"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Schedule, 24)
	assert.InDelta(t, 38.939, res.ConsumedEnergy.Value, 1e-9)
}

func TestScheduleSampleCSV(t *testing.T) {
	out, _, err := execute(t, "schedule", "--sample", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 25)
	assert.Equal(t, "hour,device_ids,power_w", lines[0])
}

func TestScheduleNeedsInput(t *testing.T) {
	_, _, err := execute(t, "schedule")
	assert.Error(t, err)

	_, _, err = execute(t, "schedule", "--sample", "--format", "xml")
	assert.Error(t, err)
}

func TestScheduleNotices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	data := `maxPower: 1000
rates:
  - {from: 0, to: 12, value: 1}
  - {from: 12, to: 0, value: 2}
devices:
  - {id: kiln, name: Kiln, power: 5000, duration: 2}
  - {id: lamp, name: Lamp, power: 10, duration: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	out, errOut, err := execute(t, "schedule", "--plan", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Kiln")
	assert.Contains(t, out, "lamp")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"maxPower":100,"rates":[{"from":0,"to":12,"value":1},{"from":12,"to":0,"value":2}],"devices":[{"id":"a","power":10,"duration":1}]}`), 0o644))
	out, _, err := execute(t, "validate", "--plan", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	gap := filepath.Join(dir, "gap.json")
	require.NoError(t, os.WriteFile(gap, []byte(`{"maxPower":100,"rates":[{"from":0,"to":5,"value":1}],"devices":[]}`), 0o644))
	_, _, err = execute(t, "validate", "--plan", gap)
	assert.Error(t, err)
}
