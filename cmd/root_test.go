package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

func testdata(name string) string {
	return filepath.Join("..", "testdata", name)
}

func readGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(testdata(name + ".golden"))
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSimulation_TraceOnStdout(t *testing.T) {
	for _, name := range []string{"single_hop", "line_overflow"} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := runSimulation(runOptions{logLevel: "warn"}, testdata(name+".txt"), &out)
			require.NoError(t, err)
			assert.Equal(t, readGolden(t, name), out.String())
		})
	}
}

func TestRunSimulation_MissingInput(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(runOptions{logLevel: "warn"}, filepath.Join(t.TempDir(), "nope.txt"), &out)
	assert.ErrorIs(t, err, sim.ErrInvalidInput)
	assert.Empty(t, out.String())
}

func TestRunSimulation_InvalidLogLevel(t *testing.T) {
	err := runSimulation(runOptions{logLevel: "loud"}, testdata("single_hop.txt"), io.Discard)
	assert.Error(t, err)
}

func TestRunSimulation_ConfigOverridesTransport(t *testing.T) {
	// GIVEN a capacity large enough for both packages of the line scenario
	cfg := writeFile(t, "overrides.yaml", "transport:\n  capacity: 2\n")

	// WHEN the scenario runs with the override
	var out bytes.Buffer
	err := runSimulation(runOptions{logLevel: "warn", configPath: cfg}, testdata("line_overflow.txt"), &out)
	require.NoError(t, err)

	// THEN nothing is left behind on the first departure
	assert.NotContains(t, out.String(), "rearmazenado")
	assert.Contains(t, out.String(), "0000007 pacote 003 em transito de 000 para 001")
}

func TestRunSimulation_HorizonPrecedence(t *testing.T) {
	cfg := writeFile(t, "overrides.yaml", "horizon: 9\n")
	golden := readGolden(t, "line_overflow")

	tests := []struct {
		name string
		opts runOptions
		want string
	}{
		{
			name: "config horizon applies",
			opts: runOptions{logLevel: "warn", configPath: cfg},
			want: strings.Join(strings.Split(golden, "\n")[:7], "\n"),
		},
		{
			name: "explicit flag wins",
			opts: runOptions{logLevel: "warn", configPath: cfg, horizon: 100, horizonSet: true},
			want: golden,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runSimulation(tc.opts, testdata("line_overflow.txt"), &out))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestRunSimulation_InvalidOverrideRejected(t *testing.T) {
	cfg := writeFile(t, "overrides.yaml", "transport:\n  capacity: 0\n")
	err := runSimulation(runOptions{logLevel: "warn", configPath: cfg}, testdata("single_hop.txt"), io.Discard)
	assert.ErrorIs(t, err, sim.ErrInvalidPolicy)
}

func TestLoadRunConfig_StrictFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"typo in transport field", "transport:\n  capacty: 2\n"},
		{"unknown top-level section", "routing:\n  mode: bfs\n"},
		{"negative horizon", "horizon: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadRunConfig(writeFile(t, "c.yaml", tc.content))
			assert.ErrorIs(t, err, sim.ErrInvalidInput)
		})
	}
}

func TestLoadRunConfig_PartialOverride(t *testing.T) {
	cfg, err := loadRunConfig(writeFile(t, "c.yaml", "transport:\n  latency: 9\n  removal_cost: 0\n"))
	require.NoError(t, err)

	sc := &sim.Scenario{Policy: sim.TransportPolicy{Capacity: 3, Latency: 1, Interval: 4, RemovalCost: 2}}
	cfg.apply(sc)
	assert.Equal(t, sim.TransportPolicy{Capacity: 3, Latency: 9, Interval: 4, RemovalCost: 0}, sc.Policy)
}

func TestRunSimulation_WritesReportAndMetrics(t *testing.T) {
	dir := t.TempDir()
	o := runOptions{
		logLevel:   "warn",
		reportPath: filepath.Join(dir, "report.yaml"),
		metricsOut: filepath.Join(dir, "metrics.prom"),
		summary:    true,
	}
	require.NoError(t, runSimulation(o, testdata("line_overflow.txt"), io.Discard))

	data, err := os.ReadFile(o.reportPath)
	require.NoError(t, err)
	var r sim.Report
	require.NoError(t, yaml.Unmarshal(data, &r))
	assert.Equal(t, 2, r.Delivered)
	assert.Equal(t, int64(18), r.FinalClock)
	assert.Equal(t, sim.PhaseDone, r.Phase)
	require.Len(t, r.PackageReports, 2)
	assert.Equal(t, []int{0, 1, 2}, r.PackageReports[0].Route)

	metrics, err := os.ReadFile(o.metricsOut)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `warehouse_sim_events_processed_total{kind="arrival"} 6`)
}

func TestRootCmd_RequiresExactlyOneArgument(t *testing.T) {
	for _, args := range [][]string{{}, {"a.txt", "b.txt"}} {
		rootCmd.SetArgs(args)
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		assert.Error(t, rootCmd.Execute())
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	newCmd := func() (*cobra.Command, *runOptions) {
		var o runOptions
		c := &cobra.Command{Use: "test"}
		c.Flags().StringVar(&o.logLevel, "log", "warn", "")
		c.Flags().StringVar(&o.configPath, "config", "", "")
		return c, &o
	}
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envConfigPath, "/etc/warehouse-sim.yaml")

	// GIVEN no flags on the command line
	c, o := newCmd()
	require.NoError(t, applyEnvDefaults(c))
	// THEN the environment fills them
	assert.Equal(t, "debug", o.logLevel)
	assert.Equal(t, "/etc/warehouse-sim.yaml", o.configPath)

	// GIVEN an explicit --log
	c, o = newCmd()
	require.NoError(t, c.Flags().Set("log", "error"))
	require.NoError(t, applyEnvDefaults(c))
	// THEN the flag wins
	assert.Equal(t, "error", o.logLevel)
}
