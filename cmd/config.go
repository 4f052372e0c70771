package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

// Environment variables that supply flag defaults, also read from a .env file.
const (
	envLogLevel   = "WAREHOUSE_SIM_LOG"
	envConfigPath = "WAREHOUSE_SIM_CONFIG"
)

// TransportOverrides replaces individual transport policy fields of a scenario.
// Unset fields keep the value from the input file.
type TransportOverrides struct {
	Capacity    *int   `yaml:"capacity"`
	Latency     *int64 `yaml:"latency"`
	Interval    *int64 `yaml:"interval"`
	RemovalCost *int64 `yaml:"removal_cost"`
}

// RunConfig represents the optional overrides YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Transport *TransportOverrides `yaml:"transport"`
	Horizon   int64               `yaml:"horizon"`
}

// loadRunConfig parses an overrides file with strict field checking: typos must cause errors.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w: %w", path, sim.ErrInvalidInput, err)
	}
	if cfg.Horizon < 0 {
		return nil, fmt.Errorf("config %s: negative horizon %d: %w", path, cfg.Horizon, sim.ErrInvalidInput)
	}
	return &cfg, nil
}

// apply writes the overrides into the scenario's policy. The simulator validates the result.
func (c *RunConfig) apply(sc *sim.Scenario) {
	t := c.Transport
	if t == nil {
		return
	}
	if t.Capacity != nil {
		sc.Policy.Capacity = *t.Capacity
	}
	if t.Latency != nil {
		sc.Policy.Latency = *t.Latency
	}
	if t.Interval != nil {
		sc.Policy.Interval = *t.Interval
	}
	if t.RemovalCost != nil {
		sc.Policy.RemovalCost = *t.RemovalCost
	}
	logrus.Infof("Transport policy overridden: %+v", sc.Policy)
}

// applyEnvDefaults loads .env if present and fills flags the user did not set
// from the environment.
func applyEnvDefaults(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	for flag, env := range map[string]string{"log": envLogLevel, "config": envConfigPath} {
		if cmd.Flags().Changed(flag) {
			continue
		}
		if v, ok := os.LookupEnv(env); ok {
			if err := cmd.Flags().Set(flag, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	return nil
}
