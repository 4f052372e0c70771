package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// writeReport saves the run report as YAML.
func writeReport(path string, r *sim.Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	logrus.Infof("Report written to %s", path)
	return nil
}

// writeMetrics exports the run metrics in the Prometheus text format.
func writeMetrics(path string, m *sim.Metrics) error {
	if err := m.WriteToTextfile(path); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	logrus.Infof("Metrics written to %s", path)
	return nil
}

func logSummary(s *trace.TraceSummary) {
	logrus.Infof("Trace: %d records, %d deliveries, %d restorations, last clock %d",
		s.TotalRecords, s.Deliveries, s.Restorations, s.LastClock)
	kinds := make([]trace.Kind, 0, len(s.ByKind))
	for kind := range s.ByKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		logrus.Infof("  %-12s %d", kind, s.ByKind[kind])
	}
	if s.BusiestWarehouse >= 0 {
		logrus.Infof("Busiest warehouse: %03d (%d records)", s.BusiestWarehouse, s.WarehouseActivity[s.BusiestWarehouse])
	}
}
