package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords      int
	ByKind            map[Kind]int
	Deliveries        int
	Restorations      int
	LastClock         int64
	BusiestWarehouse  int         // most records; -1 when empty, lowest id on ties
	WarehouseActivity map[int]int // warehouse id → record count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByKind:            make(map[Kind]int),
		WarehouseActivity: make(map[int]int),
		BusiestWarehouse:  -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	for _, r := range st.Records {
		summary.ByKind[r.Kind]++
		summary.WarehouseActivity[r.Warehouse]++
		if r.Clock > summary.LastClock {
			summary.LastClock = r.Clock
		}
	}
	summary.Deliveries = summary.ByKind[KindDelivered]
	summary.Restorations = summary.ByKind[KindRestored]

	best := 0
	for id, n := range summary.WarehouseActivity {
		if n > best || (n == best && id < summary.BusiestWarehouse) {
			best = n
			summary.BusiestWarehouse = id
		}
	}
	return summary
}
