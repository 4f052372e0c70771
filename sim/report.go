package sim

// PackageReport is the end-of-run view of one package.
type PackageReport struct {
	ID            int          `yaml:"id"`
	PostTime      int64        `yaml:"post_time"`
	Origin        int          `yaml:"origin"`
	Destination   int          `yaml:"destination"`
	Route         []int        `yaml:"route,flow"`
	State         PackageState `yaml:"state"`
	TimeStored    int64        `yaml:"time_stored"`
	TimeInTransit int64        `yaml:"time_in_transit"`
	DeliveredAt   int64        `yaml:"delivered_at"`
	Latency       int64        `yaml:"latency,omitempty"` // DeliveredAt - PostTime, delivered packages only
}

// Report aggregates the outcome of a simulation run.
type Report struct {
	RunID           string          `yaml:"run_id"`
	Phase           Phase           `yaml:"phase"`
	FinalClock      int64           `yaml:"final_clock"`
	EventsProcessed int             `yaml:"events_processed"`
	PendingEvents   int             `yaml:"pending_events"`
	Packages        int             `yaml:"packages"`
	Delivered       int             `yaml:"delivered"`
	MeanLatency     float64         `yaml:"mean_latency"`
	MaxLatency      int64           `yaml:"max_latency"`
	MeanTimeStored  float64         `yaml:"mean_time_stored"`
	PackageReports  []PackageReport `yaml:"package_reports"`
}

// Report builds the run report. Packages appear in scenario order.
func (s *Simulator) Report() *Report {
	r := &Report{
		RunID:           s.RunID,
		Phase:           s.Phase,
		FinalClock:      s.Clock,
		EventsProcessed: s.EventsProcessed,
		PendingEvents:   s.Scheduler.Len(),
		Packages:        len(s.loadOrder),
		Delivered:       s.delivered,
		PackageReports:  make([]PackageReport, 0, len(s.loadOrder)),
	}

	var latencySum, storedSum int64
	for _, id := range s.loadOrder {
		p := s.Packages[id]
		pr := PackageReport{
			ID:            p.ID,
			PostTime:      p.PostTime,
			Origin:        p.Origin,
			Destination:   p.Destination,
			Route:         p.Route(),
			State:         p.State,
			TimeStored:    p.TimeStored,
			TimeInTransit: p.TimeInTransit,
			DeliveredAt:   p.DeliveredAt,
		}
		if p.IsDelivered() {
			pr.Latency = p.DeliveredAt - p.PostTime
			latencySum += pr.Latency
			r.MaxLatency = max(r.MaxLatency, pr.Latency)
		}
		storedSum += p.TimeStored
		r.PackageReports = append(r.PackageReports, pr)
	}
	if r.Delivered > 0 {
		r.MeanLatency = float64(latencySum) / float64(r.Delivered)
	}
	if r.Packages > 0 {
		r.MeanTimeStored = float64(storedSum) / float64(r.Packages)
	}
	return r
}
