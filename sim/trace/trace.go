package trace

// TraceLevel controls whether records are kept in memory.
type TraceLevel string

const (
	// TraceLevelNone disables in-memory collection (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelMoves keeps every package movement record.
	TraceLevelMoves TraceLevel = "moves"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelMoves: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects movement records during a simulation.
type SimulationTrace struct {
	Level   TraceLevel
	Records []Record
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:   level,
		Records: make([]Record, 0),
	}
}

// Record appends r when the level keeps movements. Safe on a nil trace.
func (st *SimulationTrace) Record(r Record) {
	if st == nil || st.Level != TraceLevelMoves {
		return
	}
	st.Records = append(st.Records, r)
}

// ForPackage returns the records of one package, in trace order.
func (st *SimulationTrace) ForPackage(packageID int) []Record {
	if st == nil {
		return nil
	}
	var out []Record
	for _, r := range st.Records {
		if r.PackageID == packageID {
			out = append(out, r)
		}
	}
	return out
}
