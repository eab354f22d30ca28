package ports

import "warped/internal/domain/sim"

type CommandMetrics interface {
	RecordCommand(name string, outcome sim.Outcome)
	RecordAutosave(err error)
	RecordLoad(restored bool)
}
