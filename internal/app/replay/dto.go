package replay

import "warped/internal/domain/sim"

// Request selects log entries. Zero or nil fields do not filter. From and To
// are unix milliseconds, inclusive.
type Request struct {
	SinceID *int
	From    int64
	To      int64
	Limit   int
}

type Response struct {
	Entries []sim.LogEntry `json:"entries"`
	// LatestID is the newest id in the log, for use as the next SinceID.
	LatestID int `json:"latest_id"`
}
