package entity

import "math"

// ProgressSnapshot is one progress report of a running transfer.
type ProgressSnapshot struct {
	BytesSent  int64
	BytesTotal int64
	Percentage int
}

// ProgressFunc receives progress snapshots. It is never called concurrently
// for the same transfer.
type ProgressFunc func(ProgressSnapshot)

// NewProgressSnapshot builds a snapshot, clamping sent to [0, total].
// total must be positive.
func NewProgressSnapshot(sent, total int64) ProgressSnapshot {
	if sent < 0 {
		sent = 0
	}
	if sent > total {
		sent = total
	}

	return ProgressSnapshot{
		BytesSent:  sent,
		BytesTotal: total,
		Percentage: int(math.Round(float64(sent) / float64(total) * 100)),
	}
}
