package domain

import "time"

type SyncStopReason string

const (
	SyncStopCompleted   SyncStopReason = "completed"
	SyncStopRateLimited SyncStopReason = "rate_limited"
	SyncStopFetchFailed SyncStopReason = "fetch_failed"
	SyncStopCanceled    SyncStopReason = "canceled"
)

// SyncResult resume uma execução da sincronização de campanhas
type SyncResult struct {
	RunID      string         `json:"run_id"`
	Pages      int            `json:"pages"`
	Synced     int            `json:"synced"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	StopReason SyncStopReason `json:"stop_reason"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

func (r *SyncResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
