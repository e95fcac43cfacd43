package run_auto_confirm

import "github.com/m04kA/SMC-StudioReservations/internal/usecase/auto_confirm"

// RunResponse HTTP response model
type RunResponse struct {
	RunID          string `json:"runId"`
	Scanned        int    `json:"scanned"`
	ConfirmedCount int    `json:"confirmedCount"`
	Failed         int    `json:"failed"`
	ElapsedMs      int64  `json:"elapsedMs"`
}

func FromResult(r *auto_confirm.Result) *RunResponse {
	return &RunResponse{
		RunID:          r.RunID,
		Scanned:        r.Scanned,
		ConfirmedCount: r.Confirmed,
		Failed:         r.Failed,
		ElapsedMs:      r.Elapsed.Milliseconds(),
	}
}
