package syncrun

import (
	"fmt"
	"time"
)

const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusPartial   = "partial"
)

// ItemResult records the outcome of one record inside a batch stage.
type ItemResult struct {
	Ref     string `json:"ref"`
	Name    string `json:"name,omitempty"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// StageResult aggregates one entity stage of a run (leagues, teams,
// players or matches).
type StageResult struct {
	Stage      string       `json:"stage"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Details    []ItemResult `json:"details,omitempty"`
}

type SyncRun struct {
	ID         string
	Trigger    string
	Status     string
	Stages     []StageResult
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

func (r SyncRun) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("sync run id is required")
	}
	if r.Trigger == "" {
		return fmt.Errorf("sync run trigger is required")
	}

	return nil
}

// Finish stamps the terminal status from the accumulated stage counts.
func (r *SyncRun) Finish(now time.Time) {
	var ok, failed int
	for _, s := range r.Stages {
		ok += s.Successful
		failed += s.Failed
	}

	switch {
	case r.Error != "":
		r.Status = StatusFailed
	case failed == 0:
		r.Status = StatusSucceeded
	case ok == 0:
		r.Status = StatusFailed
	default:
		r.Status = StatusPartial
	}

	r.FinishedAt = &now
}
