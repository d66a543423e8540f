package domain

import "time"

type RunState string

const (
	RunCreated   RunState = "created"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunError     RunState = "error"
	RunAborted   RunState = "aborted"
)

func (s RunState) String() string {
	return string(s)
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	Uid       string    `json:"uid"`
	Project   string    `json:"project"`
	Name      string    `json:"name"`
	State     RunState  `json:"state"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r RunSummary) Equal(o RunSummary) bool {
	return r.Uid == o.Uid &&
		r.Project == o.Project &&
		r.Name == o.Name &&
		r.State == o.State &&
		r.StartedAt.Equal(o.StartedAt) &&
		r.UpdatedAt.Equal(o.UpdatedAt)
}
