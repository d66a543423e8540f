package domain

import "time"

type ProjectState string

const (
	ProjectOnline   ProjectState = "online"
	ProjectArchived ProjectState = "archived"
)

func (s ProjectState) String() string {
	return string(s)
}

// ProjectSummary is the listing view of a project.
type ProjectSummary struct {
	Name      string       `json:"name"`
	Owner     string       `json:"owner,omitempty"`
	State     ProjectState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (p ProjectSummary) Equal(o ProjectSummary) bool {
	return p.Name == o.Name &&
		p.Owner == o.Owner &&
		p.State == o.State &&
		p.CreatedAt.Equal(o.CreatedAt) &&
		p.UpdatedAt.Equal(o.UpdatedAt)
}
