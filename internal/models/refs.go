package models

import "time"

// Decision is a standing decision under periodic review.
type Decision struct {
	ID           string
	Title        string
	Hypothesis   string
	ChosenOption string
	Reasoning    string
	KillCriteria string
	ReviewDate   time.Time
	Status       string // "active", "closed", "killed"
	CreatedAt    time.Time
}

// Active reports whether the decision is still open for review.
func (d *Decision) Active() bool {
	return d.Status == "active" || d.Status == ""
}

// Project stage values.
const (
	StagePreLaunch = "prelaunch"
	StageLaunched  = "launched"
	StageSunset    = "sunset"
)

// Project is a tracked venture or workstream.
type Project struct {
	Name     string
	Stage    string
	Archived bool
}

// PreLaunch reports whether the project is marked pre-launch.
func (p *Project) PreLaunch() bool {
	return p.Stage == StagePreLaunch
}

// Contact is a tracked relationship.
type Contact struct {
	Name      string
	Priority  string // "high" or "normal"
	LastTouch time.Time
}

// HighPriority reports whether the contact is marked high priority.
func (c *Contact) HighPriority() bool {
	return c.Priority == "high"
}
