package models

import "time"

// Trajectory classifies a week's score movement.
type Trajectory int

const (
	// TrajectoryFlat means no meaningful half-over-half change.
	TrajectoryFlat Trajectory = iota
	// TrajectoryImproving means the second half outscored the first.
	TrajectoryImproving
	// TrajectoryDeclining means the second half fell behind the first.
	TrajectoryDeclining
)

// String returns the display name for a trajectory.
func (t Trajectory) String() string {
	switch t {
	case TrajectoryImproving:
		return "improving"
	case TrajectoryDeclining:
		return "declining"
	default:
		return "flat"
	}
}

// Arrow returns the glyph used when rendering the trajectory.
func (t Trajectory) Arrow() string {
	switch t {
	case TrajectoryImproving:
		return "↑"
	case TrajectoryDeclining:
		return "↓"
	default:
		return "→"
	}
}

// PerformanceSummary aggregates one week of scored days.
type PerformanceSummary struct {
	AvgScore       float64
	ScoredDays     int
	Trajectory     Trajectory
	FocusHours     float64
	Ships          int
	RevenueAsks    int
	Revenue        float64
	Conversations  int
	Intros         int
	CadenceHitRate float64 // percent of days meeting every cadence condition
}

// ProjectHealth classifies a project's week.
type ProjectHealth int

const (
	// HealthOnTrack means the project got hours and traction.
	HealthOnTrack ProjectHealth = iota
	// HealthStalled means hours went in but nothing came back.
	HealthStalled
	// HealthNew means the project is pre-launch.
	HealthNew
	// HealthDormant means the project saw no attention at all.
	HealthDormant
)

// String returns the display name for a project health state.
func (h ProjectHealth) String() string {
	switch h {
	case HealthOnTrack:
		return "ON_TRACK"
	case HealthStalled:
		return "STALLED"
	case HealthNew:
		return "NEW"
	default:
		return "DORMANT"
	}
}

// AttentionAllocation is one project's share of the week.
type AttentionAllocation struct {
	Project        string
	Hours          float64
	PercentOfTotal int
	Revenue        float64
	Health         ProjectHealth
	// Commentary is filled in from the synthesis output, when present.
	Commentary string
}

// NetworkHealth summarizes the relationship graph for the week.
type NetworkHealth struct {
	TotalContacts     int
	TouchedThisWeek   int
	StaleHighPriority int
	// StaleContacts lists the stale high-priority contacts themselves,
	// for the synthesis prompt and the rendered report.
	StaleContacts []Contact
	WarmIntroRate float64
	// TopMoves is filled in from the synthesis output, when present.
	TopMoves []string
}

// DecisionReview pairs a decision with its proximity to review.
type DecisionReview struct {
	Decision        Decision
	DaysUntilReview int
}

// Antithesis is a synthesis-produced counter-argument to a decision.
type Antithesis struct {
	Decision              string
	CounterArgument       string
	KillCriteriaProximity string
}

// SynthesisResult is the validated output of the synthesis service.
type SynthesisResult struct {
	Antitheses           []Antithesis
	BlindSpots           []string
	Synthesis            string
	TopRelationshipMoves []string
	AttentionCommentary  map[string]string
	// Degraded marks results substituted after a synthesis failure.
	Degraded bool
}

// WeeklyCalibrationReport is the aggregate root returned by the
// assembler. It is never mutated after being returned; callers wanting
// fresh numbers regenerate the whole report.
type WeeklyCalibrationReport struct {
	ID          string
	Window      WeekWindow
	GeneratedAt time.Time

	Performance     PerformanceSummary
	DecisionReviews []DecisionReview
	Attention       []AttentionAllocation
	Network         NetworkHealth

	Antitheses []Antithesis
	BlindSpots []string
	Synthesis  string
	Degraded   bool
}
