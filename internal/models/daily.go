// Package models defines data structures and domain types.
package models

import "time"

// NervousSystemState is the self-reported regulation state for a day.
type NervousSystemState string

const (
	// NervousSystemRegulated is the baseline, fully regulated state.
	NervousSystemRegulated NervousSystemState = "regulated"
	// NervousSystemElevated is a slightly elevated state.
	NervousSystemElevated NervousSystemState = "elevated"
	// NervousSystemSpiked is a spiked, dysregulated state.
	NervousSystemSpiked NervousSystemState = "spiked"
)

// Normalize maps unknown or empty states to the neutral default.
func (s NervousSystemState) Normalize() NervousSystemState {
	switch s {
	case NervousSystemRegulated, NervousSystemElevated, NervousSystemSpiked:
		return s
	default:
		return NervousSystemRegulated
	}
}

// DayRecord is one calendar date's self-reported telemetry.
// It is created or overwritten whenever the user saves a daily entry;
// the weekly aggregators only ever read it.
type DayRecord struct {
	Date time.Time

	// Body and regulation signals.
	SleepHours      float64
	TrainingMinutes int
	BodyFelt        int // 1-10 subjective body rating
	NervousSystem   NervousSystemState

	// Output counters.
	FocusHours    float64
	ShipCount     int
	WhatShipped   string
	RevenueAsks   int
	RevenueAmount float64
	Conversations int
	Intros        int
	Meetings      int
	Posts         int

	// Growth signals.
	StudyMinutes    int
	InsightsLogged  int
	PracticeMinutes int
	NewContacts     int

	// Attention.
	Project      string
	ProjectHours map[string]float64

	// Score is nil until computed for this record.
	Score *ScoreResult
}

// Shipped reports whether the day counts as having shipped something:
// an explicit positive ship count, or a non-empty free-text note.
func (d *DayRecord) Shipped() bool {
	return d.ShipCount > 0 || d.WhatShipped != ""
}

// ShipTally returns the countable number of ships for the day.
func (d *DayRecord) ShipTally() int {
	if d.ShipCount > 0 {
		return d.ShipCount
	}
	if d.WhatShipped != "" {
		return 1
	}
	return 0
}

// ScoreResult is the computed performance score for one day.
type ScoreResult struct {
	// Score is on the 0.5-10 display scale.
	Score float64
	// Delta is the change from the previous day's score, nil when no
	// previous score exists.
	Delta *float64
	// Components holds every named component on its native [0,1] scale.
	Components map[string]float64
}
