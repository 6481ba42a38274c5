package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/founderos/calibrate/internal/models"
)

func scored(score float64) models.DayRecord {
	return models.DayRecord{Score: &models.ScoreResult{Score: score}}
}

func TestAggregatePerformance_AverageExcludesUnscoredDays(t *testing.T) {
	days := []models.DayRecord{
		scored(6),
		{}, // unscored, must not drag the average down
		scored(8),
	}
	summary := AggregatePerformance(days)

	assert.InDelta(t, 7.0, summary.AvgScore, 1e-9)
	assert.Equal(t, 2, summary.ScoredDays)
}

func TestAggregatePerformance_Totals(t *testing.T) {
	days := []models.DayRecord{
		{FocusHours: 3, ShipCount: 2, RevenueAsks: 1, RevenueAmount: 200, Conversations: 4, Intros: 1},
		{FocusHours: 2.5, WhatShipped: "landing page", Conversations: 1},
	}
	summary := AggregatePerformance(days)

	assert.InDelta(t, 5.5, summary.FocusHours, 1e-9)
	assert.Equal(t, 3, summary.Ships, "free-text ship note counts as one ship")
	assert.Equal(t, 1, summary.RevenueAsks)
	assert.InDelta(t, 200, summary.Revenue, 1e-9)
	assert.Equal(t, 5, summary.Conversations)
	assert.Equal(t, 1, summary.Intros)
}

func TestClassifyTrajectory(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   models.Trajectory
	}{
		{"no scores", nil, models.TrajectoryFlat},
		{"two scored days stay flat regardless of spread", []float64{2, 9}, models.TrajectoryFlat},
		{"improving", []float64{5, 5, 6, 6.5, 7, 7.5, 8}, models.TrajectoryImproving},
		{"declining", []float64{8, 7.5, 7, 6.5, 6, 5, 5}, models.TrajectoryDeclining},
		{"within threshold", []float64{6, 6.1, 6.2, 6.1, 6.3}, models.TrajectoryFlat},
		{"exactly at threshold is flat", []float64{6, 6, 6.3, 6.3}, models.TrajectoryFlat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyTrajectory(tc.scores))
		})
	}
}

func TestAggregatePerformance_CadenceIsConjunctive(t *testing.T) {
	complete := models.DayRecord{
		FocusHours:    2,
		ShipCount:     1,
		RevenueAsks:   1,
		Conversations: 1,
		Posts:         1,
		Intros:        1,
		Meetings:      1,
	}
	sixOfSeven := complete
	sixOfSeven.Meetings = 0

	summary := AggregatePerformance([]models.DayRecord{complete, sixOfSeven})

	// One of two days hit every condition; six of seven is zero credit.
	assert.InDelta(t, 50.0, summary.CadenceHitRate, 1e-9)
}

func TestAggregatePerformance_SingleScoredDayExample(t *testing.T) {
	days := []models.DayRecord{scored(6)}
	summary := AggregatePerformance(days)

	assert.InDelta(t, 6.0, summary.AvgScore, 1e-9)
	assert.Equal(t, models.TrajectoryFlat, summary.Trajectory)
	assert.InDelta(t, 0.0, summary.CadenceHitRate, 1e-9)
}

func TestAggregatePerformance_EmptyWeek(t *testing.T) {
	summary := AggregatePerformance(nil)

	assert.InDelta(t, 0.0, summary.AvgScore, 1e-9)
	assert.Equal(t, models.TrajectoryFlat, summary.Trajectory)
	assert.InDelta(t, 0.0, summary.CadenceHitRate, 1e-9)
}

func TestAggregatePerformance_Deterministic(t *testing.T) {
	days := []models.DayRecord{
		scored(6), scored(7), {FocusHours: 4, RevenueAmount: 90},
	}
	first := AggregatePerformance(days)
	second := AggregatePerformance(days)
	assert.Equal(t, first, second)
}

// Guard against the week window leaking into performance math: the
// aggregator must treat its input list as the complete universe.
func TestAggregatePerformance_IgnoresDates(t *testing.T) {
	a := scored(5)
	a.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	b := scored(7)
	b.Date = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	summary := AggregatePerformance([]models.DayRecord{a, b})
	assert.InDelta(t, 6.0, summary.AvgScore, 1e-9)
}
