// Package report aggregates a week of day records and reference data
// into the weekly calibration report.
package report

import (
	"github.com/founderos/calibrate/internal/models"
)

const (
	// trajectoryThreshold is the half-over-half mean difference needed
	// before a week counts as improving or declining.
	trajectoryThreshold = 0.3
	// trajectoryMinDays is the minimum number of scored days before a
	// trajectory other than flat can be claimed.
	trajectoryMinDays = 3
)

// cadenceConditions is the conjunctive set a day must fully satisfy to
// count toward the cadence hit-rate. Partial credit does not count.
var cadenceConditions = []func(*models.DayRecord) bool{
	func(d *models.DayRecord) bool { return d.FocusHours > 0 },
	func(d *models.DayRecord) bool { return d.Shipped() },
	func(d *models.DayRecord) bool { return d.RevenueAsks >= 1 },
	func(d *models.DayRecord) bool { return d.Conversations >= 1 },
	func(d *models.DayRecord) bool { return d.Posts >= 1 },
	func(d *models.DayRecord) bool { return d.Intros >= 1 },
	func(d *models.DayRecord) bool { return d.Meetings >= 1 },
}

// AggregatePerformance rolls one week of day records into the
// performance summary. Days without a computed score are excluded from
// the average rather than counted as zero.
func AggregatePerformance(days []models.DayRecord) models.PerformanceSummary {
	summary := models.PerformanceSummary{Trajectory: models.TrajectoryFlat}

	var scores []float64
	for i := range days {
		d := &days[i]
		if d.Score != nil {
			scores = append(scores, d.Score.Score)
		}
		summary.FocusHours += d.FocusHours
		summary.Ships += d.ShipTally()
		summary.RevenueAsks += d.RevenueAsks
		summary.Revenue += d.RevenueAmount
		summary.Conversations += d.Conversations
		summary.Intros += d.Intros
		if cadenceComplete(d) {
			summary.CadenceHitRate++
		}
	}

	summary.ScoredDays = len(scores)
	if len(scores) > 0 {
		summary.AvgScore = mean(scores)
	}
	if len(days) > 0 {
		summary.CadenceHitRate = summary.CadenceHitRate / float64(len(days)) * 100
	}
	summary.Trajectory = classifyTrajectory(scores)
	return summary
}

// classifyTrajectory splits the ordered scores at the midpoint and
// compares half means. Fewer than trajectoryMinDays scored days always
// reads as flat.
func classifyTrajectory(scores []float64) models.Trajectory {
	if len(scores) < trajectoryMinDays {
		return models.TrajectoryFlat
	}
	mid := (len(scores) + 1) / 2
	first := mean(scores[:mid])
	second := mean(scores[mid:])
	switch {
	case second-first > trajectoryThreshold:
		return models.TrajectoryImproving
	case first-second > trajectoryThreshold:
		return models.TrajectoryDeclining
	default:
		return models.TrajectoryFlat
	}
}

func cadenceComplete(d *models.DayRecord) bool {
	for _, cond := range cadenceConditions {
		if !cond(d) {
			return false
		}
	}
	return true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
