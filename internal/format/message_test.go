package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderos/calibrate/internal/models"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{45, "$45"},
		{999, "$999"},
		{1000, "$1.0k"},
		{1250, "$1.3k"},
		{45999, "$46.0k"},
		{45.4, "$45"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Currency(tc.in), "Currency(%v)", tc.in)
	}
}

func sampleReport() *models.WeeklyCalibrationReport {
	window := models.ComputeWeekWindow(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	return &models.WeeklyCalibrationReport{
		Window: window,
		Performance: models.PerformanceSummary{
			AvgScore:       6.4,
			Trajectory:     models.TrajectoryImproving,
			FocusHours:     21.5,
			Ships:          4,
			RevenueAsks:    6,
			Revenue:        1250,
			Conversations:  9,
			Intros:         2,
			CadenceHitRate: 29,
		},
		DecisionReviews: []models.DecisionReview{
			{Decision: models.Decision{Title: "Double down on Atlas"}, DaysUntilReview: 9},
			{Decision: models.Decision{Title: "Pause Beacon"}, DaysUntilReview: 21},
		},
		Attention: []models.AttentionAllocation{
			{Project: "atlas", Hours: 14, PercentOfTotal: 65, Revenue: 1250, Health: models.HealthOnTrack, Commentary: "Most hours, most revenue."},
			{Project: "beacon", Hours: 7.5, PercentOfTotal: 35, Health: models.HealthStalled},
		},
		Network: models.NetworkHealth{
			TotalContacts:     40,
			TouchedThisWeek:   7,
			StaleHighPriority: 3,
			WarmIntroRate:     50,
			TopMoves:          []string{"Reconnect with Dana", "Intro Lee to Sam"},
		},
		Antitheses: []models.Antithesis{
			{Decision: "Double down on Atlas", CounterArgument: "Revenue is flat.", KillCriteriaProximity: "close"},
			{Decision: "Hire a contractor", CounterArgument: "Runway says otherwise.", KillCriteriaProximity: "far"},
		},
		BlindSpots: []string{"Asks cluster on Mondays"},
		Synthesis:  "A steady week with one warning sign.",
	}
}

func TestReport_BlockOrderAndContent(t *testing.T) {
	out := Report(sampleReport())

	blocks := []string{
		"*Weekly Calibration*",
		"*Performance*",
		"*Attention vs Value*",
		"*Decisions Under Review*",
		"*Network*",
		"*Blind Spots*",
		"_A steady week with one warning sign._",
	}
	last := -1
	for _, block := range blocks {
		idx := strings.Index(out, block)
		require.GreaterOrEqual(t, idx, 0, "missing block %q", block)
		assert.Greater(t, idx, last, "block %q out of order", block)
		last = idx
	}

	assert.Contains(t, out, "Score 6.4/10 ↑ (improving)")
	assert.Contains(t, out, "$1.3k revenue")
	assert.Contains(t, out, "atlas — 14.0h (65%)")
	assert.Contains(t, out, "_Most hours, most revenue._")
	assert.Contains(t, out, "1. Reconnect with Dana")
	assert.Contains(t, out, "2. Intro Lee to Sam")
	assert.Contains(t, out, "⚠ Asks cluster on Mondays")
}

func TestReport_PairsAntithesesWithReviews(t *testing.T) {
	out := Report(sampleReport())

	// The matching antithesis renders directly under its review line;
	// the unmatched one still appears afterwards.
	reviewIdx := strings.Index(out, "Double down on Atlas — review in 9 days")
	counterIdx := strings.Index(out, "_Counter: Revenue is flat. (close)_")
	orphanIdx := strings.Index(out, "Hire a contractor")
	require.GreaterOrEqual(t, reviewIdx, 0)
	require.GreaterOrEqual(t, counterIdx, 0)
	require.GreaterOrEqual(t, orphanIdx, 0)
	assert.Greater(t, counterIdx, reviewIdx)
	assert.Greater(t, orphanIdx, counterIdx)
}

func TestReport_EmptySectionsAreNotErrors(t *testing.T) {
	r := &models.WeeklyCalibrationReport{
		Window: models.ComputeWeekWindow(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)),
	}
	out := Report(r)

	assert.Contains(t, out, "No project hours logged this week.")
	assert.NotContains(t, out, "*Decisions Under Review*")
	assert.NotContains(t, out, "*Blind Spots*")
	assert.NotContains(t, out, "error")
}
