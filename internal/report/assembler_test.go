package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderos/calibrate/internal/models"
	"github.com/founderos/calibrate/internal/synthesis"
)

var assemblerToday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // Wednesday

// stubSources returns canned data with per-source error injection.
type stubSources struct {
	days       []models.DayRecord
	decisions  []models.Decision
	projects   []models.Project
	contacts   []models.Contact
	insights   []string
	principles []string

	failContacts bool
	failAll      bool
}

func (s *stubSources) GetDayRecords(_ context.Context, _ []time.Time) ([]models.DayRecord, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.days, nil
}

func (s *stubSources) GetActiveDecisions(_ context.Context) ([]models.Decision, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.decisions, nil
}

func (s *stubSources) GetProjects(_ context.Context) ([]models.Project, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.projects, nil
}

func (s *stubSources) GetNetworkContacts(_ context.Context) ([]models.Contact, error) {
	if s.failContacts || s.failAll {
		return nil, errors.New("contacts unavailable")
	}
	return s.contacts, nil
}

func (s *stubSources) GetRecentInsights(_ context.Context, _ int) ([]string, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.insights, nil
}

func (s *stubSources) GetTopPrinciples(_ context.Context, _ int) ([]string, error) {
	if s.failAll {
		return nil, errors.New("store down")
	}
	return s.principles, nil
}

// stubSynth returns a fixed synthesis result and records its input.
type stubSynth struct {
	result models.SynthesisResult
	input  synthesis.Input
}

func (s *stubSynth) Synthesize(_ context.Context, in synthesis.Input) models.SynthesisResult {
	s.input = in
	return s.result
}

func weekSources() *stubSources {
	window := models.ComputeWeekWindow(assemblerToday)
	day := func(offset int, score float64, focus float64, project string) models.DayRecord {
		return models.DayRecord{
			Date:       window.Start.AddDate(0, 0, offset),
			FocusHours: focus,
			Project:    project,
			Score:      &models.ScoreResult{Score: score},
		}
	}
	return &stubSources{
		days: []models.DayRecord{
			day(0, 6, 4, "atlas"),
			day(1, 6.5, 3, "atlas"),
			day(2, 7, 2, "beacon"),
		},
		decisions: []models.Decision{
			{Title: "Double down on Atlas", Status: "active", ReviewDate: assemblerToday.AddDate(0, 0, 10)},
			{Title: "Too far out", Status: "active", ReviewDate: assemblerToday.AddDate(0, 0, 45)},
			{Title: "Sooner", Status: "active", ReviewDate: assemblerToday.AddDate(0, 0, 3)},
			{Title: "Closed one", Status: "closed", ReviewDate: assemblerToday.AddDate(0, 0, 5)},
		},
		projects:   []models.Project{{Name: "atlas", Stage: models.StageLaunched}},
		contacts:   []models.Contact{{Name: "Dana", Priority: "high", LastTouch: assemblerToday}},
		insights:   []string{"an insight"},
		principles: []string{"a principle"},
	}
}

func emptySynth() *stubSynth {
	return &stubSynth{result: models.SynthesisResult{
		Antitheses:           []models.Antithesis{},
		BlindSpots:           []string{},
		TopRelationshipMoves: []string{},
		AttentionCommentary:  map[string]string{},
	}}
}

func TestGenerate_BuildsFullReport(t *testing.T) {
	synth := &stubSynth{result: models.SynthesisResult{
		Antitheses:           []models.Antithesis{{Decision: "Double down on Atlas", CounterArgument: "flat revenue"}},
		BlindSpots:           []string{"spot"},
		Synthesis:            "narrative",
		TopRelationshipMoves: []string{"call Dana"},
		AttentionCommentary:  map[string]string{"atlas": "most hours"},
	}}
	assembler := NewAssembler(weekSources(), synth)

	report := assembler.Generate(context.Background(), assemblerToday)

	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, models.ComputeWeekWindow(assemblerToday), report.Window)
	assert.Equal(t, 3, report.Performance.ScoredDays)

	// Review horizon: active decisions within 30 days, by proximity.
	require.Len(t, report.DecisionReviews, 2)
	assert.Equal(t, "Sooner", report.DecisionReviews[0].Decision.Title)
	assert.Equal(t, 3, report.DecisionReviews[0].DaysUntilReview)
	assert.Equal(t, "Double down on Atlas", report.DecisionReviews[1].Decision.Title)

	// Synthesis output merged back into the aggregates.
	require.NotEmpty(t, report.Attention)
	assert.Equal(t, "atlas", report.Attention[0].Project)
	assert.Equal(t, "most hours", report.Attention[0].Commentary)
	assert.Equal(t, []string{"call Dana"}, report.Network.TopMoves)
	assert.Equal(t, "narrative", report.Synthesis)

	// The adapter received the aggregates and the raw records.
	assert.Len(t, synth.input.Days, 3)
	assert.Equal(t, report.Performance, synth.input.Performance)
	assert.Equal(t, []string{"an insight"}, synth.input.Insights)
}

func TestGenerate_ContactFailureIsIsolated(t *testing.T) {
	sources := weekSources()
	sources.failContacts = true
	assembler := NewAssembler(sources, emptySynth())

	report := assembler.Generate(context.Background(), assemblerToday)

	// Network falls back to the zero-valued summary; everything else
	// is unaffected.
	assert.Equal(t, 0, report.Network.TotalContacts)
	assert.Equal(t, 0, report.Network.TouchedThisWeek)
	assert.InDelta(t, 0.0, report.Network.WarmIntroRate, 1e-9)
	assert.Equal(t, 3, report.Performance.ScoredDays)
	assert.NotEmpty(t, report.Attention)
}

func TestGenerate_AllSourcesFailingStillYieldsReport(t *testing.T) {
	assembler := NewAssembler(&stubSources{failAll: true}, emptySynth())

	report := assembler.Generate(context.Background(), assemblerToday)

	require.NotNil(t, report)
	assert.Equal(t, 0, report.Performance.ScoredDays)
	assert.Empty(t, report.Attention)
	assert.Empty(t, report.DecisionReviews)
}

func TestGenerate_DegradedSynthesisStillYieldsReport(t *testing.T) {
	assembler := NewAssembler(weekSources(), synthesis.NewAdapter(nil, time.Second))

	report := assembler.Generate(context.Background(), assemblerToday)

	require.NotNil(t, report)
	assert.True(t, report.Degraded)
	assert.NotEmpty(t, report.BlindSpots)
	assert.Empty(t, report.Antitheses)
	assert.Empty(t, report.Network.TopMoves)
	assert.Equal(t, 3, report.Performance.ScoredDays, "numeric fields unaffected by synthesis failure")
}

func TestGenerate_NumericFieldsIdempotent(t *testing.T) {
	assembler := NewAssembler(weekSources(), emptySynth())

	first := assembler.Generate(context.Background(), assemblerToday)
	second := assembler.Generate(context.Background(), assemblerToday)

	assert.Equal(t, first.Performance, second.Performance)
	assert.Equal(t, first.Network, second.Network)
	require.Equal(t, len(first.Attention), len(second.Attention))
	for i := range first.Attention {
		a, b := first.Attention[i], second.Attention[i]
		a.Commentary, b.Commentary = "", ""
		assert.Equal(t, a, b)
	}
}

func TestGenerate_OneScoredDayExample(t *testing.T) {
	window := models.ComputeWeekWindow(assemblerToday)
	sources := &stubSources{days: []models.DayRecord{{
		Date:  window.Start,
		Score: &models.ScoreResult{Score: 6},
	}}}
	assembler := NewAssembler(sources, emptySynth())

	report := assembler.Generate(context.Background(), assemblerToday)

	assert.InDelta(t, 6.0, report.Performance.AvgScore, 1e-9)
	assert.Equal(t, models.TrajectoryFlat, report.Performance.Trajectory)
	assert.InDelta(t, 0.0, report.Performance.CadenceHitRate, 1e-9)
	assert.Empty(t, report.Attention, "no project hours logged")
}
