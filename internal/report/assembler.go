package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/founderos/calibrate/internal/models"
	"github.com/founderos/calibrate/internal/synthesis"
)

// reviewHorizonDays is how far ahead a decision's review date may lie
// and still appear in the report.
const reviewHorizonDays = 30

// Assembler orchestrates fetch, aggregation, synthesis and merge. It
// performs the pipeline's only I/O orchestration and holds no scoring
// or classification logic of its own.
type Assembler struct {
	sources Sources
	synth   synthesis.Synthesizer
}

// NewAssembler wires the assembler to its collaborators.
func NewAssembler(sources Sources, synth synthesis.Synthesizer) *Assembler {
	return &Assembler{sources: sources, synth: synth}
}

// Generate builds the weekly calibration report for the week
// containing today. It always returns a report: failing sources fall
// back per source and a failing synthesis degrades the narrative
// fields only.
func (a *Assembler) Generate(ctx context.Context, today time.Time) *models.WeeklyCalibrationReport {
	window := models.ComputeWeekWindow(today)
	data := fetchAll(ctx, a.sources, window)

	performance := AggregatePerformance(data.days)
	attention := AggregateAttention(data.days, data.projects)
	network := AggregateNetwork(data.days, data.contacts, window, today)
	reviews := upcomingReviews(data.decisions, today)

	result := a.synth.Synthesize(ctx, synthesis.Input{
		Window:      window,
		Days:        data.days,
		Performance: performance,
		Attention:   attention,
		Network:     network,
		Reviews:     reviews,
		Decisions:   data.decisions,
		Insights:    data.insights,
		Principles:  data.principles,
	})

	// Merge the narrative output into the deterministic aggregates.
	for i := range attention {
		if commentary, ok := result.AttentionCommentary[attention[i].Project]; ok {
			attention[i].Commentary = commentary
		}
	}
	network.TopMoves = result.TopRelationshipMoves

	return &models.WeeklyCalibrationReport{
		ID:              uuid.NewString(),
		Window:          window,
		GeneratedAt:     time.Now(),
		Performance:     performance,
		DecisionReviews: reviews,
		Attention:       attention,
		Network:         network,
		Antitheses:      result.Antitheses,
		BlindSpots:      result.BlindSpots,
		Synthesis:       result.Synthesis,
		Degraded:        result.Degraded,
	}
}

// upcomingReviews selects active decisions whose review date falls
// within the horizon, sorted by proximity.
func upcomingReviews(decisions []models.Decision, today time.Time) []models.DecisionReview {
	day := models.Midnight(today)
	horizon := day.AddDate(0, 0, reviewHorizonDays)

	var reviews []models.DecisionReview
	for i := range decisions {
		d := decisions[i]
		if !d.Active() || d.ReviewDate.IsZero() {
			continue
		}
		review := models.Midnight(d.ReviewDate)
		if review.Before(day) || review.After(horizon) {
			continue
		}
		reviews = append(reviews, models.DecisionReview{
			Decision:        d,
			DaysUntilReview: int(review.Sub(day).Hours() / 24),
		})
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].DaysUntilReview != reviews[j].DaysUntilReview {
			return reviews[i].DaysUntilReview < reviews[j].DaysUntilReview
		}
		return reviews[i].Decision.Title < reviews[j].Decision.Title
	})
	return reviews
}
