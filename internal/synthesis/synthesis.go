// Package synthesis delegates narrative judgment over the weekly
// aggregates to an external text-generation service under a strict
// input/output contract, degrading gracefully when the service fails.
package synthesis

import (
	"context"
	"time"

	"github.com/founderos/calibrate/internal/logger"
	"github.com/founderos/calibrate/internal/models"
)

// Input is everything the synthesis prompt embeds: the deterministic
// aggregates plus the raw per-day records and reference text.
type Input struct {
	Window      models.WeekWindow
	Days        []models.DayRecord
	Performance models.PerformanceSummary
	Attention   []models.AttentionAllocation
	Network     models.NetworkHealth
	Reviews     []models.DecisionReview
	Decisions   []models.Decision
	Insights    []string
	Principles  []string
}

// Synthesizer produces the narrative portion of a weekly report. It
// never fails: implementations degrade to a generic result instead.
type Synthesizer interface {
	Synthesize(ctx context.Context, in Input) models.SynthesisResult
}

const defaultTimeout = 60 * time.Second

// Adapter calls a text-generation client and validates its response.
type Adapter struct {
	client  Client
	timeout time.Duration
}

// Client is the narrow surface of the text-generation service the
// adapter depends on; tests substitute a stub.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NewAdapter builds an adapter. A nil client is allowed and yields
// degraded results, so a missing API key never blocks report
// generation.
func NewAdapter(client Client, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{client: client, timeout: timeout}
}

// Synthesize builds the prompt, calls the service and parses the
// response. Every failure mode, timeouts included, collapses to the
// degraded-but-valid result.
func (a *Adapter) Synthesize(ctx context.Context, in Input) models.SynthesisResult {
	if a.client == nil {
		logger.Warn("synthesis client not configured, producing degraded report")
		return DegradedResult()
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.GenerateText(ctx, BuildPrompt(in))
	if err != nil {
		logger.Warn("synthesis call failed, producing degraded report", "error", err)
		return DegradedResult()
	}

	result, err := parseResponse(raw)
	if err != nil {
		logger.Warn("synthesis response unparseable, producing degraded report", "error", err)
		return DegradedResult()
	}
	return result
}

// DegradedResult is the fallback when synthesis fails: empty lists, a
// single generic blind spot and a generic narrative. A report without
// narrative color is better than no report.
func DegradedResult() models.SynthesisResult {
	return models.SynthesisResult{
		Antitheses:           []models.Antithesis{},
		BlindSpots:           []string{"Synthesis unavailable this week; review the numbers manually."},
		Synthesis:            "Narrative synthesis could not be generated this week. The metrics above are complete and accurate.",
		TopRelationshipMoves: []string{},
		AttentionCommentary:  map[string]string{},
		Degraded:             true,
	}
}
