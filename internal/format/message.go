// Package format renders a weekly calibration report as a text message
// using minimal emphasis markup (*bold*, _italic_). Length budgeting
// belongs to the delivery channel; every rendered line is
// self-contained so the channel can split on line boundaries.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/founderos/calibrate/internal/models"
)

// Report renders the full report in fixed block order.
func Report(r *models.WeeklyCalibrationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Weekly Calibration* — %s\n\n", r.Window.Label())

	writePerformance(&b, &r.Performance)
	writeAttention(&b, r.Attention)
	writeDecisions(&b, r.DecisionReviews, r.Antitheses)
	writeNetwork(&b, &r.Network)
	writeBlindSpots(&b, r.BlindSpots)

	if r.Synthesis != "" {
		fmt.Fprintf(&b, "_%s_\n", r.Synthesis)
	}
	return b.String()
}

func writePerformance(b *strings.Builder, p *models.PerformanceSummary) {
	fmt.Fprintf(b, "*Performance*\n")
	fmt.Fprintf(b, "Score %.1f/10 %s (%s)\n", p.AvgScore, p.Trajectory.Arrow(), p.Trajectory)
	fmt.Fprintf(b, "%.1fh focus · %d shipped · %d asks · %s revenue\n",
		p.FocusHours, p.Ships, p.RevenueAsks, Currency(p.Revenue))
	fmt.Fprintf(b, "%d conversations · %d intros · cadence %.0f%%\n\n",
		p.Conversations, p.Intros, p.CadenceHitRate)
}

func writeAttention(b *strings.Builder, allocations []models.AttentionAllocation) {
	fmt.Fprintf(b, "*Attention vs Value*\n")
	if len(allocations) == 0 {
		fmt.Fprintf(b, "No project hours logged this week.\n")
	}
	for _, a := range allocations {
		fmt.Fprintf(b, "%s — %.1fh (%d%%) → %s [%s]\n",
			a.Project, a.Hours, a.PercentOfTotal, Currency(a.Revenue), a.Health)
		if a.Commentary != "" {
			fmt.Fprintf(b, "_%s_\n", a.Commentary)
		}
	}
	b.WriteString("\n")
}

// writeDecisions pairs each upcoming review with its antithesis when
// one matches by decision title, then lists leftover antitheses.
func writeDecisions(b *strings.Builder, reviews []models.DecisionReview, antitheses []models.Antithesis) {
	if len(reviews) == 0 && len(antitheses) == 0 {
		return
	}
	fmt.Fprintf(b, "*Decisions Under Review*\n")

	used := make(map[int]bool, len(antitheses))
	for _, r := range reviews {
		fmt.Fprintf(b, "%s — review in %d days\n", r.Decision.Title, r.DaysUntilReview)
		for i, a := range antitheses {
			if used[i] || a.Decision != r.Decision.Title {
				continue
			}
			used[i] = true
			fmt.Fprintf(b, "_Counter: %s (%s)_\n", a.CounterArgument, a.KillCriteriaProximity)
			break
		}
	}
	for i, a := range antitheses {
		if used[i] {
			continue
		}
		fmt.Fprintf(b, "%s\n_Counter: %s (%s)_\n", a.Decision, a.CounterArgument, a.KillCriteriaProximity)
	}
	b.WriteString("\n")
}

func writeNetwork(b *strings.Builder, n *models.NetworkHealth) {
	fmt.Fprintf(b, "*Network*\n")
	fmt.Fprintf(b, "%d tracked · %d touched this week · %d stale high-priority · intro rate %.0f%%\n",
		n.TotalContacts, n.TouchedThisWeek, n.StaleHighPriority, n.WarmIntroRate)
	for i, move := range n.TopMoves {
		fmt.Fprintf(b, "%d. %s\n", i+1, move)
	}
	b.WriteString("\n")
}

func writeBlindSpots(b *strings.Builder, spots []string) {
	if len(spots) == 0 {
		return
	}
	fmt.Fprintf(b, "*Blind Spots*\n")
	for _, s := range spots {
		fmt.Fprintf(b, "⚠ %s\n", s)
	}
	b.WriteString("\n")
}

// Currency renders dollar amounts: "$0" for zero, "$X.Xk" at or above
// a thousand, otherwise a rounded integer with a leading dollar sign.
func Currency(v float64) string {
	switch {
	case v == 0:
		return "$0"
	case v >= 1000:
		return fmt.Sprintf("$%.1fk", math.Round(v/100)/10)
	default:
		return fmt.Sprintf("$%d", int(math.Round(v)))
	}
}
