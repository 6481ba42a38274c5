package synthesis

import (
	"fmt"
	"strings"
)

// BuildPrompt serializes the full aggregate into one structured prompt.
// Every numeric aggregate, decision, stale contact, insight and
// principle the service is allowed to reason over is embedded here; the
// service sees nothing else.
func BuildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a weekly calibration analyst for a solo founder.\n")
	fmt.Fprintf(&b, "Week under review: %s.\n\n", in.Window.Label())

	fmt.Fprintf(&b, "## Performance\n")
	fmt.Fprintf(&b, "Average score: %.2f/10 across %d scored days, trajectory %s.\n",
		in.Performance.AvgScore, in.Performance.ScoredDays, in.Performance.Trajectory)
	fmt.Fprintf(&b, "Totals: %.1f focus hours, %d ships, %d revenue asks, $%.2f revenue, %d conversations, %d intros.\n",
		in.Performance.FocusHours, in.Performance.Ships, in.Performance.RevenueAsks,
		in.Performance.Revenue, in.Performance.Conversations, in.Performance.Intros)
	fmt.Fprintf(&b, "Cadence hit-rate: %.0f%% of days met every required condition.\n\n", in.Performance.CadenceHitRate)

	fmt.Fprintf(&b, "## Attention allocation\n")
	if len(in.Attention) == 0 {
		fmt.Fprintf(&b, "No project hours were logged this week.\n")
	}
	for _, a := range in.Attention {
		fmt.Fprintf(&b, "- %s: %.1fh (%d%%), $%.2f revenue, health %s\n",
			a.Project, a.Hours, a.PercentOfTotal, a.Revenue, a.Health)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Active decisions\n")
	if len(in.Decisions) == 0 {
		fmt.Fprintf(&b, "None.\n")
	}
	for _, d := range in.Decisions {
		fmt.Fprintf(&b, "- %q\n  Hypothesis: %s\n  Chosen option: %s\n  Reasoning: %s\n  Kill criteria: %s\n",
			d.Title, d.Hypothesis, d.ChosenOption, d.Reasoning, d.KillCriteria)
	}
	for _, r := range in.Reviews {
		fmt.Fprintf(&b, "- %q is due for review in %d days\n", r.Decision.Title, r.DaysUntilReview)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Network\n")
	fmt.Fprintf(&b, "%d contacts tracked, %d touched this week, warm-intro rate %.0f%%.\n",
		in.Network.TotalContacts, in.Network.TouchedThisWeek, in.Network.WarmIntroRate)
	for _, c := range in.Network.StaleContacts {
		fmt.Fprintf(&b, "- STALE high-priority contact: %s (last touch %s)\n",
			c.Name, c.LastTouch.Format("2006-01-02"))
	}
	b.WriteString("\n")

	if len(in.Insights) > 0 {
		fmt.Fprintf(&b, "## Recent insights\n")
		for _, s := range in.Insights {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(in.Principles) > 0 {
		fmt.Fprintf(&b, "## Reinforced principles\n")
		for _, s := range in.Principles {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Daily records\n")
	for i := range in.Days {
		d := &in.Days[i]
		score := "unscored"
		if d.Score != nil {
			score = fmt.Sprintf("%.1f", d.Score.Score)
		}
		fmt.Fprintf(&b, "- %s: score %s, %.1fh focus, project %q, shipped %q, ns %s\n",
			d.Date.Format("Mon 2006-01-02"), score, d.FocusHours, d.Project, d.WhatShipped,
			d.NervousSystem.Normalize())
	}
	b.WriteString("\n")

	b.WriteString(`Respond with exactly one JSON object and nothing else, using this schema:
{
  "antitheses": [{"decision": "...", "counterArgument": "...", "killCriteriaProximity": "..."}],
  "blindSpots": ["3-5 short strings"],
  "synthesis": "narrative summary, at most about 200 words",
  "topRelationshipMoves": ["up to 3 strings"],
  "attentionCommentary": {"projectName": "one-sentence commentary"}
}
Produce one antithesis per active decision. Do not wrap the JSON in markdown fences.`)

	return b.String()
}
