package report

import (
	"time"

	"github.com/founderos/calibrate/internal/models"
)

// staleAfterDays is how long a high-priority contact can go untouched
// before counting as stale.
const staleAfterDays = 14

// AggregateNetwork summarizes contact health for the week. today is
// the injected report date; the window's day records supply the
// intro count for the warm-intro rate.
func AggregateNetwork(days []models.DayRecord, contacts []models.Contact, window models.WeekWindow, today time.Time) models.NetworkHealth {
	health := models.NetworkHealth{TotalContacts: len(contacts)}

	staleBefore := models.Midnight(today).AddDate(0, 0, -staleAfterDays)
	highPriorityTouched := 0
	for i := range contacts {
		c := &contacts[i]
		if window.Contains(c.LastTouch) {
			health.TouchedThisWeek++
			if c.HighPriority() {
				highPriorityTouched++
			}
		}
		if c.HighPriority() && !c.LastTouch.IsZero() && c.LastTouch.Before(staleBefore) {
			health.StaleHighPriority++
			health.StaleContacts = append(health.StaleContacts, *c)
		}
	}

	introsThisWeek := 0
	for i := range days {
		introsThisWeek += days[i].Intros
	}
	if highPriorityTouched > 0 {
		health.WarmIntroRate = float64(introsThisWeek) / float64(highPriorityTouched) * 100
	}
	return health
}
