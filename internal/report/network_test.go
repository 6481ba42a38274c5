package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/founderos/calibrate/internal/models"
)

var networkToday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // a Wednesday

func TestAggregateNetwork_Counts(t *testing.T) {
	window := models.ComputeWeekWindow(networkToday)
	contacts := []models.Contact{
		{Name: "Dana", Priority: "high", LastTouch: window.Start},                    // touched (inclusive start)
		{Name: "Lee", Priority: "high", LastTouch: window.End},                       // touched (inclusive end)
		{Name: "Sam", Priority: "normal", LastTouch: window.Start.AddDate(0, 0, -1)}, // outside window
		{Name: "Kim", Priority: "high", LastTouch: networkToday.AddDate(0, 0, -20)},  // stale
		{Name: "Ash", Priority: "normal", LastTouch: networkToday.AddDate(0, 0, -40)},
	}
	days := []models.DayRecord{{Intros: 1}}

	health := AggregateNetwork(days, contacts, window, networkToday)

	assert.Equal(t, 5, health.TotalContacts)
	assert.Equal(t, 2, health.TouchedThisWeek)
	assert.Equal(t, 1, health.StaleHighPriority, "only high-priority contacts go stale")
	assert.Len(t, health.StaleContacts, 1)
	assert.Equal(t, "Kim", health.StaleContacts[0].Name)
	// 1 intro / 2 high-priority touched = 50%.
	assert.InDelta(t, 50.0, health.WarmIntroRate, 1e-9)
}

func TestAggregateNetwork_ZeroDenominatorIntroRate(t *testing.T) {
	window := models.ComputeWeekWindow(networkToday)
	days := []models.DayRecord{{Intros: 3}}

	health := AggregateNetwork(days, nil, window, networkToday)
	assert.InDelta(t, 0.0, health.WarmIntroRate, 1e-9, "no touched high-priority contacts means rate 0, not a division error")
}

func TestAggregateNetwork_FourteenDayBoundary(t *testing.T) {
	window := models.ComputeWeekWindow(networkToday)
	contacts := []models.Contact{
		{Name: "Edge", Priority: "high", LastTouch: networkToday.AddDate(0, 0, -14)},
		{Name: "Past", Priority: "high", LastTouch: networkToday.AddDate(0, 0, -15)},
	}
	health := AggregateNetwork(nil, contacts, window, networkToday)

	assert.Equal(t, 1, health.StaleHighPriority, "staleness requires more than 14 days")
	assert.Equal(t, "Past", health.StaleContacts[0].Name)
}

func TestAggregateNetwork_NeverTouchedIsNotStale(t *testing.T) {
	window := models.ComputeWeekWindow(networkToday)
	contacts := []models.Contact{{Name: "New", Priority: "high"}}
	health := AggregateNetwork(nil, contacts, window, networkToday)
	assert.Equal(t, 0, health.StaleHighPriority)
}
