package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWeekWindow(t *testing.T) {
	cases := []struct {
		name      string
		today     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"wednesday", date(2025, 3, 12), date(2025, 3, 10), date(2025, 3, 16)},
		{"monday is its own window start", date(2025, 3, 10), date(2025, 3, 10), date(2025, 3, 16)},
		{"sunday is the window end", date(2025, 3, 16), date(2025, 3, 10), date(2025, 3, 16)},
		{"mid-day timestamps truncate", time.Date(2025, 3, 12, 17, 45, 3, 0, time.UTC), date(2025, 3, 10), date(2025, 3, 16)},
		{"across month boundary", date(2025, 4, 1), date(2025, 3, 31), date(2025, 4, 6)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ComputeWeekWindow(tc.today)
			assert.Equal(t, tc.wantStart, w.Start)
			assert.Equal(t, tc.wantEnd, w.End)
		})
	}
}

func TestWeekWindow_Days(t *testing.T) {
	w := ComputeWeekWindow(date(2025, 3, 12))
	days := w.Days()

	assert.Len(t, days, 7)
	assert.Equal(t, w.Start, days[0])
	assert.Equal(t, w.End, days[6])
	for _, d := range days {
		assert.True(t, w.Contains(d))
	}
}

func TestWeekWindow_ContainsIsInclusive(t *testing.T) {
	w := ComputeWeekWindow(date(2025, 3, 12))

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.End.Add(23*time.Hour)), "same calendar day counts")
	assert.False(t, w.Contains(w.Start.AddDate(0, 0, -1)))
	assert.False(t, w.Contains(w.End.AddDate(0, 0, 1)))
}

func TestShipTally(t *testing.T) {
	assert.Equal(t, 2, (&DayRecord{ShipCount: 2}).ShipTally())
	assert.Equal(t, 1, (&DayRecord{WhatShipped: "cut a release"}).ShipTally())
	assert.Equal(t, 0, (&DayRecord{}).ShipTally())
}

func TestNervousSystemNormalize(t *testing.T) {
	assert.Equal(t, NervousSystemSpiked, NervousSystemSpiked.Normalize())
	assert.Equal(t, NervousSystemRegulated, NervousSystemState("").Normalize())
	assert.Equal(t, NervousSystemRegulated, NervousSystemState("???").Normalize())
}
