package models

import "time"

// WeekWindow is the Monday-Sunday span a weekly report covers. It is
// derived purely from a given "today" and never persisted.
type WeekWindow struct {
	Start time.Time // Monday
	End   time.Time // Sunday
}

// ComputeWeekWindow returns the Monday-Sunday window containing today.
// If today is a Sunday it is the window's end day.
func ComputeWeekWindow(today time.Time) WeekWindow {
	day := Midnight(today)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	start := day.AddDate(0, 0, -offset)
	return WeekWindow{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Days returns the seven dates of the window in order.
func (w WeekWindow) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether t falls inside the window, inclusive on
// both ends.
func (w WeekWindow) Contains(t time.Time) bool {
	day := Midnight(t)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Label renders the window as a human-readable date range.
func (w WeekWindow) Label() string {
	return w.Start.Format("Jan 2") + " - " + w.End.Format("Jan 2, 2006")
}

// Midnight truncates a time to its calendar date, preserving location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
