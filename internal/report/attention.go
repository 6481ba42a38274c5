package report

import (
	"math"
	"sort"

	"github.com/founderos/calibrate/internal/models"
)

// onTrackHoursFloor is the weekly hour count that keeps a revenue-less
// project on track.
const onTrackHoursFloor = 3.0

// unassignedBucket collects hours from days without a project label.
const unassignedBucket = "unassigned"

// AggregateAttention groups the week's focus hours and revenue by
// project and classifies each project's health.
func AggregateAttention(days []models.DayRecord, projects []models.Project) []models.AttentionAllocation {
	type bucket struct {
		hours   float64
		revenue float64
	}
	buckets := make(map[string]*bucket)

	add := func(name string, hours, revenue float64) {
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
		}
		b.hours += hours
		b.revenue += revenue
	}

	for i := range days {
		d := &days[i]
		if len(d.ProjectHours) > 0 {
			// Intra-day splits attribute hours precisely; revenue still
			// follows the assigned project.
			for name, h := range d.ProjectHours {
				add(projectLabel(name), h, 0)
			}
			add(projectLabel(d.Project), 0, d.RevenueAmount)
			continue
		}
		add(projectLabel(d.Project), d.FocusHours, d.RevenueAmount)
	}

	if b, ok := buckets[unassignedBucket]; ok && b.hours == 0 {
		delete(buckets, unassignedBucket)
	}

	totalHours := 0.0
	for _, b := range buckets {
		totalHours += b.hours
	}
	// Shared denominator for every percent; never divide by zero.
	denominator := totalHours
	if denominator == 0 {
		denominator = 1
	}

	byName := make(map[string]*models.Project, len(projects))
	for i := range projects {
		byName[projects[i].Name] = &projects[i]
	}

	allocations := make([]models.AttentionAllocation, 0, len(buckets))
	for name, b := range buckets {
		allocations = append(allocations, models.AttentionAllocation{
			Project:        name,
			Hours:          b.hours,
			PercentOfTotal: int(math.Round(b.hours / denominator * 100)),
			Revenue:        b.revenue,
			Health:         classifyHealth(byName[name], b.hours, b.revenue),
		})
	}

	sort.Slice(allocations, func(i, j int) bool {
		if allocations[i].Hours != allocations[j].Hours {
			return allocations[i].Hours > allocations[j].Hours
		}
		return allocations[i].Project < allocations[j].Project
	})
	return allocations
}

// classifyHealth applies the health rules in priority order: NEW for
// pre-launch projects, then ON_TRACK, STALLED, DORMANT. Projects
// without metadata but with hours default to ON_TRACK.
func classifyHealth(meta *models.Project, hours, revenue float64) models.ProjectHealth {
	if meta != nil && meta.PreLaunch() {
		return models.HealthNew
	}
	if hours > 0 && (revenue > 0 || hours >= onTrackHoursFloor) {
		return models.HealthOnTrack
	}
	if hours > 0 && revenue == 0 {
		if meta == nil {
			return models.HealthOnTrack
		}
		return models.HealthStalled
	}
	return models.HealthDormant
}

func projectLabel(name string) string {
	if name == "" {
		return unassignedBucket
	}
	return name
}
