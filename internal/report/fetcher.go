package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/founderos/calibrate/internal/logger"
	"github.com/founderos/calibrate/internal/models"
)

// Sources are the external read collaborators the report draws from.
// Each is fetched independently; a failing source contributes its
// fallback value without affecting the others.
type Sources interface {
	GetDayRecords(ctx context.Context, dates []time.Time) ([]models.DayRecord, error)
	GetActiveDecisions(ctx context.Context) ([]models.Decision, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetNetworkContacts(ctx context.Context) ([]models.Contact, error)
	GetRecentInsights(ctx context.Context, limit int) ([]string, error)
	GetTopPrinciples(ctx context.Context, limit int) ([]string, error)
}

const (
	insightLimit   = 10
	principleLimit = 5
)

// fetched is the point-in-time snapshot of every source.
type fetched struct {
	days       []models.DayRecord
	decisions  []models.Decision
	projects   []models.Project
	contacts   []models.Contact
	insights   []string
	principles []string
}

// fetchAll retrieves the week's day records first (the other
// aggregators depend on them), then the remaining sources
// concurrently. No retries: a failed source simply contributes its
// fallback for this invocation.
func fetchAll(ctx context.Context, src Sources, window models.WeekWindow) fetched {
	var data fetched

	data.days = guard(ctx, "day_records", []models.DayRecord{}, func(ctx context.Context) ([]models.DayRecord, error) {
		return src.GetDayRecords(ctx, window.Days())
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.decisions = guard(gctx, "decisions", []models.Decision{}, src.GetActiveDecisions)
		return nil
	})
	g.Go(func() error {
		data.projects = guard(gctx, "projects", []models.Project{}, src.GetProjects)
		return nil
	})
	g.Go(func() error {
		data.contacts = guard(gctx, "contacts", []models.Contact{}, src.GetNetworkContacts)
		return nil
	})
	g.Go(func() error {
		data.insights = guard(gctx, "insights", []string{}, func(ctx context.Context) ([]string, error) {
			return src.GetRecentInsights(ctx, insightLimit)
		})
		return nil
	})
	g.Go(func() error {
		data.principles = guard(gctx, "principles", []string{}, func(ctx context.Context) ([]string, error) {
			return src.GetTopPrinciples(ctx, principleLimit)
		})
		return nil
	})
	// The goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	return data
}

// guard isolates one source fetch: on failure it logs and substitutes
// the fallback instead of propagating.
func guard[T any](ctx context.Context, name string, fallback T, fn func(context.Context) (T, error)) T {
	value, err := fn(ctx)
	if err != nil {
		logger.Warn("source fetch failed, using fallback", "source", name, "error", err)
		return fallback
	}
	return value
}
