package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/founderos/calibrate/internal/models"
	"github.com/founderos/calibrate/internal/score"
)

// SaveDayRecord computes the record's score (pulling the previous
// day's score for the delta) and upserts the row. Saving the same date
// again overwrites the entry and recomputes from the new inputs.
func (s *Store) SaveDayRecord(ctx context.Context, rec *models.DayRecord, weights score.Weights) error {
	prev, err := s.scoreFor(ctx, rec.Date.AddDate(0, 0, -1))
	if err != nil {
		return err
	}

	result := score.Compute(rec, prev, weights)
	rec.Score = &result

	projectHours, err := json.Marshal(rec.ProjectHours)
	if err != nil {
		return fmt.Errorf("failed to encode project hours: %w", err)
	}
	components, err := json.Marshal(result.Components)
	if err != nil {
		return fmt.Errorf("failed to encode components: %w", err)
	}

	query := `
		INSERT INTO day_records (
			date, sleep_hours, training_minutes, body_felt, nervous_system,
			focus_hours, ship_count, what_shipped, revenue_asks, revenue_amount,
			conversations, intros, meetings, posts,
			study_minutes, insights_logged, practice_minutes, new_contacts,
			project, project_hours, score, score_delta, components, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			sleep_hours=excluded.sleep_hours,
			training_minutes=excluded.training_minutes,
			body_felt=excluded.body_felt,
			nervous_system=excluded.nervous_system,
			focus_hours=excluded.focus_hours,
			ship_count=excluded.ship_count,
			what_shipped=excluded.what_shipped,
			revenue_asks=excluded.revenue_asks,
			revenue_amount=excluded.revenue_amount,
			conversations=excluded.conversations,
			intros=excluded.intros,
			meetings=excluded.meetings,
			posts=excluded.posts,
			study_minutes=excluded.study_minutes,
			insights_logged=excluded.insights_logged,
			practice_minutes=excluded.practice_minutes,
			new_contacts=excluded.new_contacts,
			project=excluded.project,
			project_hours=excluded.project_hours,
			score=excluded.score,
			score_delta=excluded.score_delta,
			components=excluded.components,
			updated_at=CURRENT_TIMESTAMP
	`

	var delta any
	if result.Delta != nil {
		delta = *result.Delta
	}
	_, err = s.ExecContext(ctx, query,
		rec.Date.Format(dateFormat),
		rec.SleepHours,
		rec.TrainingMinutes,
		rec.BodyFelt,
		string(rec.NervousSystem.Normalize()),
		rec.FocusHours,
		rec.ShipCount,
		rec.WhatShipped,
		rec.RevenueAsks,
		rec.RevenueAmount,
		rec.Conversations,
		rec.Intros,
		rec.Meetings,
		rec.Posts,
		rec.StudyMinutes,
		rec.InsightsLogged,
		rec.PracticeMinutes,
		rec.NewContacts,
		rec.Project,
		string(projectHours),
		result.Score,
		delta,
		string(components),
	)
	if err != nil {
		return fmt.Errorf("failed to save day record: %w", err)
	}
	return nil
}

// GetDayRecords returns the records that exist for the given dates.
// Missing dates are silently omitted, never padded with empty records.
func (s *Store) GetDayRecords(ctx context.Context, dates []time.Time) ([]models.DayRecord, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(dates))
	args := make([]any, len(dates))
	for i, d := range dates {
		placeholders[i] = "?"
		args[i] = d.Format(dateFormat)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM day_records
		WHERE date IN (%s)
		ORDER BY date ASC
	`, dayRecordColumns, strings.Join(placeholders, ","))

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.DayRecord
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// GetDayRecord returns one date's record, or nil when none exists.
func (s *Store) GetDayRecord(ctx context.Context, date time.Time) (*models.DayRecord, error) {
	records, err := s.GetDayRecords(ctx, []time.Time{date})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetScoreHistory returns the most recent scored days in ascending
// date order, at most limit entries.
func (s *Store) GetScoreHistory(ctx context.Context, limit int) ([]models.DayRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM day_records
		WHERE score IS NOT NULL
		ORDER BY date DESC
		LIMIT ?
	`, dayRecordColumns)

	rows, err := s.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query score history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.DayRecord
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse into ascending order for charting.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

const dayRecordColumns = `date, sleep_hours, training_minutes, body_felt, nervous_system,
		focus_hours, ship_count, what_shipped, revenue_asks, revenue_amount,
		conversations, intros, meetings, posts,
		study_minutes, insights_logged, practice_minutes, new_contacts,
		project, project_hours, score, score_delta, components`

func scanDayRecord(rows *sql.Rows) (*models.DayRecord, error) {
	var rec models.DayRecord
	var dateStr, nervousSystem, projectHours string
	var scoreVal, scoreDelta sql.NullFloat64
	var components sql.NullString

	err := rows.Scan(
		&dateStr,
		&rec.SleepHours,
		&rec.TrainingMinutes,
		&rec.BodyFelt,
		&nervousSystem,
		&rec.FocusHours,
		&rec.ShipCount,
		&rec.WhatShipped,
		&rec.RevenueAsks,
		&rec.RevenueAmount,
		&rec.Conversations,
		&rec.Intros,
		&rec.Meetings,
		&rec.Posts,
		&rec.StudyMinutes,
		&rec.InsightsLogged,
		&rec.PracticeMinutes,
		&rec.NewContacts,
		&rec.Project,
		&projectHours,
		&scoreVal,
		&scoreDelta,
		&components,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan day record: %w", err)
	}

	date, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date %q: %w", dateStr, err)
	}
	rec.Date = date
	rec.NervousSystem = models.NervousSystemState(nervousSystem)

	if projectHours != "" {
		if err := json.Unmarshal([]byte(projectHours), &rec.ProjectHours); err != nil {
			return nil, fmt.Errorf("failed to decode project hours: %w", err)
		}
	}

	if scoreVal.Valid {
		result := &models.ScoreResult{Score: scoreVal.Float64}
		if scoreDelta.Valid {
			delta := scoreDelta.Float64
			result.Delta = &delta
		}
		if components.Valid && components.String != "" {
			if err := json.Unmarshal([]byte(components.String), &result.Components); err != nil {
				return nil, fmt.Errorf("failed to decode components: %w", err)
			}
		}
		rec.Score = result
	}
	return &rec, nil
}

// scoreFor returns the stored score for a date, nil when the date has
// no scored record.
func (s *Store) scoreFor(ctx context.Context, date time.Time) (*float64, error) {
	var value sql.NullFloat64
	err := s.QueryRowContext(ctx,
		"SELECT score FROM day_records WHERE date = ?", date.Format(dateFormat),
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query previous score: %w", err)
	}
	if !value.Valid {
		return nil, nil
	}
	v := value.Float64
	return &v, nil
}
