package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/founderos/calibrate/internal/models"
)

// AddDecision inserts a decision, assigning an ID when absent.
func (s *Store) AddDecision(ctx context.Context, d *models.Decision) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = "active"
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO decisions (id, title, hypothesis, chosen_option, reasoning, kill_criteria, review_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.ExecContext(ctx, query,
		d.ID, d.Title, d.Hypothesis, d.ChosenOption, d.Reasoning, d.KillCriteria,
		nullDate(d.ReviewDate), d.Status, d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}

// GetActiveDecisions returns decisions still open for review.
func (s *Store) GetActiveDecisions(ctx context.Context) ([]models.Decision, error) {
	query := `
		SELECT id, title, hypothesis, chosen_option, reasoning, kill_criteria, review_date, status, created_at
		FROM decisions
		WHERE status = 'active'
		ORDER BY review_date ASC
	`
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decisions []models.Decision
	for rows.Next() {
		var d models.Decision
		var reviewDate, createdAt sql.NullString
		err := rows.Scan(&d.ID, &d.Title, &d.Hypothesis, &d.ChosenOption,
			&d.Reasoning, &d.KillCriteria, &reviewDate, &d.Status, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		if reviewDate.Valid && reviewDate.String != "" {
			if t, err := time.Parse(dateFormat, reviewDate.String); err == nil {
				d.ReviewDate = t
			}
		}
		if createdAt.Valid {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				d.CreatedAt = t
			}
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// CloseDecision marks a decision closed or killed.
func (s *Store) CloseDecision(ctx context.Context, id, status string) error {
	_, err := s.ExecContext(ctx, "UPDATE decisions SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to close decision: %w", err)
	}
	return nil
}

// UpsertProject inserts or updates a project's metadata.
func (s *Store) UpsertProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (name, stage, archived) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET stage=excluded.stage, archived=excluded.archived
	`
	archived := 0
	if p.Archived {
		archived = 1
	}
	if _, err := s.ExecContext(ctx, query, p.Name, p.Stage, archived); err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

// GetProjects returns all non-archived projects.
func (s *Store) GetProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.QueryContext(ctx,
		"SELECT name, stage, archived FROM projects WHERE archived = 0 ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var archived int
		if err := rows.Scan(&p.Name, &p.Stage, &archived); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Archived = archived != 0
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpsertContact inserts or updates a contact.
func (s *Store) UpsertContact(ctx context.Context, c *models.Contact) error {
	query := `
		INSERT INTO contacts (name, priority, last_touch) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET priority=excluded.priority, last_touch=excluded.last_touch
	`
	if _, err := s.ExecContext(ctx, query, c.Name, c.Priority, nullDate(c.LastTouch)); err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

// TouchContact records an interaction with a contact.
func (s *Store) TouchContact(ctx context.Context, name string, when time.Time) error {
	result, err := s.ExecContext(ctx,
		"UPDATE contacts SET last_touch = ? WHERE name = ?", when.Format(dateFormat), name)
	if err != nil {
		return fmt.Errorf("failed to touch contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("contact %q not found", name)
	}
	return nil
}

// GetNetworkContacts returns every tracked contact.
func (s *Store) GetNetworkContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.QueryContext(ctx,
		"SELECT name, priority, last_touch FROM contacts ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var lastTouch sql.NullString
		if err := rows.Scan(&c.Name, &c.Priority, &lastTouch); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		if lastTouch.Valid && lastTouch.String != "" {
			if t, err := time.Parse(dateFormat, lastTouch.String); err == nil {
				c.LastTouch = t
			}
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// AddInsight stores a free-text insight.
func (s *Store) AddInsight(ctx context.Context, text string) error {
	if _, err := s.ExecContext(ctx, "INSERT INTO insights (text) VALUES (?)", text); err != nil {
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

// GetRecentInsights returns the newest insights, newest first.
func (s *Store) GetRecentInsights(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.QueryContext(ctx,
		"SELECT text FROM insights ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query insights: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanStrings(rows)
}

// AddPrinciple stores a principle.
func (s *Store) AddPrinciple(ctx context.Context, text string) error {
	if _, err := s.ExecContext(ctx, "INSERT INTO principles (text) VALUES (?)", text); err != nil {
		return fmt.Errorf("failed to insert principle: %w", err)
	}
	return nil
}

// ReinforcePrinciple bumps a principle's reinforcement count.
func (s *Store) ReinforcePrinciple(ctx context.Context, text string) error {
	result, err := s.ExecContext(ctx,
		"UPDATE principles SET reinforced = reinforced + 1 WHERE text = ?", text)
	if err != nil {
		return fmt.Errorf("failed to reinforce principle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("principle %q not found", text)
	}
	return nil
}

// GetTopPrinciples returns the most reinforced principles.
func (s *Store) GetTopPrinciples(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.QueryContext(ctx,
		"SELECT text FROM principles ORDER BY reinforced DESC, id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query principles: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// nullDate formats a date for storage, mapping the zero time to NULL.
func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateFormat)
}
