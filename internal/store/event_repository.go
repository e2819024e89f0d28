package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/timeaxis/timeaxis/internal/models"
)

// Event repository errors.
var ErrEventNotFound = errors.New("event not found")

// EventRepository handles custom event persistence.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a custom event, assigning an id when missing.
func (r *EventRepository) Create(ctx context.Context, event *models.HistoricalEvent) error {
	event.IsCustom = true
	if err := event.Validate(); err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	tagsJSON, err := json.Marshal(event.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO custom_events (id, year, track, title, title_zh, tags_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.Year,
		string(event.Track),
		event.Title,
		event.TitleZH,
		string(tagsJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Get retrieves a custom event by id.
func (r *EventRepository) Get(ctx context.Context, id string) (*models.HistoricalEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, year, track, title, title_zh, tags_json FROM custom_events WHERE id = ?
	`, id)

	event, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// List returns all custom events sorted by year ascending.
func (r *EventRepository) List(ctx context.Context) ([]models.HistoricalEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, year, track, title, title_zh, tags_json FROM custom_events ORDER BY year, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.HistoricalEvent
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// Update replaces a custom event record.
func (r *EventRepository) Update(ctx context.Context, event models.HistoricalEvent) error {
	event.IsCustom = true
	if err := event.Validate(); err != nil {
		return err
	}

	tagsJSON, err := json.Marshal(event.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE custom_events SET year = ?, track = ?, title = ?, title_zh = ?, tags_json = ? WHERE id = ?
	`, event.Year, string(event.Track), event.Title, event.TitleZH, string(tagsJSON), event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes a custom event by id.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM custom_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(scan func(...any) error) (*models.HistoricalEvent, error) {
	var (
		event    models.HistoricalEvent
		track    string
		tagsJSON string
	)
	if err := scan(&event.ID, &event.Year, &track, &event.Title, &event.TitleZH, &tagsJSON); err != nil {
		return nil, err
	}

	event.Track = models.Track(track)
	event.IsCustom = true
	if err := json.Unmarshal([]byte(tagsJSON), &event.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return &event, nil
}
