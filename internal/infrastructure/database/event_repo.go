package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventdesk/internal/domain"
	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, slug, title, description, mode, location,
	capacity, waitlist_enabled, status, starts_at, ends_at, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO events (organizer_id, slug, title, description, mode, location,
			capacity, waitlist_enabled, status, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		event.OrganizerID, event.Slug, event.Title, event.Description, event.Mode,
		event.Location, intPtrToPgtype(event.Capacity), event.WaitlistEnabled,
		event.Status, timeToPgtype(event.StartsAt), timeToPgtype(event.EndsAt),
	)
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = uint(id)
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, int64(id))
	return scanEvent(row, "get event by id")
}

func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*entities.Event, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
	return scanEvent(row, "get event by slug")
}

// FindByIDForUpdate takes a row-level lock on the event for the duration
// of the surrounding transaction. Admissions and cancellations on the same
// event serialize on this lock; other events are unaffected.
func (r *EventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, int64(id))
	return scanEvent(row, "lock event")
}

func (r *EventRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]entities.Event, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organizer_id = $1 ORDER BY starts_at`, int64(organizerID))
	if err != nil {
		return nil, fmt.Errorf("get events by organizer id: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		event, err := scanEvent(rows, "scan event")
		if err != nil {
			return nil, err
		}
		out = append(out, *event)
	}
	return out, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE events
		SET slug = $2, title = $3, description = $4, mode = $5, location = $6,
			capacity = $7, waitlist_enabled = $8, status = $9,
			starts_at = $10, ends_at = $11, updated_at = now()
		WHERE id = $1`,
		int64(event.ID), event.Slug, event.Title, event.Description, event.Mode,
		event.Location, intPtrToPgtype(event.Capacity), event.WaitlistEnabled,
		event.Status, timeToPgtype(event.StartsAt), timeToPgtype(event.EndsAt),
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if _, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM events WHERE id = $1`, int64(id)); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row, op string) (*entities.Event, error) {
	var e entities.Event
	var id, organizerID int64
	var capacity pgtype.Int4
	var startsAt, endsAt, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&id, &organizerID, &e.Slug, &e.Title, &e.Description, &e.Mode,
		&e.Location, &capacity, &e.WaitlistEnabled, &e.Status,
		&startsAt, &endsAt, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.ID = uint(id)
	e.OrganizerID = uint(organizerID)
	e.Capacity = pgtypeToIntPtr(capacity)
	e.StartsAt = pgtypeTimestamptzToTime(startsAt)
	e.EndsAt = pgtypeTimestamptzToTime(endsAt)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &e, nil
}
