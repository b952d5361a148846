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

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

const registrationColumns = `id, event_id, email, first_name, last_name, notes,
	status, cancel_token, created_at, updated_at`

func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO registrations (event_id, email, first_name, last_name, notes, status, cancel_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		int64(registration.EventID), registration.Email, registration.FirstName,
		registration.LastName, registration.Notes, registration.Status, registration.CancelToken,
	)
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	registration.ID = uint(id)
	registration.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	registration.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (*entities.Registration, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, int64(id))
	return scanRegistration(row, "get registration by id")
}

func (r *RegistrationRepository) FindByCancelToken(ctx context.Context, token string) (*entities.Registration, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE cancel_token = $1`, token)
	return scanRegistration(row, "get registration by cancel token")
}

func (r *RegistrationRepository) FindByEventIDAndEmail(ctx context.Context, eventID uint, email string) (*entities.Registration, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 AND email = $2`,
		int64(eventID), email)
	return scanRegistration(row, "get registration by event id and email")
}

func (r *RegistrationRepository) FindByEventID(ctx context.Context, eventID uint) ([]entities.Registration, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 ORDER BY created_at, id`,
		int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get registrations by event id: %w", err)
	}
	return collectRegistrations(rows)
}

func (r *RegistrationRepository) FindByEventIDAndStatus(ctx context.Context, eventID uint, status string) ([]entities.Registration, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = $1 AND status = $2 ORDER BY created_at, id`,
		int64(eventID), status)
	if err != nil {
		return nil, fmt.Errorf("get registrations by event id and status: %w", err)
	}
	return collectRegistrations(rows)
}

// FindOldestWaitlisted returns the next registration in FIFO promotion
// order. Ties on created_at break on id, which follows insertion order.
func (r *RegistrationRepository) FindOldestWaitlisted(ctx context.Context, eventID uint) (*entities.Registration, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at, id LIMIT 1`,
		int64(eventID), domain.StatusWaitlist)
	return scanRegistration(row, "get oldest waitlisted registration")
}

func (r *RegistrationRepository) Update(ctx context.Context, registration *entities.Registration) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE registrations
		SET first_name = $2, last_name = $3, notes = $4, status = $5, updated_at = now()
		WHERE id = $1`,
		int64(registration.ID), registration.FirstName, registration.LastName,
		registration.Notes, registration.Status,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if _, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM registrations WHERE id = $1`, int64(id)); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) CountByEventIDAndStatus(ctx context.Context, eventID uint, status string) (int64, error) {
	var count int64
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE event_id = $1 AND status = $2`,
		int64(eventID), status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func scanRegistration(row pgx.Row, op string) (*entities.Registration, error) {
	var reg entities.Registration
	var id, eventID int64
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&id, &eventID, &reg.Email, &reg.FirstName, &reg.LastName,
		&reg.Notes, &reg.Status, &reg.CancelToken, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	reg.ID = uint(id)
	reg.EventID = uint(eventID)
	reg.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	reg.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &reg, nil
}

func collectRegistrations(rows pgx.Rows) ([]entities.Registration, error) {
	defer rows.Close()
	var out []entities.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows, "scan registration")
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}
