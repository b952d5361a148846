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

var _ output.OrganizerRepository = (*OrganizerRepository)(nil)

type OrganizerRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizerRepository(pool *pgxpool.Pool) *OrganizerRepository {
	return &OrganizerRepository{pool: pool}
}

const organizerColumns = `id, name, email, api_key_hash, admin, created_at, updated_at`

func (r *OrganizerRepository) Create(ctx context.Context, organizer *entities.Organizer) error {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO organizers (name, email, api_key_hash, admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		organizer.Name, organizer.Email, organizer.APIKeyHash, organizer.Admin,
	)
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create organizer: %w", err)
	}
	organizer.ID = uint(id)
	organizer.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	organizer.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *OrganizerRepository) FindByID(ctx context.Context, id uint) (*entities.Organizer, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, int64(id))
	return scanOrganizer(row, "get organizer by id")
}

func (r *OrganizerRepository) FindByAPIKeyHash(ctx context.Context, hash string) (*entities.Organizer, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+organizerColumns+` FROM organizers WHERE api_key_hash = $1`, hash)
	return scanOrganizer(row, "get organizer by api key hash")
}

func scanOrganizer(row pgx.Row, op string) (*entities.Organizer, error) {
	var o entities.Organizer
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&id, &o.Name, &o.Email, &o.APIKeyHash, &o.Admin, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrganizerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	o.ID = uint(id)
	o.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	o.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &o, nil
}
