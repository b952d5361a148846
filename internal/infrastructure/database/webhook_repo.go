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

var _ output.WebhookRepository = (*WebhookRepository)(nil)

type WebhookRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) *WebhookRepository {
	return &WebhookRepository{pool: pool}
}

const webhookColumns = `id, organizer_id, url, secret, active, created_at`

func (r *WebhookRepository) Create(ctx context.Context, endpoint *entities.WebhookEndpoint) error {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO webhook_endpoints (organizer_id, url, secret, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		int64(endpoint.OrganizerID), endpoint.URL, endpoint.Secret, endpoint.Active,
	)
	var id int64
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&id, &createdAt); err != nil {
		return fmt.Errorf("create webhook endpoint: %w", err)
	}
	endpoint.ID = uint(id)
	endpoint.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return nil
}

func (r *WebhookRepository) FindByID(ctx context.Context, id uint) (*entities.WebhookEndpoint, error) {
	row := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+webhookColumns+` FROM webhook_endpoints WHERE id = $1`, int64(id))
	return scanWebhook(row)
}

func (r *WebhookRepository) FindActiveByOrganizerID(ctx context.Context, organizerID uint) ([]entities.WebhookEndpoint, error) {
	return r.findByOrganizerID(ctx, organizerID, true)
}

func (r *WebhookRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]entities.WebhookEndpoint, error) {
	return r.findByOrganizerID(ctx, organizerID, false)
}

func (r *WebhookRepository) findByOrganizerID(ctx context.Context, organizerID uint, activeOnly bool) ([]entities.WebhookEndpoint, error) {
	sql := `SELECT ` + webhookColumns + ` FROM webhook_endpoints WHERE organizer_id = $1`
	if activeOnly {
		sql += ` AND active`
	}
	sql += ` ORDER BY id`
	rows, err := querier(ctx, r.pool).Query(ctx, sql, int64(organizerID))
	if err != nil {
		return nil, fmt.Errorf("get webhook endpoints: %w", err)
	}
	defer rows.Close()

	var out []entities.WebhookEndpoint
	for rows.Next() {
		endpoint, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *endpoint)
	}
	return out, rows.Err()
}

func (r *WebhookRepository) Delete(ctx context.Context, id uint) error {
	if _, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM webhook_endpoints WHERE id = $1`, int64(id)); err != nil {
		return fmt.Errorf("delete webhook endpoint: %w", err)
	}
	return nil
}

func scanWebhook(row pgx.Row) (*entities.WebhookEndpoint, error) {
	var e entities.WebhookEndpoint
	var id, organizerID int64
	var createdAt pgtype.Timestamptz
	err := row.Scan(&id, &organizerID, &e.URL, &e.Secret, &e.Active, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWebhookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan webhook endpoint: %w", err)
	}
	e.ID = uint(id)
	e.OrganizerID = uint(organizerID)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return &e, nil
}
