package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/repository"
)

var _ repository.GifticonRepository = (*PostgresGifticonRepo)(nil)

type PostgresGifticonRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresGifticonRepo(pool *pgxpool.Pool) *PostgresGifticonRepo {
	return &PostgresGifticonRepo{pool: pool}
}

const gifticonColumns = `id, user_id, brand, name, category, expires_at, used, registered_at`

func (r *PostgresGifticonRepo) Save(ctx context.Context, g *model.Gifticon) error {
	const q = `
INSERT INTO gifticons (id, user_id, brand, name, category, expires_at, used, registered_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  brand=$3, name=$4, category=$5, expires_at=$6, used=$7;
`
	_, err := r.pool.Exec(ctx, q, g.ID, g.UserID, g.Brand, g.Name, string(g.Category), g.ExpiresAt, g.Used, g.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("save gifticon: %w", err)
	}
	return nil
}

func (r *PostgresGifticonRepo) FindByID(ctx context.Context, id string) (*model.Gifticon, error) {
	q := `SELECT ` + gifticonColumns + ` FROM gifticons WHERE id=$1;`
	return scanGifticon(r.pool.QueryRow(ctx, q, id))
}

func (r *PostgresGifticonRepo) ListByUser(ctx context.Context, userID string) ([]*model.Gifticon, error) {
	q := `SELECT ` + gifticonColumns + ` FROM gifticons WHERE user_id=$1 ORDER BY registered_at, id;`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list gifticons: %w", err)
	}
	defer rows.Close()
	return scanGifticons(rows)
}

func (r *PostgresGifticonRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM gifticons WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete gifticon: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresGifticonRepo) FindExpiring(ctx context.Context, now time.Time, withinDays int) ([]*model.Gifticon, error) {
	// Compare on dates, not instants: a voucher expiring later today still
	// counts as zero days remaining.
	const q = `
SELECT ` + gifticonColumns + `
  FROM gifticons
 WHERE used = FALSE
   AND expires_at IS NOT NULL
   AND expires_at::date >= $1::date
   AND expires_at::date <= $1::date + $2 * INTERVAL '1 day'
 ORDER BY expires_at, id;
`
	rows, err := r.pool.Query(ctx, q, now.UTC(), withinDays)
	if err != nil {
		return nil, fmt.Errorf("find expiring: %w", err)
	}
	defer rows.Close()
	return scanGifticons(rows)
}

func (r *PostgresGifticonRepo) CountByStatus(ctx context.Context) (int, int, error) {
	const q = `
SELECT COUNT(*) FILTER (WHERE used), COUNT(*) FILTER (WHERE NOT used)
  FROM gifticons;
`
	var used, unused int
	if err := r.pool.QueryRow(ctx, q).Scan(&used, &unused); err != nil {
		return 0, 0, fmt.Errorf("count gifticons: %w", err)
	}
	return used, unused, nil
}

func scanGifticon(row pgx.Row) (*model.Gifticon, error) {
	var (
		g        model.Gifticon
		category string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Brand, &g.Name, &category, &g.ExpiresAt, &g.Used, &g.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan gifticon: %w", err)
	}
	g.Category = model.ParseCategory(category)
	return &g, nil
}

func scanGifticons(rows pgx.Rows) ([]*model.Gifticon, error) {
	var out []*model.Gifticon
	for rows.Next() {
		g, err := scanGifticon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gifticons: %w", err)
	}
	return out, nil
}
