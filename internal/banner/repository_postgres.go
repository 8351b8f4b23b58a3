package banner

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const listBannersQuery = `
	SELECT banner_id, banner_img, COALESCE(banner_alt, ''), kind, COALESCE(ord, 0)
	FROM banner
	WHERE ($1 = '' OR kind = $1)
	ORDER BY COALESCE(ord, 0), banner_id
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, kind string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, listBannersQuery, kind)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Image, &it.Alt, &it.Kind, &it.Ord); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return out, nil
}
