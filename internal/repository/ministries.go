package repository

import (
	"context"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

func (r *Repository) CreateMinistry(ministry *domain.Ministry) error {
	query := `
		INSERT INTO ministries (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&ministry.ID, &ministry.CreatedAt, &ministry.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, ministry.Name).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllMinistries() ([]*domain.Ministry, error) {
	query := `
		SELECT id, name, created_at, version
		FROM ministries
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ministries := []*domain.Ministry{}
	for rows.Next() {
		var ministry domain.Ministry
		if err := rows.Scan(&ministry.ID, &ministry.Name, &ministry.CreatedAt, &ministry.Version); err != nil {
			return nil, err
		}
		ministries = append(ministries, &ministry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ministries, nil
}

func (r *Repository) GetMinistryByID(id int64) (*domain.Ministry, error) {
	query := `
		SELECT name, created_at, version
		FROM ministries
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ministry := &domain.Ministry{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&ministry.Name, &ministry.CreatedAt, &ministry.Version); err != nil {
		return nil, err
	}

	return ministry, nil
}
