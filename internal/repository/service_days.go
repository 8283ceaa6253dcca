package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

func (r *Repository) CreateServiceDay(day *domain.ServiceDay) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO service_days (date_key, label)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, day.DateKey, day.Label).Scan(&day.ID, &day.CreatedAt, &day.Version); err != nil {
		return err
	}

	for position, turn := range day.Turns {
		query := `
			INSERT INTO service_day_turns (service_day_id, position, label)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, day.ID, position, turn); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetServiceDaysByMonth devolve os dias de culto do mês (formato YYYY-MM), com os
// turnos na ordem declarada.
func (r *Repository) GetServiceDaysByMonth(month string) ([]*domain.ServiceDay, error) {
	query := `
		SELECT sd.id, sd.date_key, sd.label, sdt.label, sd.created_at, sd.version
		FROM service_days sd
		LEFT JOIN service_day_turns sdt ON sdt.service_day_id = sd.id
		WHERE sd.date_key LIKE $1 || '-%'
		ORDER BY sd.date_key, sdt.position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []*domain.ServiceDay{}
	daysMap := make(map[int64]*domain.ServiceDay)

	for rows.Next() {
		var row struct {
			id        int64
			dateKey   string
			label     string
			turnLabel sql.NullString
			createdAt time.Time
			version   int32
		}

		dst := []any{&row.id, &row.dateKey, &row.label, &row.turnLabel, &row.createdAt, &row.version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := daysMap[row.id]; !exists {
			day := &domain.ServiceDay{
				ID:        row.id,
				DateKey:   row.dateKey,
				Label:     row.label,
				Turns:     []string{},
				CreatedAt: row.createdAt,
				Version:   row.version,
			}
			daysMap[row.id] = day
			days = append(days, day)
		}

		if !row.turnLabel.Valid {
			// dia sem turnos cadastrados; não deveria acontecer, mas não pode derrubar a listagem
			continue
		}

		daysMap[row.id].Turns = append(daysMap[row.id].Turns, row.turnLabel.String)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

func (r *Repository) GetServiceDayByID(id int64) (*domain.ServiceDay, error) {
	query := `
		SELECT sd.date_key, sd.label, sdt.label, sd.created_at, sd.version
		FROM service_days sd
		LEFT JOIN service_day_turns sdt ON sdt.service_day_id = sd.id
		WHERE sd.id = $1
		ORDER BY sdt.position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	day := &domain.ServiceDay{
		ID:    id,
		Turns: []string{},
	}
	found := false

	for rows.Next() {
		var turnLabel sql.NullString
		dst := []any{&day.DateKey, &day.Label, &turnLabel, &day.CreatedAt, &day.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		found = true
		if turnLabel.Valid {
			day.Turns = append(day.Turns, turnLabel.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return day, nil
}

func (r *Repository) DeleteServiceDay(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM service_day_turns WHERE service_day_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM service_days WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
