package repository

import (
	"context"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

// InsertAvailability substitui a declaração de disponibilidade de uma pessoa para
// um dia de culto: as linhas antigas são removidas e as novas inseridas na mesma
// transação. Declarar com uma lista vazia de turnos equivale a retirar a declaração.
func (r *Repository) InsertAvailability(personID int64, serviceDayID int64, turns []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM availability_declarations WHERE person_id = $1 AND service_day_id = $2`
	if _, err := tx.ExecContext(ctx, query, personID, serviceDayID); err != nil {
		return err
	}

	for _, turn := range turns {
		query := `
			INSERT INTO availability_declarations (person_id, service_day_id, turn_label)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, personID, serviceDayID, turn); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAvailabilityEntriesByMonth devolve todas as declarações do mês, já com a
// data do dia de culto resolvida. A ausência de linhas para uma pessoa significa
// apenas que ela não declarou nada.
func (r *Repository) GetAvailabilityEntriesByMonth(month string) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT ad.person_id, sd.date_key, ad.turn_label
		FROM availability_declarations ad
		JOIN service_days sd ON sd.id = ad.service_day_id
		WHERE sd.date_key LIKE $1 || '-%'
		ORDER BY ad.person_id, sd.date_key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.AvailabilityEntry{}
	for rows.Next() {
		var entry domain.AvailabilityEntry
		if err := rows.Scan(&entry.PersonID, &entry.DateKey, &entry.TurnLabel); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) GetPersonAvailabilityByMonth(personID int64, month string) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT ad.person_id, sd.date_key, ad.turn_label
		FROM availability_declarations ad
		JOIN service_days sd ON sd.id = ad.service_day_id
		WHERE ad.person_id = $1 AND sd.date_key LIKE $2 || '-%'
		ORDER BY sd.date_key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, personID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.AvailabilityEntry{}
	for rows.Next() {
		var entry domain.AvailabilityEntry
		if err := rows.Scan(&entry.PersonID, &entry.DateKey, &entry.TurnLabel); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
