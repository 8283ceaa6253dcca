package repository

import (
	"context"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

func (r *Repository) CreatePerson(person *domain.Person) error {
	query := `
		INSERT INTO people (name, email, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{person.Name, person.Email, person.IsActive}
	dst := []any{&person.ID, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPersonByID(id int64) (*domain.Person, error) {
	query := `
		SELECT name, email, is_active, created_at, version
		FROM people
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	person := &domain.Person{
		ID: id,
	}

	dst := []any{&person.Name, &person.Email, &person.IsActive, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	leaderships, err := r.getLeaderships(ctx)
	if err != nil {
		return nil, err
	}
	person.LeaderOfMinistryIDs = leaderships[person.ID]

	return person, nil
}

func (r *Repository) GetAllPeople() ([]*domain.Person, error) {
	query := `
		SELECT id, name, email, is_active, created_at, version
		FROM people
		WHERE is_active = TRUE
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := []*domain.Person{}
	for rows.Next() {
		var person domain.Person
		dst := []any{&person.ID, &person.Name, &person.Email, &person.IsActive, &person.CreatedAt, &person.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		people = append(people, &person)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	leaderships, err := r.getLeaderships(ctx)
	if err != nil {
		return nil, err
	}
	for _, person := range people {
		person.LeaderOfMinistryIDs = leaderships[person.ID]
	}

	return people, nil
}

// GetMinistryMembers devolve os membros ativos do ministério, cada um já com os
// vínculos de liderança (de qualquer ministério) resolvidos.
func (r *Repository) GetMinistryMembers(ministryID int64) ([]*domain.MinistryMember, error) {
	query := `
		SELECT p.id, p.name, p.email, p.is_active, mm.is_leader, p.created_at, p.version
		FROM people p
		JOIN ministry_members mm ON mm.person_id = p.id
		WHERE mm.ministry_id = $1 AND p.is_active = TRUE
		ORDER BY p.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ministryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*domain.MinistryMember{}
	for rows.Next() {
		var member domain.MinistryMember
		dst := []any{
			&member.ID,
			&member.Name,
			&member.Email,
			&member.IsActive,
			&member.IsLeader,
			&member.CreatedAt,
			&member.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	leaderships, err := r.getLeaderships(ctx)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		member.LeaderOfMinistryIDs = leaderships[member.ID]
	}

	return members, nil
}

func (r *Repository) AddMinistryMember(ministryID int64, personID int64, isLeader bool) error {
	query := `
		INSERT INTO ministry_members (ministry_id, person_id, is_leader)
		VALUES ($1, $2, $3)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, ministryID, personID, isLeader); err != nil {
		return err
	}

	return nil
}

// getLeaderships monta o mapa pessoa -> ministérios liderados.
func (r *Repository) getLeaderships(ctx context.Context) (map[int64][]int64, error) {
	query := `
		SELECT person_id, ministry_id
		FROM ministry_members
		WHERE is_leader = TRUE
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaderships := make(map[int64][]int64)
	for rows.Next() {
		var personID, ministryID int64
		if err := rows.Scan(&personID, &ministryID); err != nil {
			return nil, err
		}
		leaderships[personID] = append(leaderships[personID], ministryID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaderships, nil
}
