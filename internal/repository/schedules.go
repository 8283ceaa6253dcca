package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

// flagsToColumn serializa as flags na coluna de texto (separadas por vírgula).
func flagsToColumn(flags []domain.ScheduleFlag) string {
	parts := make([]string, len(flags))
	for i, flag := range flags {
		parts[i] = string(flag)
	}
	return strings.Join(parts, ",")
}

func columnToFlags(column string) []domain.ScheduleFlag {
	if column == "" {
		return nil
	}
	parts := strings.Split(column, ",")
	flags := make([]domain.ScheduleFlag, len(parts))
	for i, part := range parts {
		flags[i] = domain.ScheduleFlag(part)
	}
	return flags
}

// UpsertSchedule grava uma escala pela chave composta (ministério, dia, turno):
// se já existe um registro, as atribuições e flags são substituídas e o status
// volta a rascunho; senão um novo rascunho é inserido. É assim que a regeneração
// evita registros duplicados.
func (r *Repository) UpsertSchedule(schedule *domain.Schedule) error {
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
		INSERT INTO schedules (ministry_id, service_day_id, service_date, service_label, status, flags)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ministry_id, service_day_id, service_label)
		DO UPDATE SET
			status = EXCLUDED.status,
			flags = EXCLUDED.flags,
			version = schedules.version + 1
		RETURNING id, created_at, version
	`

	params := []any{
		schedule.MinistryID,
		schedule.ServiceDayID,
		schedule.ServiceDate,
		schedule.ServiceLabel,
		schedule.Status,
		flagsToColumn(schedule.Flags),
	}
	dst := []any{&schedule.ID, &schedule.CreatedAt, &schedule.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	query = `DELETE FROM schedule_assignments WHERE schedule_id = $1`
	if _, err := tx.ExecContext(ctx, query, schedule.ID); err != nil {
		return err
	}

	for _, assignment := range schedule.Assignments {
		query := `
			INSERT INTO schedule_assignments (schedule_id, person_id, ministry_id, attendance)
			VALUES ($1, $2, $3, $4)
		`
		params := []any{schedule.ID, assignment.PersonID, assignment.MinistryID, assignment.Attendance}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// DeleteDraftSchedules remove os rascunhos do ministério nos dias informados.
// Escalas publicadas nunca são tocadas por aqui.
func (r *Repository) DeleteDraftSchedules(ministryID int64, serviceDayIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, serviceDayID := range serviceDayIDs {
		query := `
			DELETE FROM schedule_assignments
			WHERE schedule_id IN (
				SELECT id FROM schedules
				WHERE ministry_id = $1 AND service_day_id = $2 AND status = 'draft'
			)
		`
		if _, err := tx.ExecContext(ctx, query, ministryID, serviceDayID); err != nil {
			return err
		}

		query = `
			DELETE FROM schedules
			WHERE ministry_id = $1 AND service_day_id = $2 AND status = 'draft'
		`
		if _, err := tx.ExecContext(ctx, query, ministryID, serviceDayID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const scheduleColumns = `
	s.id,
	s.ministry_id,
	s.service_day_id,
	s.service_date,
	s.service_label,
	s.status,
	s.flags,
	s.created_at,
	s.version,
	sa.person_id,
	sa.ministry_id,
	sa.attendance
`

// querySchedules executa uma consulta com as colunas de scheduleColumns e remonta
// as escalas com suas atribuições.
func (r *Repository) querySchedules(query string, args ...any) ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.Schedule{}
	schedulesMap := make(map[int64]*domain.Schedule)

	for rows.Next() {
		var row struct {
			id                 int64
			ministryID         int64
			serviceDayID       int64
			serviceDate        string
			serviceLabel       string
			status             string
			flags              string
			createdAt          time.Time
			version            int32
			personID           sql.NullInt64
			assignedMinistryID sql.NullInt64
			attendance         sql.NullString
		}

		dst := []any{
			&row.id,
			&row.ministryID,
			&row.serviceDayID,
			&row.serviceDate,
			&row.serviceLabel,
			&row.status,
			&row.flags,
			&row.createdAt,
			&row.version,
			&row.personID,
			&row.assignedMinistryID,
			&row.attendance,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := schedulesMap[row.id]; !exists {
			schedule := &domain.Schedule{
				ID:           row.id,
				MinistryID:   row.ministryID,
				ServiceDayID: row.serviceDayID,
				ServiceDate:  row.serviceDate,
				ServiceLabel: row.serviceLabel,
				Status:       domain.ScheduleStatus(row.status),
				Flags:        columnToFlags(row.flags),
				Assignments:  []domain.ScheduleAssignment{},
				CreatedAt:    row.createdAt,
				Version:      row.version,
			}
			schedulesMap[row.id] = schedule
			schedules = append(schedules, schedule)
		}

		if !row.personID.Valid {
			// escala sem atribuições; possível após descartes, não pode quebrar a leitura
			continue
		}

		schedulesMap[row.id].Assignments = append(schedulesMap[row.id].Assignments, domain.ScheduleAssignment{
			PersonID:   row.personID.Int64,
			MinistryID: row.assignedMinistryID.Int64,
			Attendance: domain.AttendanceStatus(attendanceOrPending(row.attendance)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func attendanceOrPending(attendance sql.NullString) string {
	if attendance.Valid {
		return attendance.String
	}
	return string(domain.AttendancePending)
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		LEFT JOIN schedule_assignments sa ON sa.schedule_id = s.id
		WHERE s.id = $1
	`

	schedules, err := r.querySchedules(query, id)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, sql.ErrNoRows
	}

	return schedules[0], nil
}

// GetSchedulesByServiceDay devolve as escalas de todos os ministérios no dia.
func (r *Repository) GetSchedulesByServiceDay(serviceDayID int64) ([]*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		LEFT JOIN schedule_assignments sa ON sa.schedule_id = s.id
		WHERE s.service_day_id = $1
		ORDER BY s.id
	`

	return r.querySchedules(query, serviceDayID)
}

func (r *Repository) GetSchedulesByMinistryAndMonth(ministryID int64, month string) ([]*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		LEFT JOIN schedule_assignments sa ON sa.schedule_id = s.id
		WHERE s.ministry_id = $1 AND s.service_date LIKE $2 || '-%'
		ORDER BY s.service_date, s.id
	`

	return r.querySchedules(query, ministryID, month)
}

// ReplaceAssignment troca o ocupante de uma atribuição preservando os demais
// campos; a presença volta para "pending", já que o substituto ainda não confirmou.
func (r *Repository) ReplaceAssignment(scheduleID int64, oldPersonID int64, newPersonID int64) error {
	query := `
		UPDATE schedule_assignments
		SET person_id = $1, attendance = 'pending'
		WHERE schedule_id = $2 AND person_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, newPersonID, scheduleID, oldPersonID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) SetAssignmentAttendance(scheduleID int64, personID int64, attendance domain.AttendanceStatus) error {
	query := `
		UPDATE schedule_assignments
		SET attendance = $1
		WHERE schedule_id = $2 AND person_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, attendance, scheduleID, personID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdateScheduleStatusByMonth muda o status de todas as escalas do ministério no
// mês e devolve quantas foram afetadas.
func (r *Repository) UpdateScheduleStatusByMonth(ministryID int64, month string, from domain.ScheduleStatus, to domain.ScheduleStatus) (int64, error) {
	query := `
		UPDATE schedules
		SET status = $1, version = version + 1
		WHERE ministry_id = $2 AND service_date LIKE $3 || '-%' AND status = $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, to, ministryID, month, from)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
