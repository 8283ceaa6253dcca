package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibvida-dev/escala-manager/backend/internal/config"
	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

func newRepositoryMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 10

	return NewRepository(cfg, db), mock, func() { db.Close() }
}

func expectUpsert(mock sqlmock.Sqlmock, schedule *domain.Schedule, returnedID int64, version int32) {
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO schedules").
		WithArgs(
			schedule.MinistryID,
			schedule.ServiceDayID,
			schedule.ServiceDate,
			schedule.ServiceLabel,
			string(schedule.Status),
			flagsToColumn(schedule.Flags),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(returnedID, time.Now(), version))
	mock.ExpectExec("DELETE FROM schedule_assignments").
		WithArgs(returnedID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, assignment := range schedule.Assignments {
		mock.ExpectExec("INSERT INTO schedule_assignments").
			WithArgs(returnedID, assignment.PersonID, assignment.MinistryID, string(assignment.Attendance)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
}

func TestUpsertScheduleKeepsSingleRecordPerKey(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	schedule := &domain.Schedule{
		MinistryID:   1,
		ServiceDayID: 10,
		ServiceDate:  "2025-12-21",
		ServiceLabel: "Noite",
		Status:       domain.ScheduleStatusDraft,
		Flags:        []domain.ScheduleFlag{domain.FlagDoubleShift},
		Assignments: []domain.ScheduleAssignment{
			{PersonID: 2, MinistryID: 1, Attendance: domain.AttendancePending},
		},
	}

	// a primeira gravação insere; a segunda cai no ON CONFLICT da chave composta
	// e atualiza o mesmo registro em vez de criar outro
	expectUpsert(mock, schedule, 7, 1)
	require.NoError(t, repo.UpsertSchedule(schedule))
	firstID := schedule.ID

	schedule.Assignments[0].PersonID = 3
	expectUpsert(mock, schedule, 7, 2)
	require.NoError(t, repo.UpsertSchedule(schedule))

	assert.Equal(t, firstID, schedule.ID)
	assert.Equal(t, int32(2), schedule.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDraftSchedules(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectBegin()
	for _, serviceDayID := range []int64{10, 11} {
		mock.ExpectExec("DELETE FROM schedule_assignments").
			WithArgs(int64(1), serviceDayID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM schedules").
			WithArgs(int64(1), serviceDayID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteDraftSchedules(1, []int64{10, 11}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSchedulesByServiceDayAssemblesAssignments(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "ministry_id", "service_day_id", "service_date", "service_label",
		"status", "flags", "created_at", "version", "person_id", "sa_ministry_id", "attendance",
	}).
		AddRow(7, 1, 10, "2025-12-21", "Noite", "published", "double_shift", now, 1, 2, 1, "confirmed").
		AddRow(8, 3, 10, "2025-12-21", "Noite", "published", "", now, 1, 5, 3, "pending").
		AddRow(9, 4, 10, "2025-12-21", "Noite", "draft", "", now, 1, nil, nil, nil)

	mock.ExpectQuery("SELECT(.|\n)+FROM schedules s").
		WithArgs(int64(10)).
		WillReturnRows(rows)

	schedules, err := repo.GetSchedulesByServiceDay(10)
	require.NoError(t, err)
	require.Len(t, schedules, 3)

	assert.Equal(t, []domain.ScheduleFlag{domain.FlagDoubleShift}, schedules[0].Flags)
	require.Len(t, schedules[0].Assignments, 1)
	assert.Equal(t, domain.AttendanceConfirmed, schedules[0].Assignments[0].Attendance)

	// escala sem atribuições não quebra a leitura
	assert.Empty(t, schedules[2].Assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssignment(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedule_assignments")).
		WithArgs(int64(3), int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ReplaceAssignment(7, 2, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssignmentNotFound(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedule_assignments")).
		WithArgs(int64(3), int64(7), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReplaceAssignment(7, 99, 3)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateScheduleStatusByMonth(t *testing.T) {
	repo, mock, cleanup := newRepositoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedules")).
		WithArgs(string(domain.ScheduleStatusPublished), int64(1), "2025-12", string(domain.ScheduleStatusDraft)).
		WillReturnResult(sqlmock.NewResult(0, 8))

	affected, err := repo.UpdateScheduleStatusByMonth(1, "2025-12", domain.ScheduleStatusDraft, domain.ScheduleStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, int64(8), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagsColumnRoundTrip(t *testing.T) {
	flags := []domain.ScheduleFlag{domain.FlagForcedAssignment, domain.FlagDoubleShift}

	assert.Equal(t, flags, columnToFlags(flagsToColumn(flags)))
	assert.Nil(t, columnToFlags(""))
}
