package domain

import "time"

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
)

type AttendanceStatus string

const (
	AttendancePending   AttendanceStatus = "pending"
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceDeclined  AttendanceStatus = "declined"
)

// ScheduleFlag é uma anotação consultiva sobre um compromisso de justiça ou
// disponibilidade assumido durante a geração. Nunca bloqueia a geração.
type ScheduleFlag string

const (
	FlagForcedAssignment ScheduleFlag = "forced_assignment" // ninguém declarou disponibilidade
	FlagDoubleShift      ScheduleFlag = "double_shift"      // mesma pessoa usada duas vezes no dia
	FlagOverload         ScheduleFlag = "overload"          // reservado
)

type ScheduleAssignment struct {
	PersonID   int64            `json:"personID"`
	MinistryID int64            `json:"ministryID"`
	Attendance AttendanceStatus `json:"attendance"`
}

// GeneratedSchedule é o resultado do gerador mensal para um (ministério, dia, turno),
// ainda não persistido. Assignments hoje carrega exatamente uma entrada.
type GeneratedSchedule struct {
	MinistryID   int64                `json:"ministryID"`
	ServiceDayID int64                `json:"serviceDayID"`
	ServiceDate  string               `json:"serviceDate"`
	ServiceLabel string               `json:"serviceLabel"`
	Assignments  []ScheduleAssignment `json:"assignments"`
	Status       ScheduleStatus       `json:"status"`
	Flags        []ScheduleFlag       `json:"flags,omitempty"`
}

// Schedule é a escala persistida, com ciclo de vida rascunho/publicada.
type Schedule struct {
	ID           int64                `json:"id"`
	MinistryID   int64                `json:"ministryID"`
	ServiceDayID int64                `json:"serviceDayID"`
	ServiceDate  string               `json:"serviceDate"`
	ServiceLabel string               `json:"serviceLabel"`
	Assignments  []ScheduleAssignment `json:"assignments"`
	Status       ScheduleStatus       `json:"status"`
	Flags        []ScheduleFlag       `json:"flags,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	Version      int32                `json:"-"`
}

// RoleAssignment é a atribuição de baixo nível produzida pelo motor por ministério
// e pelo agregador entre ministérios.
type RoleAssignment struct {
	Date         string `json:"date"`
	MinistryID   int64  `json:"ministryID"`
	MinistryName string `json:"ministryName"`
	Role         string `json:"role"`
	PersonID     int64  `json:"personID"`
	PersonName   string `json:"personName"`
}
