package domain

import "time"

// AvailabilityEntry é uma declaração pontual de disponibilidade: a presença da linha
// significa "disponível"; a ausência significa apenas "não declarado".
type AvailabilityEntry struct {
	PersonID  int64  `json:"personID"`
	DateKey   string `json:"dateKey"`
	TurnLabel string `json:"turnLabel"`
}

// AvailabilityMap indexa, por pessoa, as chaves "dataKey|turnoNormalizado" declaradas.
type AvailabilityMap map[int64]map[string]bool

type AvailabilityDeclaration struct {
	ID           int64     `json:"id"`
	PersonID     int64     `json:"personID"`
	ServiceDayID int64     `json:"serviceDayID"`
	Turns        []string  `json:"turns"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
