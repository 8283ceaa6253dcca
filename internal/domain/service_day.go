package domain

import "time"

// ServiceDay representa um dia de culto com seus turnos ordenados (ex.: "Manhã", "Noite").
type ServiceDay struct {
	ID        int64     `json:"id"`
	DateKey   string    `json:"dateKey"` // formato YYYY-MM-DD
	Label     string    `json:"label"`
	Turns     []string  `json:"turns"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
