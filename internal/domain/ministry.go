package domain

import "time"

type Ministry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"` // derivado do catálogo de funções pelo nome, não persistido
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type MinistryMember struct {
	Person
	IsLeader bool `json:"isLeader"` // liderança dentro deste ministério
}
