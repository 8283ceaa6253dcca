package domain

import (
	"slices"
	"time"
)

type Person struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	IsActive            bool      `json:"isActive"`
	LeaderOfMinistryIDs []int64   `json:"leaderOfMinistryIDs"`
	CreatedAt           time.Time `json:"createdAt"`
	Version             int32     `json:"-"`
}

// IsLeader indica se a pessoa lidera pelo menos um ministério.
func (p *Person) IsLeader() bool {
	return len(p.LeaderOfMinistryIDs) > 0
}

func (p *Person) Leads(ministryID int64) bool {
	return slices.Contains(p.LeaderOfMinistryIDs, ministryID)
}
