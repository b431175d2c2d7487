package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GymGroup references users by username only.
type GymGroup struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	GroupName string                      `gorm:"size:100;not null;uniqueIndex" json:"groupName"`
	Admins    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"admins"`
	Members   datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"members"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

func (g *GymGroup) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}

// AddMember reports whether the member set changed.
func (g *GymGroup) AddMember(username string) bool {
	if g.HasMember(username) {
		return false
	}
	g.Members = append(g.Members, username)
	return true
}

func (g *GymGroup) Clone() *GymGroup {
	c := *g
	c.Admins = append(datatypes.JSONSlice[string]{}, g.Admins...)
	c.Members = append(datatypes.JSONSlice[string]{}, g.Members...)
	return &c
}
