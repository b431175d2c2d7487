package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User owns its workouts; they live embedded in the user row as JSONB.
type User struct {
	ID        uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Username  string                       `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email     string                       `gorm:"size:255;not null;uniqueIndex" json:"emailAddress"`
	Password  string                       `gorm:"not null" json:"-"`
	Roles     datatypes.JSONSlice[string]  `gorm:"type:jsonb;not null" json:"roles"`
	Workouts  datatypes.JSONSlice[Workout] `gorm:"column:workouts;type:jsonb;not null" json:"workoutsList"`
	CreatedAt time.Time                    `json:"-"`
	UpdatedAt time.Time                    `json:"-"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with u.
func (u *User) Clone() *User {
	c := *u
	c.Roles = append(datatypes.JSONSlice[string]{}, u.Roles...)
	c.Workouts = make(datatypes.JSONSlice[Workout], len(u.Workouts))
	for i, w := range u.Workouts {
		c.Workouts[i] = w.Clone()
	}
	return &c
}
