package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository is the credential store. Lookups return ErrNotFound when
// nothing matches; Create returns ErrDuplicate on a unique-key collision.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type GymGroupRepository interface {
	FindByName(ctx context.Context, groupName string) (*models.GymGroup, error)
	FindByMember(ctx context.Context, username string) ([]models.GymGroup, error)
	Create(ctx context.Context, group *models.GymGroup) error
	Save(ctx context.Context, group *models.GymGroup) error
}

type SystemLogFilter struct {
	Level string
	Since time.Time
	Limit int
}

// SystemLogRepository backs the persisted ERROR log sink.
type SystemLogRepository interface {
	Insert(ctx context.Context, logs []models.SystemLog) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Recent(ctx context.Context, filter SystemLogFilter) ([]models.SystemLog, error)
}
