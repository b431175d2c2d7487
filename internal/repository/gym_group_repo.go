package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"gorm.io/gorm"
)

type GormGymGroupRepository struct {
	db *gorm.DB
}

func NewGymGroupRepository(db *gorm.DB) *GormGymGroupRepository {
	return &GormGymGroupRepository{db: db}
}

func (r *GormGymGroupRepository) FindByName(ctx context.Context, groupName string) (*models.GymGroup, error) {
	var group models.GymGroup
	if err := r.db.WithContext(ctx).Where("group_name = ?", groupName).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gym group: %w", err)
	}
	return &group, nil
}

// FindByMember uses JSONB containment on the members array.
func (r *GormGymGroupRepository) FindByMember(ctx context.Context, username string) ([]models.GymGroup, error) {
	needle, err := json.Marshal([]string{username})
	if err != nil {
		return nil, err
	}

	groups := []models.GymGroup{}
	if err := r.db.WithContext(ctx).
		Where("members @> ?::jsonb", string(needle)).
		Order("created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list gym groups: %w", err)
	}
	return groups, nil
}

func (r *GormGymGroupRepository) Create(ctx context.Context, group *models.GymGroup) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create gym group: %w", err)
	}
	return nil
}

func (r *GormGymGroupRepository) Save(ctx context.Context, group *models.GymGroup) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to save gym group: %w", err)
	}
	return nil
}
