package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"gorm.io/gorm"
)

const MaxSystemLogs = 200

type GormSystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) *GormSystemLogRepository {
	return &GormSystemLogRepository{db: db}
}

func (r *GormSystemLogRepository) Insert(ctx context.Context, logs []models.SystemLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 50).Error
}

func (r *GormSystemLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

func (r *GormSystemLogRepository) Recent(ctx context.Context, filter SystemLogFilter) ([]models.SystemLog, error) {
	q := r.db.WithContext(ctx).Model(&models.SystemLog{})
	if filter.Level != "" {
		q = q.Where("level = ?", filter.Level)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}

	logs := []models.SystemLog{}
	if err := q.Order("timestamp DESC").Limit(clampLimit(filter.Limit)).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to query system logs: %w", err)
	}
	return logs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxSystemLogs {
		return MaxSystemLogs
	}
	return limit
}
