package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process. Documents are copied on the
// way in and out so callers never share state with the store.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*models.User)}
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return u.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = user.Clone()
	return nil
}

func (r *MemoryUserRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = user.Clone()
	return nil
}

type MemoryGymGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*models.GymGroup
}

func NewMemoryGymGroupRepository() *MemoryGymGroupRepository {
	return &MemoryGymGroupRepository{groups: make(map[string]*models.GymGroup)}
}

func (r *MemoryGymGroupRepository) FindByName(_ context.Context, groupName string) (*models.GymGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[groupName]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

func (r *MemoryGymGroupRepository) FindByMember(_ context.Context, username string) ([]models.GymGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	groups := []models.GymGroup{}
	for _, g := range r.groups {
		if g.HasMember(username) {
			groups = append(groups, *g.Clone())
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *MemoryGymGroupRepository) Create(_ context.Context, group *models.GymGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.GroupName]; ok {
		return ErrDuplicate
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	now := time.Now().UTC()
	group.CreatedAt, group.UpdatedAt = now, now
	r.groups[group.GroupName] = group.Clone()
	return nil
}

func (r *MemoryGymGroupRepository) Save(_ context.Context, group *models.GymGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.GroupName]; !ok {
		return ErrNotFound
	}
	group.UpdatedAt = time.Now().UTC()
	r.groups[group.GroupName] = group.Clone()
	return nil
}

type MemorySystemLogRepository struct {
	mu   sync.RWMutex
	logs []models.SystemLog
}

func NewMemorySystemLogRepository() *MemorySystemLogRepository {
	return &MemorySystemLogRepository{}
}

func (r *MemorySystemLogRepository) Insert(_ context.Context, logs []models.SystemLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, logs...)
	return nil
}

func (r *MemorySystemLogRepository) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.logs[:0]
	for _, l := range r.logs {
		if !l.Timestamp.Before(cutoff) {
			kept = append(kept, l)
		}
	}
	deleted := int64(len(r.logs) - len(kept))
	r.logs = kept
	return deleted, nil
}

func (r *MemorySystemLogRepository) Recent(_ context.Context, filter SystemLogFilter) ([]models.SystemLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := []models.SystemLog{}
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if filter.Level != "" && l.Level != filter.Level {
			continue
		}
		if !filter.Since.IsZero() && l.Timestamp.Before(filter.Since) {
			continue
		}
		logs = append(logs, l)
		if len(logs) == clampLimit(filter.Limit) {
			break
		}
	}
	return logs, nil
}
