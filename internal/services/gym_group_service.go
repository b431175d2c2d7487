package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/google/uuid"
)

type GymGroupService struct {
	groups repository.GymGroupRepository
	users  repository.UserRepository
}

func NewGymGroupService(groups repository.GymGroupRepository, users repository.UserRepository) *GymGroupService {
	return &GymGroupService{groups: groups, users: users}
}

// Create makes a new group with the creator as its only admin and member.
// Group names are matched exactly, case included.
func (s *GymGroupService) Create(ctx context.Context, username, groupName string) (*models.GymGroup, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}
	if isBlank(groupName) {
		return nil, ErrBlankGroupName
	}

	creator, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if _, err := s.groups.FindByName(ctx, groupName); err == nil {
		return nil, ErrGymGroupExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	group := &models.GymGroup{
		ID:        uuid.New(),
		GroupName: groupName,
		Admins:    []string{creator.Username},
		Members:   []string{creator.Username},
	}
	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrGymGroupExists
		}
		return nil, err
	}

	metrics.GymGroupsCreated.Inc()
	slog.Info("gym group created", "group", group.GroupName, "username", creator.Username)
	return group, nil
}

// Join adds the user to the group. Joining twice is a no-op.
func (s *GymGroupService) Join(ctx context.Context, username, groupName string) (*models.GymGroup, error) {
	if isBlank(username) || isBlank(groupName) {
		return nil, ErrBlankDetails
	}

	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, err
	}

	group, err := s.groups.FindByName(ctx, groupName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGymGroupNotFound
	}
	if err != nil {
		return nil, err
	}

	if !group.AddMember(user.Username) {
		return group, nil
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListForMember returns every group the user belongs to. An empty slice is
// a valid result.
func (s *GymGroupService) ListForMember(ctx context.Context, username string) ([]models.GymGroup, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}
	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.groups.FindByMember(ctx, user.Username)
}

func (s *GymGroupService) lookupUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
