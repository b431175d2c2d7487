package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/google/uuid"
)

const weeklyWindow = 7 * 24 * time.Hour

// bcrypt rejects longer inputs; the limit is bytes, not characters.
const maxPasswordBytes = 72

type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	now    func() time.Time
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher, now: time.Now}
}

// WithClock replaces the service clock; used by tests.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

func (s *UserService) Register(ctx context.Context, username, email, rawPassword string, roles []string) (*models.User, error) {
	if isBlank(username) || isBlank(email) {
		return nil, ErrBlankUserDetails
	}
	if len(rawPassword) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
		Roles:    models.ParseRoles(roles),
		Workouts: []models.Workout{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	metrics.Registrations.Inc()
	slog.Info("user registered", "username", user.Username, "roles", []string(user.Roles))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.Logins.WithLabelValues("unknown_user").Inc()
		return nil, ErrIncorrectUsername
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.Password, rawPassword) {
		metrics.Logins.WithLabelValues("bad_password").Inc()
		return nil, ErrIncorrectPassword
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return user, nil
}

func (s *UserService) GetWorkouts(ctx context.Context, username string) ([]models.Workout, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Workouts, nil
}

// AddWorkout assigns the workout id and creation time; client values for
// both are discarded.
func (s *UserService) AddWorkout(ctx context.Context, username string, workout *models.Workout) (*models.User, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}
	if workout == nil {
		return nil, ErrNilWorkout
	}
	if err := validateExercises(workout.Exercises); err != nil {
		return nil, err
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	added := workout.Clone()
	added.ID = uuid.NewString()
	added.DateCreated = s.now().UTC()
	user.Workouts = append(user.Workouts, added)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	metrics.WorkoutsLogged.Inc()
	return user, nil
}

// DeleteWorkout returns (nil, nil) when the user does not exist. Callers
// rely on this; a missing workout is still ErrWorkoutNotFound.
func (s *UserService) DeleteWorkout(ctx context.Context, username, workoutID string) (*models.User, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for i, w := range user.Workouts {
		if w.ID != workoutID {
			continue
		}
		user.Workouts = append(user.Workouts[:i], user.Workouts[i+1:]...)
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, ErrWorkoutNotFound
}

// WeeklyTotal sums the weight lifted in workouts created strictly after
// now minus seven days.
func (s *UserService) WeeklyTotal(ctx context.Context, username string) (int, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-weeklyWindow)
	recent := make([]models.Workout, 0, len(user.Workouts))
	for _, w := range user.Workouts {
		if w.DateCreated.After(cutoff) {
			recent = append(recent, w)
		}
	}
	return CalculateTotalWeight(recent), nil
}

// CalculateTotalWeight adds sets*reps*weight for every exercise with no
// duration. Timed exercises contribute nothing.
func CalculateTotalWeight(workouts []models.Workout) int {
	total := 0
	for _, w := range workouts {
		for _, e := range w.Exercises {
			if e.Time > 0 {
				continue
			}
			total += e.Sets * e.Reps * e.Weight
		}
	}
	return total
}

func (s *UserService) requireUser(ctx context.Context, username string) (*models.User, error) {
	if isBlank(username) {
		return nil, ErrBlankDetails
	}
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return user, nil
}

func validateExercises(exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return ErrNoExercises
	}
	for _, e := range exercises {
		if isBlank(e.Name) {
			return ErrBlankExercise
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
