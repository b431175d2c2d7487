package dto

import "github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"

// AddWorkoutRequest carries only exercises; ids and dates are server side.
type AddWorkoutRequest struct {
	Exercises []ExerciseRequest `json:"exercises" validate:"required,min=1,dive"`
}

type ExerciseRequest struct {
	ExerciseName string `json:"exerciseName" validate:"required"`
	Sets         int    `json:"sets" validate:"gte=0"`
	Reps         int    `json:"reps" validate:"gte=0"`
	Weight       int    `json:"weight" validate:"gte=0"`
	Time         int    `json:"time" validate:"gte=0"`
}

func (r *AddWorkoutRequest) ToModel() *models.Workout {
	exercises := make([]models.Exercise, len(r.Exercises))
	for i, e := range r.Exercises {
		exercises[i] = models.Exercise{
			Name:   e.ExerciseName,
			Sets:   e.Sets,
			Reps:   e.Reps,
			Weight: e.Weight,
			Time:   e.Time,
		}
	}
	return &models.Workout{Exercises: exercises}
}
