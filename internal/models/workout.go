package models

import "time"

type Workout struct {
	ID          string     `json:"_id"`
	Exercises   []Exercise `json:"exercises"`
	DateCreated time.Time  `json:"dateCreated"`
}

// Exercise is weight based when Time is 0 and duration based otherwise.
type Exercise struct {
	Name   string `json:"exerciseName"`
	Sets   int    `json:"sets"`
	Reps   int    `json:"reps"`
	Weight int    `json:"weight"`
	Time   int    `json:"time"`
}

func (w Workout) Clone() Workout {
	w.Exercises = append([]Exercise(nil), w.Exercises...)
	return w
}
