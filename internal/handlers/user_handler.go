package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetWorkouts(c *fiber.Ctx) error {
	workouts, err := h.userService.GetWorkouts(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err, map[error]int{
			services.ErrValidation: fiber.StatusBadRequest,
			services.ErrNotFound:   fiber.StatusNotFound,
		})
	}
	return c.JSON(workouts)
}

func (h *UserHandler) AddWorkout(c *fiber.Ctx) error {
	var req dto.AddWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, services.ErrNilWorkout.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, workoutValidationMessage(err))
	}

	user, err := h.userService.AddWorkout(c.UserContext(), c.Params("username"), req.ToModel())
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(user)
}

func (h *UserHandler) DeleteWorkout(c *fiber.Ctx) error {
	user, err := h.userService.DeleteWorkout(c.UserContext(), c.Params("username"), c.Params("id"))
	if err != nil {
		return respondError(c, err, nil)
	}
	if user == nil {
		return badRequest(c, "Error: User not found")
	}
	return c.JSON(user)
}

func (h *UserHandler) WeeklyTotal(c *fiber.Ctx) error {
	total, err := h.userService.WeeklyTotal(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(total)
}

// workoutValidationMessage reports DTO failures with the same wording the
// service uses for the equivalent domain check.
func workoutValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "exercises":
			return services.ErrNoExercises.Error()
		case "exerciseName":
			return services.ErrBlankExercise.Error()
		}
	}
	return validationMessage(err)
}
