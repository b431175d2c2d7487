package handlers

import (
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type GymGroupHandler struct {
	groupService *services.GymGroupService
}

func NewGymGroupHandler(groupService *services.GymGroupService) *GymGroupHandler {
	return &GymGroupHandler{groupService: groupService}
}

func (h *GymGroupHandler) Create(c *fiber.Ctx) error {
	var req dto.NewGymGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		if isRequiredFailure(err) {
			return badRequest(c, services.ErrBlankGroupName.Error())
		}
		return badRequest(c, validationMessage(err))
	}

	group, err := h.groupService.Create(c.UserContext(), c.Params("username"), req.GroupName)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GymGroupHandler) Join(c *fiber.Ctx) error {
	group, err := h.groupService.Join(c.UserContext(), c.Params("username"), c.Params("groupName"))
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(group)
}

func (h *GymGroupHandler) List(c *fiber.Ctx) error {
	groups, err := h.groupService.ListForMember(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err, nil)
	}
	if len(groups) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No GymGroups found",
		})
	}
	return c.JSON(groups)
}
