package dto

type NewGymGroupRequest struct {
	GroupName string `json:"groupName" validate:"required,max=100"`
}
