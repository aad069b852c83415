package dto

import "team-attendance/backend/app/models"

type ColorRequest struct {
	Color string `json:"color"`
}

type RoleRequest struct {
	Role models.Role `json:"role"`
}
