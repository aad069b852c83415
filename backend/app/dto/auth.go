package dto

import "team-attendance/backend/app/models"

type SignupRequest struct {
	IDNumber string  `json:"id_number"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	IDNumber string `json:"id_number"`
}

// AuthResponse carries the user row alongside a freshly issued token; it is
// returned by signup, login and own-color updates.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
