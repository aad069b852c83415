package controllers

import (
	"encoding/json"
	"net/http"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/dto"
	jwtutil "team-attendance/backend/app/jwt"
	"team-attendance/backend/app/services"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.Signup(req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	token, err := c.Signer.Sign(u)
	if err != nil {
		apperr.Write(w, r, apperr.ServerError(err))
		return
	}
	writeJSON(w, dto.AuthResponse{User: u, Token: token})
}

// Login issues a fresh token reflecting the stored role and color, so a role
// change by staff takes effect on the next login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.Login(req.IDNumber)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	token, err := c.Signer.Sign(u)
	if err != nil {
		apperr.Write(w, r, apperr.ServerError(err))
		return
	}
	writeJSON(w, dto.AuthResponse{User: u, Token: token})
}
