package controllers

import (
	"encoding/json"
	"net/http"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/dto"
	jwtutil "team-attendance/backend/app/jwt"
	"team-attendance/backend/app/middleware"
	"team-attendance/backend/app/services"
)

type UserController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewUserController(users *services.UserService, signer *jwtutil.Signer) *UserController {
	return &UserController{Users: users, Signer: signer}
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.List()
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, users)
}

// UpdateOwnColor persists the caller's new color and reissues the token,
// since the color rides inside the claims.
func (c *UserController) UpdateOwnColor(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	var req dto.ColorRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.UpdateOwnColor(claims.IDNumber, req.Color)
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

func (c *UserController) UpdateColor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid user id")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	var req dto.ColorRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.UpdateColor(id, req.Color)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, u)
}

func (c *UserController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid user id")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	var req dto.RoleRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.UpdateRole(id, req.Role)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, u)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, err := pathID(r, "Invalid user id")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	if err := c.Users.Delete(claims.UserID, id); err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, dto.DeleteResponse{Success: true})
}
