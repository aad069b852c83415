package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/dto"
	"team-attendance/backend/app/middleware"
	"team-attendance/backend/app/services"
)

type EventController struct{ Events *services.EventService }

func NewEventController(events *services.EventService) *EventController {
	return &EventController{Events: events}
}

func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.Events.Team()
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, rows)
}

func (c *EventController) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	rows, err := c.Events.Mine(claims.IDNumber)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, rows)
}

func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	var req dto.EventRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	row, err := c.Events.Create(claims.IDNumber, claims.Role, req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, row)
}

func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, err := pathID(r, "Invalid event id")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	var req dto.EventRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	updated, err := c.Events.Update(claims.IDNumber, claims.Role, id, req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, updated)
}

func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, err := pathID(r, "Invalid event id")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	if err := c.Events.Delete(claims.IDNumber, claims.Role, id); err != nil {
		apperr.Write(w, r, err)
		return
	}
	writeJSON(w, dto.DeleteResponse{Success: true})
}

func pathID(r *http.Request, msg string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest(msg)
	}
	return uint(id), nil
}
