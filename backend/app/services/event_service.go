package services

import (
	"errors"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/dto"
	"team-attendance/backend/app/models"
	"team-attendance/backend/app/repo"

	"gorm.io/gorm"
)

type EventService struct {
	events *repo.EventRepository
	users  *repo.UserRepository
}

func NewEventService(events *repo.EventRepository, users *repo.UserRepository) *EventService {
	return &EventService{events: events, users: users}
}

func (s *EventService) Team() ([]dto.TeamEvent, error) {
	rows, err := s.events.ListTeam()
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return rows, nil
}

func (s *EventService) Mine(idNumber string) ([]dto.TeamEvent, error) {
	u, err := s.users.FindByIDNumber(idNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err)
	}
	rows, err := s.events.ListByUser(u.ID)
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return rows, nil
}

// Create records an event for the target user. The target defaults to the
// caller; only staff may record on behalf of someone else. The role gate runs
// before the target lookup so a non-staff probe cannot learn whether an
// identification number is registered.
func (s *EventService) Create(actorIDNumber string, actorRole models.Role, req dto.EventRequest) (*dto.TeamEvent, error) {
	if req.EventDate == "" || req.Type == "" {
		return nil, apperr.BadRequest("Missing fields")
	}
	targetIDNumber := req.IDNumberTarget
	if targetIDNumber == "" {
		targetIDNumber = actorIDNumber
	}
	if actorRole != models.RoleStaff && targetIDNumber != actorIDNumber {
		return nil, apperr.Forbidden()
	}
	target, err := s.users.FindByIDNumber(targetIDNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Target user not found")
		}
		return nil, apperr.ServerError(err)
	}
	e := &models.Event{
		UserID:    target.ID,
		EventDate: req.EventDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Notes:     req.Notes,
	}
	if err := s.events.Create(e); err != nil {
		return nil, apperr.ServerError(err)
	}
	row, err := s.events.FindJoined(e.ID)
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return row, nil
}

// authorize checks the ownership rule shared by update and delete: staff may
// touch any event, everyone else only their own.
func (s *EventService) authorize(actorIDNumber string, actorRole models.Role, eventID uint) error {
	owner, err := s.events.OwnerIDNumber(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Event not found")
		}
		return apperr.ServerError(err)
	}
	if actorRole != models.RoleStaff && actorIDNumber != owner {
		return apperr.Forbidden()
	}
	return nil
}

func (s *EventService) Update(actorIDNumber string, actorRole models.Role, id uint, req dto.EventRequest) (*models.Event, error) {
	if err := s.authorize(actorIDNumber, actorRole, id); err != nil {
		return nil, err
	}
	if req.EventDate == "" || req.Type == "" {
		return nil, apperr.BadRequest("Missing fields")
	}
	e := &models.Event{
		EventDate: req.EventDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Notes:     req.Notes,
	}
	if err := s.events.Overwrite(id, e); err != nil {
		return nil, apperr.ServerError(err)
	}
	updated, err := s.events.Find(id)
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return updated, nil
}

func (s *EventService) Delete(actorIDNumber string, actorRole models.Role, id uint) error {
	if err := s.authorize(actorIDNumber, actorRole, id); err != nil {
		return err
	}
	if err := s.events.Delete(id); err != nil {
		return apperr.ServerError(err)
	}
	return nil
}
