package repo

import (
	"team-attendance/backend/app/dto"
	"team-attendance/backend/app/models"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

const joinedColumns = "events.id, events.event_date, events.start_time, events.end_time, events.type, events.notes"

func (r *EventRepository) Create(e *models.Event) error { return r.db.Create(e).Error }

// ListTeam returns every event joined with its owner for the shared calendar.
func (r *EventRepository) ListTeam() ([]dto.TeamEvent, error) {
	var rows []dto.TeamEvent
	err := r.db.Model(&models.Event{}).
		Select(joinedColumns + ", users.id_number, users.full_name, users.color").
		Joins("JOIN users ON events.user_id = users.id").
		Scan(&rows).Error
	return rows, err
}

// ListByUser returns one user's events, newest date first, with the owner's
// current color attached.
func (r *EventRepository) ListByUser(userID uint) ([]dto.TeamEvent, error) {
	var rows []dto.TeamEvent
	err := r.db.Model(&models.Event{}).
		Select(joinedColumns+", users.color").
		Joins("JOIN users ON events.user_id = users.id").
		Where("events.user_id = ?", userID).
		Order("events.event_date DESC").
		Scan(&rows).Error
	return rows, err
}

// FindJoined returns a single event with owner identity, as served right
// after creation.
func (r *EventRepository) FindJoined(id uint) (*dto.TeamEvent, error) {
	var row dto.TeamEvent
	res := r.db.Model(&models.Event{}).
		Select(joinedColumns+", users.id_number, users.full_name").
		Joins("JOIN users ON events.user_id = users.id").
		Where("events.id = ?", id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// OwnerIDNumber resolves the identification number of an event's owner for
// the ownership gate on update/delete.
func (r *EventRepository) OwnerIDNumber(id uint) (string, error) {
	var idNumber string
	res := r.db.Model(&models.Event{}).
		Select("users.id_number").
		Joins("JOIN users ON events.user_id = users.id").
		Where("events.id = ?", id).
		Scan(&idNumber)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return idNumber, nil
}

func (r *EventRepository) Find(id uint) (*models.Event, error) {
	var e models.Event
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Overwrite replaces the mutable fields of an event.
func (r *EventRepository) Overwrite(id uint, e *models.Event) error {
	return r.db.Model(&models.Event{}).Where("id = ?", id).Updates(map[string]interface{}{
		"event_date": e.EventDate,
		"start_time": e.StartTime,
		"end_time":   e.EndTime,
		"type":       e.Type,
		"notes":      e.Notes,
	}).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

func (r *EventRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	return count, r.db.Model(&models.Event{}).Where("user_id = ?", userID).Count(&count).Error
}

// ListForExport returns all events joined with owner info ordered by date
// then owner name, the order the CSV export is rendered in.
func (r *EventRepository) ListForExport() ([]dto.TeamEvent, error) {
	var rows []dto.TeamEvent
	err := r.db.Model(&models.Event{}).
		Select(joinedColumns + ", users.id_number, users.full_name").
		Joins("JOIN users ON events.user_id = users.id").
		Order("events.event_date, users.full_name").
		Scan(&rows).Error
	return rows, err
}
