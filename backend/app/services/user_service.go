package services

import (
	"errors"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/dto"
	"team-attendance/backend/app/models"
	"team-attendance/backend/app/repo"

	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureStaff seeds the initial staff account when the table holds no staff
// user, so a fresh deployment always has an administrator.
func (s *UserService) EnsureStaff() error {
	count, err := s.users.CountByRole(models.RoleStaff)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	email := "admin@example.com"
	return s.users.Create(&models.User{
		IDNumber: "000000000",
		FullName: "Admin User",
		Email:    &email,
		Role:     models.RoleStaff,
		Color:    models.DefaultColor,
	})
}

func (s *UserService) Signup(req dto.SignupRequest) (*models.User, error) {
	if req.IDNumber == "" || req.FullName == "" {
		return nil, apperr.BadRequest("Missing fields")
	}
	count, err := s.users.CountByIDNumber(req.IDNumber)
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("User already exists")
	}
	u := &models.User{
		IDNumber: req.IDNumber,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.RoleDeveloper,
		Color:    models.DefaultColor,
	}
	if err := s.users.Create(u); err != nil {
		return nil, apperr.ServerError(err)
	}
	return u, nil
}

func (s *UserService) Login(idNumber string) (*models.User, error) {
	if idNumber == "" {
		return nil, apperr.BadRequest("Missing id_number")
	}
	u, err := s.users.FindByIDNumber(idNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err)
	}
	return u, nil
}

func (s *UserService) List() ([]models.User, error) {
	users, err := s.users.ListAll()
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return users, nil
}

// UpdateOwnColor persists a new display color for the calling user. The
// caller gets a reissued token from the controller so the change is visible
// without a re-login.
func (s *UserService) UpdateOwnColor(idNumber, color string) (*models.User, error) {
	if color == "" {
		return nil, apperr.BadRequest("Missing color")
	}
	u, err := s.users.FindByIDNumber(idNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err)
	}
	if err := s.users.UpdateColor(u.ID, color); err != nil {
		return nil, apperr.ServerError(err)
	}
	u.Color = color
	return u, nil
}

func (s *UserService) UpdateColor(id uint, color string) (*models.User, error) {
	if color == "" {
		return nil, apperr.BadRequest("Missing color")
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err)
	}
	if err := s.users.UpdateColor(u.ID, color); err != nil {
		return nil, apperr.ServerError(err)
	}
	u.Color = color
	return u, nil
}

func (s *UserService) UpdateRole(id uint, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperr.BadRequest("Invalid role")
	}
	if err := s.users.UpdateRole(id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err)
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	return u, nil
}

// Delete removes a user and all of their events. Staff cannot delete the
// account they are signed in with.
func (s *UserService) Delete(actorID, id uint) error {
	if actorID == id {
		return apperr.BadRequest("Cannot delete the currently signed-in user")
	}
	if err := s.users.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.ServerError(err)
	}
	return nil
}
