package repo

import (
	"team-attendance/backend/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(u *models.User) error { return r.db.Create(u).Error }

func (r *UserRepository) FindByIDNumber(idNumber string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("id_number = ?", idNumber).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByIDNumber(idNumber string) (int64, error) {
	var count int64
	return count, r.db.Model(&models.User{}).Where("id_number = ?", idNumber).Count(&count).Error
}

func (r *UserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	return count, r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
}

func (r *UserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	return users, r.db.Find(&users).Error
}

func (r *UserRepository) UpdateColor(id uint, color string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("color", color).Error
}

func (r *UserRepository) UpdateRole(id uint, role models.Role) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the user's events and then the user row inside one
// transaction. The two explicit deletes keep the behavior identical across
// storage engines instead of leaning on an engine-level cascade.
func (r *UserRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
