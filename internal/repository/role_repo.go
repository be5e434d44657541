package repository

import (
	"errors"

	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByCode(code string) (*model.Role, error)
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	err := r.db.First(&role, "code = ?", code).Error
	return &role, err
}

// SeedDefaults inserts the ADMIN and CASHIER roles if they are missing.
func (r *roleRepo) SeedDefaults() error {
	for _, role := range model.DefaultRoles {
		var existing model.Role
		err := r.db.First(&existing, "code = ?", role.Code).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
