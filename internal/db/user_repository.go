package db

import (
	"context"

	"github.com/proappliance/quoteadmin/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.StaffUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.StaffUser, error) {
	var user models.StaffUser
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.StaffUser{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(ctx context.Context, email string) (models.StaffUser, error) {
	var user models.StaffUser
	if err := repo.database.WithContext(ctx).Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.StaffUser{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(ctx context.Context, user *models.StaffUser) error {
	return repo.database.WithContext(ctx).Create(user).Error
}

func (repo *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string, passwordSet bool) error {
	return repo.database.WithContext(ctx).Model(&models.StaffUser{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash": passwordHash,
		"password_set":  passwordSet,
	}).Error
}
