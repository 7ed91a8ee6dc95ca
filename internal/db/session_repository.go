package db

import (
	"context"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	return repo.database.WithContext(ctx).Create(session).Error
}

func (repo *SessionRepository) FindByID(ctx context.Context, sessionID string) (models.AuthSession, error) {
	var session models.AuthSession
	if err := repo.database.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error; err != nil {
		return models.AuthSession{}, err
	}
	return session, nil
}

// Revoke marks a single session revoked. Revoking twice keeps the first timestamp.
func (repo *SessionRepository) Revoke(ctx context.Context, sessionID string, at time.Time) error {
	return repo.database.WithContext(ctx).Model(&models.AuthSession{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", at).Error
}

func (repo *SessionRepository) RevokeAllForUser(ctx context.Context, userID uint, at time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).Model(&models.AuthSession{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at)
	return result.RowsAffected, result.Error
}

func (repo *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.AuthSession{})
	return result.RowsAffected, result.Error
}
