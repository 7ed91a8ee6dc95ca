package models

import "time"

const (
	SessionKindSession = "session"
	SessionKindInvite  = "invite"
)

type AuthSession struct {
	ID        string    `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Kind      string    `gorm:"not null;default:session"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}

// Session is the authenticated identity handed out by the auth provider.
// AccessToken is opaque outside the provider.
type Session struct {
	ID          string
	UserID      uint
	Email       string
	AccessToken string
	Kind        string
	PasswordSet bool
	ExpiresAt   time.Time
}

func (session Session) IsInvite() bool {
	return session.Kind == SessionKindInvite
}

func (session Session) Expired(now time.Time) bool {
	return !session.ExpiresAt.IsZero() && !now.Before(session.ExpiresAt)
}
