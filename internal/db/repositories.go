package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Sessions *SessionRepository
	Quotes   *QuoteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Sessions: NewSessionRepository(database),
		Quotes:   NewQuoteRepository(database),
	}
}
