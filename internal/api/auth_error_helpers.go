package api

import (
	"errors"

	"github.com/proappliance/quoteadmin/internal/services"
)

func authErrorKey(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return "auth.error.invalid_credentials"
	case errors.Is(err, services.ErrTooManyAttempts):
		return "auth.error.too_many_attempts"
	case errors.Is(err, services.ErrWeakPassword):
		return "auth.error.weak_password"
	case errors.Is(err, services.ErrTokenExpired):
		return "auth.error.invite_expired"
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrPasswordNotSet):
		return "auth.error.invite_invalid"
	default:
		return "auth.error.generic"
	}
}
