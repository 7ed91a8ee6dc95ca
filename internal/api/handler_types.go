package api

import (
	"context"
	"html/template"
	"time"

	"github.com/proappliance/quoteadmin/internal/i18n"
	"github.com/proappliance/quoteadmin/internal/models"
	"github.com/proappliance/quoteadmin/internal/services"
	"github.com/proappliance/quoteadmin/internal/session"
	"github.com/proappliance/quoteadmin/internal/storage"
)

// AuthProvider is the part of the auth service the HTTP layer talks to
// directly. Everything else goes through the session gate.
type AuthProvider interface {
	GetSession(ctx context.Context, accessToken string) (models.Session, error)
	SignInWithPassword(ctx context.Context, email string, password string) (models.Session, error)
	UpdateUser(ctx context.Context, accessToken string, update services.UserUpdate) (models.Session, error)
	ExchangeInvite(ctx context.Context, accessToken string) (models.Session, error)
}

type Dependencies struct {
	Auth     AuthProvider
	Gate     *session.Gate
	Quotes   *services.QuoteService
	Seeder   *services.SeedService
	Previews *services.FilePreviewService
	// Objects is set only when files are served from local disk.
	Objects *storage.LocalSigner
	I18n    *i18n.Manager
}

type Handler struct {
	auth         AuthProvider
	gate         *session.Gate
	quotes       *services.QuoteService
	seeder       *services.SeedService
	previews     *services.FilePreviewService
	objects      *storage.LocalSigner
	i18n         *i18n.Manager
	cookies      *secureCookieCodec
	location     *time.Location
	cookieSecure bool
	now          func() time.Time
	templates    map[string]*template.Template
	partials     map[string]*template.Template
}

type FlashPayload struct {
	AuthError  string `json:"auth_error,omitempty"`
	LoginEmail string `json:"login_email,omitempty"`
	Notice     string `json:"notice,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (payload FlashPayload) empty() bool {
	return payload.AuthError == "" && payload.LoginEmail == "" && payload.Notice == "" && payload.Error == ""
}

type sortColumn struct {
	Field     services.SortField
	LabelKey  string
	Path      string
	Active    bool
	Direction services.SortDirection
}
