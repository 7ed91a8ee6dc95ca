package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/proappliance/quoteadmin/internal/authevents"
	"github.com/proappliance/quoteadmin/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
	ErrInvalidToken       = errors.New("invalid or revoked token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordNotSet     = errors.New("password not set")
)

const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultInviteTTL  = 24 * time.Hour
)

type AuthUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.StaffUser, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.StaffUser, error)
	Create(ctx context.Context, user *models.StaffUser) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, passwordSet bool) error
}

type AuthSessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	FindByID(ctx context.Context, sessionID string) (models.AuthSession, error)
	Revoke(ctx context.Context, sessionID string, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID uint, at time.Time) (int64, error)
}

// UserUpdate is the user-update payload: a new password plus the
// password_set metadata flag.
type UserUpdate struct {
	Password    string
	PasswordSet bool
}

type accessClaims struct {
	SessionID string `json:"sid"`
	Kind      string `json:"typ"`
	jwt.RegisteredClaims
}

// AuthService is the auth provider. It issues opaque access tokens backed by
// auth_sessions rows and announces every state change on the event bus.
type AuthService struct {
	users      AuthUserRepository
	sessions   AuthSessionRepository
	secretKey  []byte
	events     authevents.Bus
	limiter    *attemptLimiter
	sessionTTL time.Duration
	inviteTTL  time.Duration
	now        func() time.Time
}

type AuthOption func(*AuthService)

func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(service *AuthService) {
		if ttl > 0 {
			service.sessionTTL = ttl
		}
	}
}

func WithInviteTTL(ttl time.Duration) AuthOption {
	return func(service *AuthService) {
		if ttl > 0 {
			service.inviteTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) AuthOption {
	return func(service *AuthService) {
		if now != nil {
			service.now = now
		}
	}
}

func NewAuthService(users AuthUserRepository, sessions AuthSessionRepository, secretKey []byte, events authevents.Bus, options ...AuthOption) *AuthService {
	if events == nil {
		events = authevents.NewMemoryBus()
	}
	service := &AuthService{
		users:      users,
		sessions:   sessions,
		secretKey:  secretKey,
		events:     events,
		limiter:    newAttemptLimiter(signInAttemptLimit, signInAttemptWindow),
		sessionTTL: DefaultSessionTTL,
		inviteTTL:  DefaultInviteTTL,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

func (service *AuthService) Subscribe(listener authevents.Listener) func() {
	return service.events.Subscribe(listener)
}

// GetSession resolves an access token to the live session behind it.
func (service *AuthService) GetSession(ctx context.Context, accessToken string) (models.Session, error) {
	claims, err := service.parseToken(accessToken)
	if err != nil {
		return models.Session{}, err
	}

	row, err := service.sessions.FindByID(ctx, claims.SessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, ErrInvalidToken
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load auth session: %w", err)
	}
	if row.RevokedAt != nil || row.Kind != claims.Kind {
		return models.Session{}, ErrInvalidToken
	}
	if !service.now().Before(row.ExpiresAt) {
		return models.Session{}, ErrTokenExpired
	}

	user, err := service.users.FindByID(ctx, row.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, ErrInvalidToken
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load staff user: %w", err)
	}

	return buildSession(row, user, strings.TrimSpace(accessToken)), nil
}

func (service *AuthService) SignInWithPassword(ctx context.Context, emailRaw string, password string) (models.Session, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	now := service.now()
	if service.limiter.blocked(email, now) {
		return models.Session{}, ErrTooManyAttempts
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		service.limiter.fail(email, now)
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load staff user: %w", err)
	}

	if !user.PasswordSet || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		service.limiter.fail(email, now)
		return models.Session{}, ErrInvalidCredentials
	}
	service.limiter.clear(email)

	session, err := service.issueSession(ctx, user, models.SessionKindSession, service.sessionTTL)
	if err != nil {
		return models.Session{}, err
	}
	service.publish(ctx, authevents.SignedIn, user.ID, session.ID)
	return session, nil
}

// UpdateUser sets the password of the token's user. An invite token is
// single-use: it is revoked and replaced by a regular session, which is
// returned. A regular session is returned unchanged.
func (service *AuthService) UpdateUser(ctx context.Context, accessToken string, update UserUpdate) (models.Session, error) {
	current, err := service.GetSession(ctx, accessToken)
	if err != nil {
		return models.Session{}, err
	}
	if err := ValidatePasswordStrength(update.Password); err != nil {
		return models.Session{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, current.UserID, string(passwordHash), update.PasswordSet); err != nil {
		return models.Session{}, fmt.Errorf("update password: %w", err)
	}

	result := current
	result.PasswordSet = update.PasswordSet
	if current.IsInvite() {
		if err := service.sessions.Revoke(ctx, current.ID, service.now()); err != nil {
			return models.Session{}, fmt.Errorf("revoke invite session: %w", err)
		}
		user, err := service.users.FindByID(ctx, current.UserID)
		if err != nil {
			return models.Session{}, fmt.Errorf("reload staff user: %w", err)
		}
		result, err = service.issueSession(ctx, user, models.SessionKindSession, service.sessionTTL)
		if err != nil {
			return models.Session{}, err
		}
		service.publish(ctx, authevents.SignedOut, current.UserID, current.ID)
	}

	service.publish(ctx, authevents.UserUpdated, current.UserID, "")
	return result, nil
}

// ExchangeInvite trades the invite token of a user who already has a
// password for a regular session. The invite is revoked either way it is used.
func (service *AuthService) ExchangeInvite(ctx context.Context, accessToken string) (models.Session, error) {
	current, err := service.GetSession(ctx, accessToken)
	if err != nil {
		return models.Session{}, err
	}
	if !current.IsInvite() {
		return current, nil
	}
	if !current.PasswordSet {
		return models.Session{}, ErrPasswordNotSet
	}

	if err := service.sessions.Revoke(ctx, current.ID, service.now()); err != nil {
		return models.Session{}, fmt.Errorf("revoke invite session: %w", err)
	}
	user, err := service.users.FindByID(ctx, current.UserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("reload staff user: %w", err)
	}
	session, err := service.issueSession(ctx, user, models.SessionKindSession, service.sessionTTL)
	if err != nil {
		return models.Session{}, err
	}
	service.publish(ctx, authevents.SignedOut, current.UserID, current.ID)
	service.publish(ctx, authevents.SignedIn, current.UserID, session.ID)
	return session, nil
}

func (service *AuthService) SignOut(ctx context.Context, accessToken string) error {
	claims, err := service.parseToken(accessToken)
	if err != nil {
		return err
	}

	row, err := service.sessions.FindByID(ctx, claims.SessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("load auth session: %w", err)
	}
	if err := service.sessions.Revoke(ctx, row.ID, service.now()); err != nil {
		return fmt.Errorf("revoke auth session: %w", err)
	}

	service.publish(ctx, authevents.SignedOut, row.UserID, row.ID)
	return nil
}

// InviteUser creates the staff user when missing and issues a one-time
// invite token for it.
func (service *AuthService) InviteUser(ctx context.Context, emailRaw string) (models.Session, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.Session{}, ErrInvalidEmail
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.StaffUser{Email: email, CreatedAt: service.now().UTC()}
		if err := service.users.Create(ctx, &user); err != nil {
			return models.Session{}, fmt.Errorf("create staff user: %w", err)
		}
	} else if err != nil {
		return models.Session{}, fmt.Errorf("load staff user: %w", err)
	}

	return service.issueSession(ctx, user, models.SessionKindInvite, service.inviteTTL)
}

func (service *AuthService) RevokeUserSessions(ctx context.Context, userID uint) error {
	if _, err := service.sessions.RevokeAllForUser(ctx, userID, service.now()); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	service.publish(ctx, authevents.SignedOut, userID, "")
	return nil
}

// ResetStaffPassword clears the stored password, ends every session of the
// user and returns a fresh invite so the password can be set again.
func (service *AuthService) ResetStaffPassword(ctx context.Context, emailRaw string) (models.Session, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.Session{}, ErrInvalidEmail
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if err != nil {
		return models.Session{}, err
	}
	if err := service.users.UpdatePassword(ctx, user.ID, "", false); err != nil {
		return models.Session{}, fmt.Errorf("clear password: %w", err)
	}
	if err := service.RevokeUserSessions(ctx, user.ID); err != nil {
		return models.Session{}, err
	}
	return service.InviteUser(ctx, email)
}

func (service *AuthService) issueSession(ctx context.Context, user models.StaffUser, kind string, ttl time.Duration) (models.Session, error) {
	now := service.now()
	row := models.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Kind:      kind,
		ExpiresAt: now.Add(ttl).UTC(),
		CreatedAt: now.UTC(),
	}
	if err := service.sessions.Create(ctx, &row); err != nil {
		return models.Session{}, fmt.Errorf("create auth session: %w", err)
	}

	token, err := service.signToken(row, now)
	if err != nil {
		return models.Session{}, err
	}
	return buildSession(row, user, token), nil
}

func (service *AuthService) signToken(row models.AuthSession, now time.Time) (string, error) {
	claims := accessClaims{
		SessionID: row.ID,
		Kind:      row.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  fmt.Sprintf("%d", row.UserID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (service *AuthService) parseToken(raw string) (*accessClaims, error) {
	tokenValue := strings.TrimSpace(raw)
	if tokenValue == "" {
		return nil, ErrInvalidToken
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secretKey, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (service *AuthService) publish(ctx context.Context, kind authevents.Kind, userID uint, sessionID string) {
	event := authevents.Event{Kind: kind, UserID: userID, SessionID: sessionID, At: service.now().UTC()}
	if err := service.events.Publish(ctx, event); err != nil {
		log.Printf("auth event %s for user %d not delivered: %v", event.Kind, event.UserID, err)
	}
}

func buildSession(row models.AuthSession, user models.StaffUser, token string) models.Session {
	return models.Session{
		ID:          row.ID,
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: token,
		Kind:        row.Kind,
		PasswordSet: user.PasswordSet,
		ExpiresAt:   row.ExpiresAt,
	}
}
