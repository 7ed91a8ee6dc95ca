package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/proappliance/quoteadmin/internal/authevents"
	"github.com/proappliance/quoteadmin/internal/db"
	"github.com/proappliance/quoteadmin/internal/i18n"
	"github.com/proappliance/quoteadmin/internal/models"
	"github.com/proappliance/quoteadmin/internal/services"
	"github.com/proappliance/quoteadmin/internal/session"
	"github.com/proappliance/quoteadmin/internal/storage"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

// countingProvider records how often the login page reaches the provider.
type countingProvider struct {
	AuthProvider
	getSessionCalls atomic.Int64
}

func (provider *countingProvider) GetSession(ctx context.Context, accessToken string) (models.Session, error) {
	provider.getSessionCalls.Add(1)
	return provider.AuthProvider.GetSession(ctx, accessToken)
}

type testEnv struct {
	app        *fiber.App
	repos      *db.Repositories
	auth       *services.AuthService
	provider   *countingProvider
	gate       *session.Gate
	storageDir string
	clock      atomic.Pointer[time.Time]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCookieSecure(t, false)
}

func newTestEnvWithCookieSecure(t *testing.T, cookieSecure bool) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "quoteadmin-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	env := &testEnv{
		repos:      db.NewRepositories(database),
		storageDir: t.TempDir(),
	}
	now := time.Now().UTC()
	env.clock.Store(&now)

	env.auth = services.NewAuthService(env.repos.Users, env.repos.Sessions, testSecretKey, authevents.NewMemoryBus(),
		services.WithClock(func() time.Time { return *env.clock.Load() }),
	)
	env.provider = &countingProvider{AuthProvider: env.auth}
	env.gate = session.NewGate(env.auth)
	t.Cleanup(env.gate.Close)

	objects, err := storage.NewLocalSigner(env.storageDir, "", testSecretKey)
	if err != nil {
		t.Fatalf("init local signer: %v", err)
	}
	i18nManager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Auth:     env.provider,
		Gate:     env.gate,
		Quotes:   services.NewQuoteService(env.repos.Quotes),
		Seeder:   services.NewSeedService(env.repos.Quotes),
		Previews: services.NewFilePreviewService(objects),
		Objects:  objects,
		I18n:     i18nManager,
	}, testSecretKey, time.UTC, cookieSecure)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	env.app = app
	return env
}

func (env *testEnv) advanceClock(d time.Duration) {
	next := env.clock.Load().Add(d)
	env.clock.Store(&next)
}

func (env *testEnv) createStaff(t *testing.T, email string, password string) {
	t.Helper()
	ctx := context.Background()

	invite, err := env.auth.InviteUser(ctx, email)
	if err != nil {
		t.Fatalf("invite %s: %v", email, err)
	}
	if _, err := env.auth.UpdateUser(ctx, invite.AccessToken, services.UserUpdate{Password: password, PasswordSet: true}); err != nil {
		t.Fatalf("set password for %s: %v", email, err)
	}
}

// signIn logs in through the form and returns the auth cookie value.
func (env *testEnv) signIn(t *testing.T, email string, password string) string {
	t.Helper()

	response := env.postForm(t, "/auth/login", url.Values{"email": {email}, "password": {password}}, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	authCookie := responseCookieValue(response.Cookies(), authCookieName)
	if authCookie == "" {
		t.Fatal("expected auth cookie after login")
	}
	return authCookie
}

func (env *testEnv) signedInCookie(t *testing.T) string {
	t.Helper()
	env.createStaff(t, "dispatch@example.com", "install-day-1")
	return authCookieName + "=" + env.signIn(t, "dispatch@example.com", "install-day-1")
}

func (env *testEnv) createQuote(t *testing.T, quote models.Quote) models.Quote {
	t.Helper()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	if err := env.repos.Quotes.CreateQuote(context.Background(), &quote); err != nil {
		t.Fatalf("create quote %s: %v", quote.CustomerName, err)
	}
	return quote
}

func (env *testEnv) get(t *testing.T, target string, cookie string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	request.Header.Set("Accept-Language", "en")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return env.do(t, request)
}

func (env *testEnv) postForm(t *testing.T, target string, form url.Values, cookie string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept-Language", "en")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return env.do(t, request)
}

func (env *testEnv) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
