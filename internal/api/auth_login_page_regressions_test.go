package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestLoginPageExpiredInviteDisablesSubmitWithoutProviderCall(t *testing.T) {
	env := newTestEnv(t)

	response := env.get(t, "/?error_code=otp_expired&error_description="+url.QueryEscape("Email link is invalid or has expired"), "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	rendered := readBody(t, response)

	if !strings.Contains(rendered, `data-login-state="INVITE_EXPIRED"`) {
		t.Fatalf("expected expired invite state in page")
	}
	if !strings.Contains(rendered, "Email link is invalid or has expired") {
		t.Fatalf("expected provider error description to be shown")
	}
	if !strings.Contains(rendered, `<button type="submit" class="btn btn-primary" disabled>`) {
		t.Fatalf("expected disabled submit button")
	}
	if !strings.Contains(rendered, `href="/"`) {
		t.Fatalf("expected link back to the login page")
	}
	if calls := env.provider.getSessionCalls.Load(); calls != 0 {
		t.Fatalf("expected no provider calls, got %d", calls)
	}
}

func TestLoginPageRedirectsLiveSessionToDashboard(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signedInCookie(t)

	response := env.get(t, "/", cookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
}

func TestInviteSetupLogsInAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	invite, err := env.auth.InviteUser(context.Background(), "new-hire@example.com")
	if err != nil {
		t.Fatalf("invite user: %v", err)
	}

	setupResponse := env.get(t, "/?access_token="+url.QueryEscape(invite.AccessToken)+"&type=invite", "")
	if setupResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected setup page status 200, got %d", setupResponse.StatusCode)
	}
	pendingCookie := responseCookieValue(setupResponse.Cookies(), pendingInviteCookieName)
	if responseCookieValue(setupResponse.Cookies(), authCookieName) != "" {
		t.Fatal("expected invite setup not to log in")
	}
	rendered := readBody(t, setupResponse)
	if pendingCookie == "" {
		t.Fatal("expected sealed pending invite cookie")
	}
	if strings.Contains(pendingCookie, invite.AccessToken) {
		t.Fatal("expected pending invite cookie to be sealed")
	}
	if !strings.Contains(rendered, `data-login-state="INVITE_SETUP"`) {
		t.Fatalf("expected invite setup state")
	}
	if !strings.Contains(rendered, `value="new-hire@example.com" disabled`) {
		t.Fatalf("expected display-only invite email")
	}
	if !strings.Contains(rendered, `minlength="8"`) {
		t.Fatalf("expected advertised password minimum")
	}
	if strings.Contains(rendered, `name="confirm_password"`) {
		t.Fatalf("expected invite setup form without a confirmation field")
	}

	submitResponse := env.postForm(t, "/auth/invite", url.Values{
		"password":         {"install-day-1"},
		"confirm_password": {"install-day-1"},
	}, pendingInviteCookieName+"="+pendingCookie)
	defer submitResponse.Body.Close()

	if submitResponse.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", submitResponse.StatusCode)
	}
	if location := submitResponse.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
	authCookie := responseCookieValue(submitResponse.Cookies(), authCookieName)
	if authCookie == "" {
		t.Fatal("expected auth cookie after invite setup")
	}
	if cleared := responseCookie(submitResponse.Cookies(), pendingInviteCookieName); cleared == nil || cleared.Value != "" {
		t.Fatal("expected pending invite cookie to be cleared")
	}

	dashboard := env.get(t, "/dashboard", authCookieName+"="+authCookie)
	if dashboard.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard status 200, got %d", dashboard.StatusCode)
	}
	if body := readBody(t, dashboard); !strings.Contains(body, "new-hire@example.com") {
		t.Fatalf("expected staff email in dashboard header")
	}

	reused := env.get(t, "/?access_token="+url.QueryEscape(invite.AccessToken)+"&type=invite", "")
	if reused.StatusCode != http.StatusOK {
		t.Fatalf("expected reused invite status 200, got %d", reused.StatusCode)
	}
	reusedBody := readBody(t, reused)
	if !strings.Contains(reusedBody, "Invalid or expired invite link.") {
		t.Fatalf("expected reused invite link to be rejected")
	}
	if !strings.Contains(reusedBody, `data-login-state="CREDENTIALS"`) {
		t.Fatalf("expected credentials form after rejected invite")
	}
}

func TestInviteSetupRejectsMismatchedConfirmation(t *testing.T) {
	env := newTestEnv(t)
	invite, err := env.auth.InviteUser(context.Background(), "typo@example.com")
	if err != nil {
		t.Fatalf("invite user: %v", err)
	}

	setupResponse := env.get(t, "/?access_token="+url.QueryEscape(invite.AccessToken)+"&type=invite", "")
	pendingCookie := responseCookieValue(setupResponse.Cookies(), pendingInviteCookieName)
	setupResponse.Body.Close()

	response := env.postForm(t, "/auth/invite", url.Values{
		"password":         {"install-day-1"},
		"confirm_password": {"install-day-2"},
	}, pendingInviteCookieName+"="+pendingCookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/?type=invite" {
		t.Fatalf("expected redirect back to invite setup, got %q", location)
	}
	if responseCookieValue(response.Cookies(), authCookieName) != "" {
		t.Fatal("expected no auth cookie on mismatch")
	}

	flash := responseCookieValue(response.Cookies(), flashCookieName)
	follow := env.get(t, "/?type=invite", pendingInviteCookieName+"="+pendingCookie+"; "+flashCookieName+"="+flash)
	body := readBody(t, follow)
	if !strings.Contains(body, "Passwords do not match.") {
		t.Fatalf("expected mismatch error on invite setup page")
	}
	if !strings.Contains(body, `data-login-state="INVITE_SETUP"`) {
		t.Fatalf("expected invite setup to resume from pending cookie")
	}
}

func TestExpiredInviteRedirectsWithOTPExpired(t *testing.T) {
	env := newTestEnv(t)
	invite, err := env.auth.InviteUser(context.Background(), "late@example.com")
	if err != nil {
		t.Fatalf("invite user: %v", err)
	}
	env.advanceClock(25 * time.Hour)

	response := env.get(t, "/?access_token="+url.QueryEscape(invite.AccessToken)+"&type=invite", "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	location, err := url.Parse(response.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect location: %v", err)
	}
	if location.Path != "/" || location.Query().Get("error_code") != "otp_expired" {
		t.Fatalf("expected otp_expired redirect, got %q", location.String())
	}
	if location.Query().Get("error_description") == "" {
		t.Fatal("expected error description in redirect")
	}
}

func TestInviteForUserWithPasswordLogsIn(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "returning@example.com", "install-day-1")
	invite, err := env.auth.InviteUser(context.Background(), "returning@example.com")
	if err != nil {
		t.Fatalf("invite user: %v", err)
	}

	response := env.get(t, "/?access_token="+url.QueryEscape(invite.AccessToken)+"&type=invite", "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
	if responseCookieValue(response.Cookies(), authCookieName) == "" {
		t.Fatal("expected auth cookie for returning staff member")
	}
}

func TestMagicLinkLogsIn(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "magic@example.com", "install-day-1")
	session, err := env.auth.SignInWithPassword(context.Background(), "magic@example.com", "install-day-1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	response := env.get(t, "/?access_token="+url.QueryEscape(session.AccessToken), "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusSeeOther || response.Header.Get("Location") != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", response.StatusCode, response.Header.Get("Location"))
	}

	invalid := env.get(t, "/?access_token=not-a-token", "")
	if invalid.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 for invalid link, got %d", invalid.StatusCode)
	}
	if body := readBody(t, invalid); !strings.Contains(body, "This sign-in link is invalid or has expired.") {
		t.Fatalf("expected invalid link error")
	}
}
