package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/proappliance/quoteadmin/internal/models"
)

func TestDashboardRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	response := env.get(t, "/dashboard", "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %q", location)
	}
}

func TestDashboardFiltersSortsAndCounts(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signedInCookie(t)
	now := time.Now().UTC()

	env.createQuote(t, models.Quote{CustomerName: "Bob Stone", Email: "bob@example.com", PhonePrimary: "(555) 010-2000", CreatedAt: now.Add(-48 * time.Hour)})
	env.createQuote(t, models.Quote{CustomerName: "alice Smith", Email: "alice@example.com", PhonePrimary: "555-0100", CreatedAt: now})
	env.createQuote(t, models.Quote{CustomerName: "Carla Smithers", Email: "carla@example.com", PhonePrimary: "555-0199", CreatedAt: now.Add(-72 * time.Hour)})
	env.createQuote(t, models.Quote{CustomerName: "Old Archive", Email: "old@example.com", PhonePrimary: "555-0000", CreatedAt: now, Archived: true})

	response := env.get(t, "/dashboard?q=SMITH&sort=customer_name&dir=asc", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	rendered := readBody(t, response)

	if strings.Contains(rendered, "Bob Stone") || strings.Contains(rendered, "Old Archive") {
		t.Fatalf("expected filtered and archived quotes to be hidden")
	}
	carla := strings.Index(rendered, "Carla Smithers")
	alice := strings.Index(rendered, "alice Smith")
	if alice < 0 || carla < 0 {
		t.Fatalf("expected both matching quotes in page")
	}
	if carla > alice {
		t.Fatalf("expected byte-wise name order (uppercase first)")
	}
	if !strings.Contains(rendered, `data-stat="total">3<`) {
		t.Fatalf("expected total of three active quotes")
	}
	if !strings.Contains(rendered, `data-stat="filtered">2<`) {
		t.Fatalf("expected filtered count of two")
	}
	if !strings.Contains(rendered, `data-stat="today">1<`) {
		t.Fatalf("expected one quote created today")
	}
	if !strings.Contains(rendered, `href="/dashboard?dir=desc&amp;q=SMITH&amp;sort=customer_name"`) {
		t.Fatalf("expected active column link to flip direction")
	}
}

func TestDashboardEmptyStates(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signedInCookie(t)

	empty := readBody(t, env.get(t, "/dashboard", cookie))
	if !strings.Contains(empty, `data-empty="none"`) {
		t.Fatalf("expected no-quotes empty state")
	}

	env.createQuote(t, models.Quote{CustomerName: "Dana", Email: "dana@example.com", PhonePrimary: "555-0123"})
	noMatch := readBody(t, env.get(t, "/dashboard?q=zzz", cookie))
	if !strings.Contains(noMatch, `data-empty="no-match"`) {
		t.Fatalf("expected no-match empty state")
	}
	if !strings.Contains(noMatch, "Clear search") {
		t.Fatalf("expected clear search link")
	}
}

func TestArchiveEnteredFlashesCount(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signedInCookie(t)

	nothing := env.postForm(t, "/quotes/archive-entered", url.Values{}, cookie)
	nothingFlash := responseCookieValue(nothing.Cookies(), flashCookieName)
	nothing.Body.Close()
	if nothing.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", nothing.StatusCode)
	}
	page := readBody(t, env.get(t, "/dashboard", cookie+"; "+flashCookieName+"="+nothingFlash))
	if !strings.Contains(page, "There are no entered quotes to archive.") {
		t.Fatalf("expected nothing-to-archive notice")
	}

	entered := env.createQuote(t, models.Quote{CustomerName: "Entered One", Email: "one@example.com", PhonePrimary: "1", EnteredStatus: true})
	env.createQuote(t, models.Quote{CustomerName: "Entered Two", Email: "two@example.com", PhonePrimary: "2", EnteredStatus: true})
	env.createQuote(t, models.Quote{CustomerName: "Still Pending", Email: "three@example.com", PhonePrimary: "3"})

	response := env.postForm(t, "/quotes/archive-entered", url.Values{}, cookie)
	flash := responseCookieValue(response.Cookies(), flashCookieName)
	response.Body.Close()
	if response.Header.Get("Location") != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", response.Header.Get("Location"))
	}

	after := readBody(t, env.get(t, "/dashboard", cookie+"; "+flashCookieName+"="+flash))
	if !strings.Contains(after, "Archived 2 quote(s).") {
		t.Fatalf("expected archived count notice")
	}
	if strings.Contains(after, "Entered One") || !strings.Contains(after, "Still Pending") {
		t.Fatalf("expected only pending quotes to remain")
	}

	stored, err := env.repos.Quotes.FindByID(context.Background(), entered.ID)
	if err != nil {
		t.Fatalf("load archived quote: %v", err)
	}
	if !stored.Archived {
		t.Fatal("expected entered quote to be archived")
	}
}

func TestSeedRouteInsertsSampleQuotes(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signedInCookie(t)

	response := env.postForm(t, "/quotes/seed", url.Values{}, cookie)
	flash := responseCookieValue(response.Cookies(), flashCookieName)
	response.Body.Close()
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}

	page := readBody(t, env.get(t, "/dashboard", cookie+"; "+flashCookieName+"="+flash))
	if !strings.Contains(page, "Seeded 5 of 5 sample quotes.") {
		t.Fatalf("expected seed notice")
	}
	if !strings.Contains(page, `data-stat="total">5<`) {
		t.Fatalf("expected five quotes after seeding")
	}
}
