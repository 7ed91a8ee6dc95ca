package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

func TestSanitizeRedirectPath(t *testing.T) {
	t.Parallel()

	fallback := "/"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty uses fallback", raw: "", want: fallback},
		{name: "absolute url blocked", raw: "https://evil.example", want: fallback},
		{name: "protocol relative blocked", raw: "//evil.example", want: fallback},
		{name: "path without leading slash blocked", raw: "dashboard", want: fallback},
		{name: "valid local path kept", raw: "/dashboard", want: "/dashboard"},
		{name: "valid local path with query kept", raw: "/dashboard?q=smith&sort=email&dir=asc", want: "/dashboard?q=smith&sort=email&dir=asc"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeRedirectPath(test.raw, fallback)
			if got != test.want {
				t.Fatalf("sanitizeRedirectPath(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestRefererPathKeepsOnlyLocalPart(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	tests := []struct {
		referer string
		want    string
	}{
		{referer: "", want: "/"},
		{referer: "https://console.example.com/quote/abc?x=1", want: "/quote/abc?x=1"},
		{referer: "https://evil.example//attacker", want: "/"},
		{referer: "/dashboard", want: "/dashboard"},
	}

	for _, test := range tests {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Request().Header.Set(fiber.HeaderReferer, test.referer)
		got := refererPath(ctx, "/")
		app.ReleaseCtx(ctx)
		if got != test.want {
			t.Fatalf("refererPath(%q) = %q, want %q", test.referer, got, test.want)
		}
	}
}
