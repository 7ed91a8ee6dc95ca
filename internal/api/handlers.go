package api

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/proappliance/quoteadmin/internal/services"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

var pageTemplates = []string{
	"login",
	"dashboard",
	"quote",
	"not_found",
}

var partialTemplates = []string{
	"entered_toggle_partial",
	"file_preview_partial",
}

func NewHandler(deps Dependencies, secretKey []byte, location *time.Location, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Auth == nil || deps.Gate == nil {
		return nil, errors.New("auth provider and session gate are required")
	}
	if deps.Quotes == nil {
		return nil, errors.New("quote service is required")
	}
	if deps.Previews == nil {
		deps.Previews = services.NewFilePreviewService(nil)
	}

	cookies, err := newSecureCookieCodec(secretKey)
	if err != nil {
		return nil, err
	}

	templatesFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("open embedded templates: %w", err)
	}
	funcMap := newTemplateFuncMap()
	templates, err := parsePageTemplates(templatesFS, funcMap, pageTemplates, partialTemplates)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(templatesFS, funcMap, partialTemplates)
	if err != nil {
		return nil, err
	}

	return &Handler{
		auth:         deps.Auth,
		gate:         deps.Gate,
		quotes:       deps.Quotes,
		seeder:       deps.Seeder,
		previews:     deps.Previews,
		objects:      deps.Objects,
		i18n:         deps.I18n,
		cookies:      cookies,
		location:     location,
		cookieSecure: cookieSecure,
		now:          time.Now,
		templates:    templates,
		partials:     partials,
	}, nil
}

// StaticFS exposes the embedded browser assets for the /static mount.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
