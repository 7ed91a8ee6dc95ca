// Package storage issues time-limited retrieval URLs for uploaded quote files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"
)

const (
	DefaultBucket  = "quote-files"
	SignedURLTTL   = 3600 * time.Second
	ObjectEndpoint = "/storage/object"
)

var (
	ErrInvalidSignature = errors.New("invalid storage signature")
	ErrSignedURLExpired = errors.New("signed url expired")
	ErrEmptyPath        = errors.New("storage path is empty")
)

type Signer interface {
	CreateSignedURL(ctx context.Context, path string, ttl time.Duration, options ...SignOption) (string, error)
}

type signSettings struct {
	downloadName string
}

type SignOption func(*signSettings)

// WithDownloadName suggests a save-as name to the browser.
func WithDownloadName(name string) SignOption {
	return func(settings *signSettings) {
		settings.downloadName = strings.TrimSpace(name)
	}
}

func applySignOptions(options []SignOption) signSettings {
	settings := signSettings{}
	for _, option := range options {
		option(&settings)
	}
	return settings
}

func normalizeObjectPath(path string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "", ErrEmptyPath
	}
	return trimmed, nil
}

// attachmentDisposition builds a Content-Disposition value; an empty name
// yields an empty header.
func attachmentDisposition(name string) string {
	if name == "" {
		return ""
	}
	value := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if value == "" {
		return fmt.Sprintf("attachment; filename=%q", name)
	}
	return value
}
