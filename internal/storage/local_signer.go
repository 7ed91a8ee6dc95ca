package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type objectClaims struct {
	Path         string `json:"p"`
	DownloadName string `json:"n,omitempty"`
	jwt.RegisteredClaims
}

// ObjectGrant is what a verified local URL allows the bearer to fetch.
type ObjectGrant struct {
	Path         string
	DownloadName string
}

// LocalSigner serves files from a directory on disk behind HMAC-signed,
// expiring URLs handled by the app itself.
type LocalSigner struct {
	root      string
	baseURL   string
	secretKey []byte
	now       func() time.Time
}

func NewLocalSigner(root string, baseURL string, secretKey []byte) (*LocalSigner, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("local signer requires a secret key")
	}
	absoluteRoot, err := filepath.Abs(strings.TrimSpace(root))
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	return &LocalSigner{
		root:      absoluteRoot,
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		secretKey: secretKey,
		now:       time.Now,
	}, nil
}

func (signer *LocalSigner) Root() string {
	return signer.root
}

func (signer *LocalSigner) CreateSignedURL(_ context.Context, path string, ttl time.Duration, options ...SignOption) (string, error) {
	objectPath, err := normalizeObjectPath(path)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = SignedURLTTL
	}
	settings := applySignOptions(options)

	now := signer.now()
	claims := objectClaims{
		Path:         objectPath,
		DownloadName: settings.downloadName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign object token: %w", err)
	}

	return signer.baseURL + ObjectEndpoint + "?token=" + url.QueryEscape(token), nil
}

func (signer *LocalSigner) Verify(token string) (ObjectGrant, error) {
	claims := &objectClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return signer.secretKey, nil
	}, jwt.WithTimeFunc(signer.now), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ObjectGrant{}, ErrSignedURLExpired
	}
	if err != nil || !parsed.Valid || claims.Path == "" {
		return ObjectGrant{}, ErrInvalidSignature
	}
	return ObjectGrant{Path: claims.Path, DownloadName: claims.DownloadName}, nil
}

// Resolve maps a granted object path to a file under the root, refusing
// anything that escapes it.
func (signer *LocalSigner) Resolve(grant ObjectGrant) (string, error) {
	relative := filepath.FromSlash(grant.Path)
	if !filepath.IsLocal(relative) {
		return "", ErrInvalidSignature
	}
	fullPath := filepath.Join(signer.root, relative)
	info, err := os.Stat(fullPath)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return fullPath, nil
}
