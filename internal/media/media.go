// Package media binds post and profile images to an external image host.
package media

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
)

// ErrDisabled is returned by uploads when no image host is configured.
var ErrDisabled = errors.New("image uploads are not configured")

// Binder stores an image payload and hands back a stable URL for it.
type Binder interface {
	// Upload accepts a data URI or remote URL and returns the hosted URL.
	Upload(ctx context.Context, payload string) (string, error)
	// Destroy removes the image previously returned by Upload.
	Destroy(ctx context.Context, imageURL string) error
}

// PublicID derives the host-side identifier from a hosted URL: the last path
// segment with its extension removed.
func PublicID(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// Disabled is the Binder used when no credentials are configured.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, payload string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Destroy(ctx context.Context, imageURL string) error { return nil }
