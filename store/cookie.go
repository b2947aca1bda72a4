package store

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieBackend stores collections in browser cookies via the current
// request context. Contract shared with the front-end: URL-encoded JSON
// values, path "/", expiry refreshed to TTL days from every write.
//
// Reads within one request must observe earlier writes from the same
// request, but a Set-Cookie header is not visible through the request
// cookies, so written values are overlaid in memory until the response
// goes out.
type CookieBackend struct {
	c       *fiber.Ctx
	ttl     time.Duration
	pending map[string]*string // nil value marks a deletion
}

// NewCookieBackend wraps the request context. ttl is the cookie expiry
// window, 7 days per the contract.
func NewCookieBackend(c *fiber.Ctx, ttl time.Duration) *CookieBackend {
	return &CookieBackend{
		c:       c,
		ttl:     ttl,
		pending: make(map[string]*string),
	}
}

func (b *CookieBackend) Get(key string) (string, bool) {
	if value, ok := b.pending[key]; ok {
		if value == nil {
			return "", false
		}
		return *value, true
	}

	raw := b.c.Cookies(key)
	if raw == "" {
		return "", false
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		// Treat an undecodable cookie like a missing one; the caller
		// falls back to the default collection.
		return "", false
	}
	return decoded, true
}

func (b *CookieBackend) Set(key, value string) error {
	b.c.Cookie(&fiber.Cookie{
		Name:    key,
		Value:   url.QueryEscape(value),
		Expires: time.Now().Add(b.ttl),
		Path:    "/",
	})
	b.pending[key] = &value
	return nil
}

func (b *CookieBackend) Delete(key string) error {
	b.c.Cookie(&fiber.Cookie{
		Name:    key,
		Value:   "",
		Expires: time.Unix(0, 0),
		Path:    "/",
	})
	b.pending[key] = nil
	return nil
}
