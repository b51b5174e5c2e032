package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

// CookieCarrier keeps the token in an HttpOnly cookie. In production the
// cookie is Secure with SameSite=None; otherwise browsers would drop a
// SameSite=None cookie, so Lax is used without Secure.
type CookieCarrier struct {
	name     string
	maxAge   int
	secure   bool
	sameSite http.SameSite
}

func NewCookieCarrier(name string, maxAge time.Duration, production bool) *CookieCarrier {
	if name == "" {
		name = common.DefaultCookieName
	}
	if maxAge <= 0 {
		maxAge = common.DefaultTokenLifetime
	}
	c := &CookieCarrier{
		name:     name,
		maxAge:   int(maxAge / time.Second),
		secure:   production,
		sameSite: http.SameSiteLaxMode,
	}
	if production {
		c.sameSite = http.SameSiteNoneMode
	}
	return c
}

func (c *CookieCarrier) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, c.maxAge))
}

func (c *CookieCarrier) Extract(r *http.Request) (string, error) {
	ck, err := r.Cookie(c.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", common.ErrNoToken
		}
		return "", common.ErrMalformedCarrier
	}
	if ck.Value == "" {
		return "", common.ErrNoToken
	}
	return ck.Value, nil
}

// Clear expires the cookie. Path, SameSite and Secure must match Attach or
// the browser keeps the original.
func (c *CookieCarrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c *CookieCarrier) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	}
}
