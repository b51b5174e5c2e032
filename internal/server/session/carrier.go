// Package session moves tokens between the server and clients. Exactly one
// Carrier is active per deployment.
package session

import (
	"fmt"
	"net/http"
	"time"
)

// Transport names accepted by NewCarrier.
const (
	TransportCookie = "cookie"
	TransportHeader = "header"
)

// Carrier binds a token to the request/response cycle.
//
// Extract returns common.ErrNoToken when the request carries nothing and
// common.ErrMalformedCarrier when it carries something unusable.
type Carrier interface {
	Attach(w http.ResponseWriter, token string)
	Extract(r *http.Request) (string, error)
	Clear(w http.ResponseWriter)
}

type Options struct {
	Transport  string
	CookieName string
	Production bool
	MaxAge     time.Duration
}

func NewCarrier(opts Options) (Carrier, error) {
	switch opts.Transport {
	case TransportCookie, "":
		return NewCookieCarrier(opts.CookieName, opts.MaxAge, opts.Production), nil
	case TransportHeader:
		return &HeaderCarrier{}, nil
	default:
		return nil, fmt.Errorf("unknown session transport %q", opts.Transport)
	}
}
