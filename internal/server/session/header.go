package session

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

// HeaderCarrier expects "Authorization: Bearer <token>" on requests. The
// client stores the token itself, so Clear has nothing to do server-side.
type HeaderCarrier struct{}

func (HeaderCarrier) Attach(w http.ResponseWriter, token string) {
	w.Header().Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
}

func (HeaderCarrier) Extract(r *http.Request) (string, error) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if h == "" {
		return "", common.ErrNoToken
	}

	scheme, token, ok := strings.Cut(h, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
		return "", common.ErrMalformedCarrier
	}
	return token, nil
}

func (HeaderCarrier) Clear(w http.ResponseWriter) {}
