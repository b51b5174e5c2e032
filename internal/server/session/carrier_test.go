package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

func TestNewCarrier(t *testing.T) {
	c, err := NewCarrier(Options{Transport: TransportCookie})
	require.NoError(t, err)
	assert.IsType(t, &CookieCarrier{}, c)

	c, err = NewCarrier(Options{})
	require.NoError(t, err)
	assert.IsType(t, &CookieCarrier{}, c, "cookie is the default")

	c, err = NewCarrier(Options{Transport: TransportHeader})
	require.NoError(t, err)
	assert.IsType(t, &HeaderCarrier{}, c)

	_, err = NewCarrier(Options{Transport: "both"})
	require.Error(t, err)
}

func singleCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestCookieCarrier_AttachProduction(t *testing.T) {
	c := NewCookieCarrier("", 24*time.Hour, true)
	rec := httptest.NewRecorder()

	c.Attach(rec, "tok")

	ck := singleCookie(t, rec)
	assert.Equal(t, "token", ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 86400, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
}

func TestCookieCarrier_AttachDevelopment(t *testing.T) {
	c := NewCookieCarrier("sid", time.Hour, false)
	rec := httptest.NewRecorder()

	c.Attach(rec, "tok")

	ck := singleCookie(t, rec)
	assert.Equal(t, "sid", ck.Name)
	assert.Equal(t, 3600, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
}

func TestCookieCarrier_ClearMatchesAttributes(t *testing.T) {
	c := NewCookieCarrier("", 0, true)

	set := httptest.NewRecorder()
	c.Attach(set, "tok")
	clr := httptest.NewRecorder()
	c.Clear(clr)

	a, b := singleCookie(t, set), singleCookie(t, clr)
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Secure, b.Secure)
	assert.Equal(t, a.SameSite, b.SameSite)
	assert.Equal(t, a.HttpOnly, b.HttpOnly)
	assert.Empty(t, b.Value)
	assert.Less(t, b.MaxAge, 0)
}

func TestCookieCarrier_Extract(t *testing.T) {
	c := NewCookieCarrier("", 0, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := c.Extract(r)
	assert.ErrorIs(t, err, common.ErrNoToken)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: ""})
	_, err = c.Extract(r)
	assert.ErrorIs(t, err, common.ErrNoToken)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "abc.def.ghi"})
	tok, err := c.Extract(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)
}

func TestCookieCarrier_IgnoresAuthorizationHeader(t *testing.T) {
	c := NewCookieCarrier("", 0, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")

	_, err := c.Extract(r)
	assert.ErrorIs(t, err, common.ErrNoToken)
}

func TestHeaderCarrier_Extract(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "absent", header: "", wantErr: common.ErrNoToken},
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme case insensitive", header: "bearer abc", want: "abc"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: common.ErrMalformedCarrier},
		{name: "no token", header: "Bearer", wantErr: common.ErrMalformedCarrier},
		{name: "blank token", header: "Bearer   ", wantErr: common.ErrMalformedCarrier},
		{name: "raw token", header: "abc.def.ghi", wantErr: common.ErrMalformedCarrier},
	}

	var c HeaderCarrier
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := c.Extract(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderCarrier_IgnoresCookie(t *testing.T) {
	var c HeaderCarrier
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})

	_, err := c.Extract(r)
	assert.ErrorIs(t, err, common.ErrNoToken)
}

func TestHeaderCarrier_AttachAndClear(t *testing.T) {
	var c HeaderCarrier

	rec := httptest.NewRecorder()
	c.Attach(rec, "tok")
	assert.Equal(t, "Bearer tok", rec.Header().Get("Authorization"))

	rec = httptest.NewRecorder()
	c.Clear(rec)
	assert.Empty(t, rec.Header())
}
