package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

const requestTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client with its own cookie jar, so a cookie set by
// signup or login is replayed on later calls.
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: requestTimeout},
	}, nil
}

type authBody struct {
	Msg  string `json:"msg"`
	User User   `json:"user"`
}

type meBody struct {
	User User `json:"user"`
}

type msgBody struct {
	Msg string `json:"msg"`
}

func (c *HTTPClient) Signup(ctx context.Context, username string, password []byte) (*AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/signup", username, password)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, path, username string, password []byte) (*AuthResult, error) {
	body, err := credentialsJSON(username, password)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(body)

	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var ab authBody
	if err := json.NewDecoder(resp.Body).Decode(&ab); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &AuthResult{Msg: ab.Msg, User: ab.User, Token: bearerToken(resp.Header)}, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var mb meBody
	if err := json.NewDecoder(resp.Body).Decode(&mb); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &mb.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var mb msgBody
	_ = json.NewDecoder(resp.Body).Decode(&mb)
	return &APIError{Status: resp.StatusCode, Msg: mb.Msg}
}

// credentialsJSON encodes {"username","password"} into a single buffer sized
// up front, so the password exists in exactly one place the caller can wipe.
// encoding/json would leave copies in its pooled buffers.
func credentialsJSON(username string, password []byte) ([]byte, error) {
	name, err := json.Marshal(username)
	if err != nil {
		return nil, err
	}

	// worst case every password byte becomes \u00XX
	body := make([]byte, 0, len(name)+6*len(password)+32)
	body = append(body, `{"username":`...)
	body = append(body, name...)
	body = append(body, `,"password":"`...)
	for _, b := range password {
		switch {
		case b == '"' || b == '\\':
			body = append(body, '\\', b)
		case b < 0x20:
			body = append(body, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf])
		default:
			body = append(body, b)
		}
	}
	body = append(body, `"}`...)
	return body, nil
}

const hexDigits = "0123456789abcdef"

func bearerToken(h http.Header) string {
	scheme, token, ok := strings.Cut(h.Get(common.AuthorizationHeaderName), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
