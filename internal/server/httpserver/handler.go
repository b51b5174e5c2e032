// Package httpserver exposes the auth REST API over gin.
package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizauth/internal/logging"
	"github.com/dmitrijs2005/quizauth/internal/server/auth"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
	"github.com/dmitrijs2005/quizauth/internal/server/services"
	"github.com/dmitrijs2005/quizauth/internal/server/session"
)

// Response messages.
const (
	MsgSignupOK        = "Signup successful"
	MsgLoginOK         = "Login successful"
	MsgLoggedOut       = "Logged out"
	MsgUnauthorized    = "Unauthorized"
	MsgServerError     = "Server error"
	MsgBadBody         = "Invalid request body."
	MsgTooManyRequests = "Too many requests from this IP. Please try again after 15 minutes."
)

type authService interface {
	Signup(ctx context.Context, username, password string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Authenticate(token string) (*auth.Identity, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

type authResponse struct {
	Msg  string       `json:"msg"`
	User userResponse `json:"user"`
}

type identityResponse struct {
	User auth.Identity `json:"user"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// Handler serves /api/auth.
type Handler struct {
	auth    authService
	carrier session.Carrier
	logger  logging.Logger
	metrics *metrics.Metrics
}

func NewHandler(a authService, c session.Carrier, l logging.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		auth:    a,
		carrier: c,
		logger:  l.With("module", "http_handler"),
		metrics: m,
	}
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, metrics.OpSignup, errMalformedBody)
		return
	}

	sess, err := h.auth.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.reject(c, metrics.OpSignup, err)
		return
	}

	h.carrier.Attach(c.Writer, sess.Token)
	h.metrics.RecordOutcome(metrics.OpSignup, metrics.OutcomeCreated)
	loggerFrom(c, h.logger).Info(c.Request.Context(), "user signed up", "user_id", sess.Identity.ID)

	c.JSON(http.StatusOK, authResponse{
		Msg:  MsgSignupOK,
		User: userResponse{Username: sess.Identity.Username, ID: sess.Identity.ID},
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, metrics.OpLogin, errMalformedBody)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.reject(c, metrics.OpLogin, err)
		return
	}

	h.carrier.Attach(c.Writer, sess.Token)
	h.metrics.RecordOutcome(metrics.OpLogin, metrics.OutcomeAuthenticated)

	c.JSON(http.StatusOK, authResponse{
		Msg:  MsgLoginOK,
		User: userResponse{Username: sess.Identity.Username, ID: sess.Identity.ID},
	})
}

// Logout handles POST /api/auth/logout. It needs no session and can be
// repeated.
func (h *Handler) Logout(c *gin.Context) {
	h.carrier.Clear(c.Writer)
	h.metrics.RecordOutcome(metrics.OpLogout, metrics.OutcomeLoggedOut)
	c.JSON(http.StatusOK, messageResponse{Msg: MsgLoggedOut})
}

// Me handles GET /api/auth/me behind RequireIdentity.
func (h *Handler) Me(c *gin.Context) {
	id, ok := IdentityFrom(c)
	if !ok {
		h.reject(c, metrics.OpMe, errUnauthorized)
		return
	}

	h.metrics.RecordOutcome(metrics.OpMe, metrics.OutcomeConfirmed)
	c.JSON(http.StatusOK, identityResponse{User: id})
}
