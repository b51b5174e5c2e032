package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/quizauth/internal/logging"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
	"github.com/dmitrijs2005/quizauth/internal/server/ratelimit"
)

// NewRouter mounts the auth API, liveness probe and metrics endpoint. Signup
// and login share one limiter so attempts on either count together.
//
// Forwarding headers are honoured only from trustedProxies; with none, the
// client address is the connection's remote address.
func NewRouter(h *Handler, limiter ratelimit.Limiter, logger logging.Logger, m *metrics.Metrics, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	throttle := RateLimit(limiter, logger, m)

	api := r.Group("/api/auth")
	api.POST("/signup", throttle, h.Signup)
	api.POST("/login", throttle, h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/me", h.RequireIdentity(), h.Me)

	return r, nil
}
