package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizauth/internal/common"
	"github.com/dmitrijs2005/quizauth/internal/logging"
	"github.com/dmitrijs2005/quizauth/internal/server/auth"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
	"github.com/dmitrijs2005/quizauth/internal/server/ratelimit"
)

const (
	identityKey = "identity"
	loggerKey   = "logger"

	requestIDHeader = "X-Request-ID"
)

// IdentityFrom returns the identity stored by RequireIdentity.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func loggerFrom(c *gin.Context, fallback logging.Logger) logging.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logging.Logger); ok {
			return l
		}
	}
	return fallback
}

// RequireIdentity resolves the session carrier into an identity before the
// protected handler runs. Any failure ends the request with 401.
func (h *Handler) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := h.carrier.Extract(c.Request)
		if err != nil {
			h.reject(c, metrics.OpIdentity, err)
			return
		}

		id, err := h.auth.Authenticate(token)
		if err != nil {
			h.reject(c, metrics.OpIdentity, err)
			return
		}

		c.Set(identityKey, *id)
		c.Next()
	}
}

// RateLimit applies l per client address. Limiter failures let the request
// through.
func RateLimit(l ratelimit.Limiter, logger logging.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			loggerFrom(c, logger).Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		reset := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
		if reset < 0 {
			reset = 0
		}
		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(reset))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(reset))
			m.RecordOutcome(metrics.OpThrottle, metrics.OutcomeRateLimited)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, messageResponse{Msg: MsgTooManyRequests})
			return
		}

		c.Next()
	}
}

// RequestLogger tags each request with an id and logs it once it completes.
// Bodies are never logged.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			var err error
			if reqID, err = common.MakeRandHexString(8); err != nil {
				reqID = "unknown"
			}
		}
		c.Header(requestIDHeader, reqID)

		l := logger.With("request_id", reqID)
		c.Set(loggerKey, l)

		c.Next()

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}
