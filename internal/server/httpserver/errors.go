package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/quizauth/internal/common"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
)

var (
	errMalformedBody = common.Reject(common.ErrMalformed, MsgBadBody)
	errUnauthorized  = common.Reject(common.ErrUnauthorized, MsgUnauthorized)
)

type failure struct {
	status  int
	outcome string
	msg     string
}

// classify maps an error to its response. Anything unrecognised is a
// server error whose detail stays in the log.
func classify(err error) failure {
	switch {
	case errors.Is(err, common.ErrValidation):
		return failure{http.StatusBadRequest, metrics.OutcomeValidationRejected, common.UserMessage(err, "Invalid input.")}
	case errors.Is(err, common.ErrMalformed):
		return failure{http.StatusBadRequest, metrics.OutcomeMalformedRejected, common.UserMessage(err, MsgBadBody)}
	case errors.Is(err, common.ErrDuplicate):
		return failure{http.StatusConflict, metrics.OutcomeDuplicateRejected, common.UserMessage(err, "Username already exists!")}
	case errors.Is(err, common.ErrInvalidCredentials):
		return failure{http.StatusUnauthorized, metrics.OutcomeInvalidCredentials, common.UserMessage(err, "Invalid credentials")}
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrNoToken),
		errors.Is(err, common.ErrMalformedCarrier):
		return failure{http.StatusUnauthorized, metrics.OutcomeUnauthorized, MsgUnauthorized}
	default:
		return failure{http.StatusInternalServerError, metrics.OutcomeServerError, MsgServerError}
	}
}

func (h *Handler) reject(c *gin.Context, op string, err error) {
	f := classify(err)

	if f.status == http.StatusInternalServerError {
		args := []any{"op", op, "error", err.Error()}
		if oe, ok := oops.AsOops(err); ok {
			args = append(args, "code", oe.Code())
		}
		loggerFrom(c, h.logger).Error(c.Request.Context(), "request failed", args...)
	}

	h.metrics.RecordOutcome(op, f.outcome)
	c.AbortWithStatusJSON(f.status, messageResponse{Msg: f.msg})
}
