package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smileworks/dentaldesk/internal/model"
)

const HeaderXDeviceID = "X-Device-ID"

type ApprovalChecker interface {
	IsApproved(ctx context.Context, deviceID string) (bool, error)
}

// ActivationGate keeps unapproved devices out of every repository route.
// Only the activation endpoints themselves stay open so a device can ask to
// be let in.
func ActivationGate(checker ApprovalChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(HeaderXDeviceID)
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "device identifier required",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}

		approved, err := checker.IsApproved(c.Request.Context(), deviceID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, model.ErrStoreUnavailable) {
				status = http.StatusServiceUnavailable
			}
			c.AbortWithStatusJSON(status, ErrorResponse{
				Code:    status,
				Message: err.Error(),
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		if !approved {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "device not activated",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}

		c.Next()
	}
}
