package activation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smileworks/dentaldesk/internal/handler"
	"github.com/smileworks/dentaldesk/internal/middleware"
	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/service/activation"
)

type Handler struct {
	service *activation.Service
}

func NewHandler(service *activation.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the activation endpoints. These stay outside the
// activation gate so an unapproved device can still request approval.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	act := r.Group("/activation")
	{
		act.POST("/requests", h.RecordRequest)
		act.GET("/status", h.GetStatus)
	}
}

func (h *Handler) RecordRequest(c *gin.Context) {
	var req model.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.RecordRequest(c.Request.Context(), req.Email, req.DeviceID); err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(gin.H{"device_id": req.DeviceID}))
}

func (h *Handler) GetStatus(c *gin.Context) {
	deviceID := c.GetHeader(middleware.HeaderXDeviceID)
	if deviceID == "" {
		deviceID = c.Query("device_id")
	}
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("device identifier required"))
		return
	}

	approved, err := h.service.IsApproved(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.ActivationStatus{
		DeviceID: deviceID,
		Approved: approved,
	}))
}
