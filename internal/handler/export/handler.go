package export

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smileworks/dentaldesk/internal/handler"
	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/service/export"
)

type Handler struct {
	service *export.Service
}

func NewHandler(service *export.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/patients/:name/export", h.ExportPatient)
}

// ExportPatient renders the patient's history to the destination chosen in
// the shell's save dialog. The three outcomes render differently: no data is
// an informational 200, a cancelled dialog is a silent 204, success carries
// the written path.
func (h *Handler) ExportPatient(c *gin.Context) {
	var req model.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.ExportPatient(c.Request.Context(), c.Param("name"), req.Destination)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	switch result.Status {
	case model.ExportStatusCancelled:
		c.Status(http.StatusNoContent)
	case model.ExportStatusNoData:
		c.JSON(http.StatusOK, &handler.Response{
			Status:  "success",
			Message: "no visit history to export",
			Data:    result,
		})
	default:
		c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
	}
}
