package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smileworks/dentaldesk/internal/handler"
	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/service/patient"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:name", h.GetPatient)
		patients.DELETE("/:name", h.DeletePatient)
		patients.POST("/:name/visits", h.AddVisit)
	}
}

// ListPatients returns all patient names, optionally narrowed by the q
// parameter with a case-insensitive substring match.
func (h *Handler) ListPatients(c *gin.Context) {
	names, err := h.service.ListNames(c.Request.Context())
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	if q := c.Query("q"); q != "" {
		names = patient.FilterNames(names, q)
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(names))
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), req.Name); err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"name": req.Name}))
}

func (h *Handler) GetPatient(c *gin.Context) {
	record, err := h.service.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) AddVisit(c *gin.Context) {
	var req model.AddVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	visit, err := h.service.AddVisit(c.Request.Context(), c.Param("name"), &req)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(visit))
}

// DeletePatient removes the whole record, visits included. Confirmation is
// the interface's job; this endpoint deletes unconditionally.
func (h *Handler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		c.JSON(handler.StatusFor(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
