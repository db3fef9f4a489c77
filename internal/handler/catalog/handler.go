package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/service/catalog"
	"github.com/kabz8/Nextcare/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
	}

	testimonials := r.Group("/testimonials")
	{
		testimonials.GET("", h.ListTestimonials)
		testimonials.POST("", h.CreateTestimonial)
	}
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := httputil.ParamID(c, "id", "service")
	if !ok {
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.service.ListTestimonials(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (h *Handler) CreateTestimonial(c *gin.Context) {
	var req model.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondBindError(c, err)
		return
	}

	t, err := h.service.CreateTestimonial(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
