package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/service/booking"
	"github.com/kabz8/Nextcare/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/time-slots", h.GetAvailableSlots)

	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
	}
}

// GetAvailableSlots handles GET /time-slots?date=YYYY-MM-DD.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httputil.RespondBadRequest(c, "date parameter is required")
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondBindError(c, err)
		return
	}

	apt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := httputil.ParamID(c, "id", "appointment")
	if !ok {
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
