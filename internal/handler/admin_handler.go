package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/internal/application"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/pkg/auth"
	"github.com/grandstay/service-hotel/pkg/middleware"
	"github.com/grandstay/service-hotel/pkg/response"
)

// AdminHandler handles staff HTTP requests.
type AdminHandler struct {
	dashboard *application.DashboardService
	bookings  *application.BookingService
	catalog   *application.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	dashboard *application.DashboardService,
	bookings *application.BookingService,
	catalog *application.CatalogService,
) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, bookings: bookings, catalog: catalog}
}

// RegisterRoutes registers staff routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	staffRole := middleware.RequireRole(auth.RoleStaff)

	admin := r.Group("/admin")
	admin.Use(authMW, staffRole)
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.POST("/bookings/:id/complete", h.CompleteBooking)
		admin.POST("/bookings/:id/cancel", h.CancelBooking)
		admin.POST("/room-types", h.CreateRoomType)
		admin.POST("/rooms", h.CreateRoom)
	}
}

// Dashboard handles GET /api/v1/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// CompleteBooking handles POST /api/v1/admin/bookings/:id/complete.
func (h *AdminHandler) CompleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.bookings.Complete(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// CancelBooking handles POST /api/v1/admin/bookings/:id/cancel.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.bookings.StaffCancel(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// CreateRoomType handles POST /api/v1/admin/room-types.
func (h *AdminHandler) CreateRoomType(c *gin.Context) {
	var input catalog.NewRoomTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.catalog.CreateRoomType(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// CreateRoom handles POST /api/v1/admin/rooms.
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	var input catalog.NewRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.catalog.CreateRoom(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}
