package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/internal/application"
	"github.com/grandstay/service-hotel/pkg/auth"
	"github.com/grandstay/service-hotel/pkg/middleware"
	"github.com/grandstay/service-hotel/pkg/response"
)

// RoomHandler handles HTTP requests for the catalog, availability, and per-room actions.
type RoomHandler struct {
	catalog      *application.CatalogService
	availability *application.AvailabilityService
	bookings     *application.BookingService
	reviews      *application.ReviewService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(
	catalog *application.CatalogService,
	availability *application.AvailabilityService,
	bookings *application.BookingService,
	reviews *application.ReviewService,
) *RoomHandler {
	return &RoomHandler{catalog: catalog, availability: availability, bookings: bookings, reviews: reviews}
}

// RegisterRoutes registers room routes on the given router group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	guestRole := middleware.RequireRole(auth.RoleGuest)

	r.GET("/room-types", h.ListRoomTypes)

	rooms := r.Group("/rooms")
	{
		rooms.GET("", h.SearchRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.POST("/:id/bookings", authMW, guestRole, h.CreateBooking)
		rooms.POST("/:id/reviews", authMW, guestRole, h.AddReview)
	}
}

// ListRoomTypes handles GET /api/v1/room-types
func (h *RoomHandler) ListRoomTypes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.BadRequest(c, "limit must be a non-negative integer")
		return
	}

	types, err := h.catalog.ListActiveRoomTypes(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, types)
}

// SearchRooms handles GET /api/v1/rooms
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	var req application.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rooms, err := h.availability.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, rooms)
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	detail, err := h.catalog.RoomDetail(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// CreateBooking handles POST /api/v1/rooms/:id/bookings
func (h *RoomHandler) CreateBooking(c *gin.Context) {
	guestID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.bookings.CreateBooking(c.Request.Context(), guestID, roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// AddReview handles POST /api/v1/rooms/:id/reviews
func (h *RoomHandler) AddReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	var req application.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.reviews.AddReview(c.Request.Context(), userID, roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}
