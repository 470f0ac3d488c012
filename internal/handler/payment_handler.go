package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/internal/application"
	"github.com/grandstay/service-hotel/pkg/auth"
	"github.com/grandstay/service-hotel/pkg/middleware"
	"github.com/grandstay/service-hotel/pkg/response"
)

// PaymentHandler handles HTTP requests for booking payments.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment routes on the given router group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.POST("/bookings/:id/payment",
		middleware.AuthMiddleware(jwtManager),
		middleware.RequireRole(auth.RoleGuest),
		h.Pay,
	)
}

// Pay handles POST /api/v1/bookings/:id/payment
func (h *PaymentHandler) Pay(c *gin.Context) {
	guestID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Pay(c.Request.Context(), bookingID, guestID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}
