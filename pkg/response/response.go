// Package response writes the JSON envelope shared by all HTTP handlers.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grandstay/service-hotel/pkg/domain"
)

// Envelope is the top-level shape of every response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes 400 for malformed input.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, string(domain.CodeValidation), message)
}

// Unauthorized writes 401 for missing or invalid credentials.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, "UNAUTHENTICATED", message)
}

// Forbidden writes 403.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, string(domain.CodeUnauthorized), message)
}

// Error maps err to a status code. Errors that are not DomainErrors become 500 without leaking details.
func Error(c *gin.Context, err error) {
	domErr, ok := domain.AsDomainError(err)
	if !ok {
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	c.AbortWithStatusJSON(StatusFor(domErr), Envelope{
		Success: false,
		Error:   &ErrorBody{Code: string(domErr.Code), Kind: kindOf(domErr), Message: domErr.Error()},
	})
}

// kindOf names the sentinel behind err, e.g. "room_unavailable".
func kindOf(err *domain.DomainError) string {
	if err.Err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Err.Error(), " ", "_")
}

// StatusFor returns the HTTP status for a DomainError.
func StatusFor(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnauthorized:
		return http.StatusForbidden
	case domain.CodeConflict, domain.CodeInvalidState:
		return http.StatusConflict
	}
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}
