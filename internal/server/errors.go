package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"milanfood-backend/internal/domain"
	"milanfood-backend/internal/usecase"
)

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
	Field     string `json:"field,omitempty"`
}

func classify(err error) (int, string) {
	var verr *domain.ValidationError
	var unauth usecase.ErrUnauthorized
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "ValidationFailed"
	case errors.As(err, &unauth):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrInvalidOption):
		return http.StatusBadRequest, "InvalidOption"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "InvalidQuantity"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound, "IndexOutOfRange"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SessionNotFound"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "ProductNotFound"
	case errors.Is(err, domain.ErrIncompleteSelection):
		return http.StatusConflict, "IncompleteSelection"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "InvalidTransition"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict, "EmptyCart"
	case errors.Is(err, domain.ErrNoSelection):
		return http.StatusConflict, "NoSelection"
	case errors.Is(err, domain.ErrOrderSubmissionFailed):
		return http.StatusBadGateway, "OrderSubmissionFailed"
	default:
		return http.StatusInternalServerError, "ServerError"
	}
}

// writeError is the single place domain errors become HTTP responses.
func (s *Server) writeError(c *gin.Context, err error) {
	status, code := classify(err)
	body := apiError{Code: code, Message: err.Error(), RequestID: c.GetString(ctxRequestID)}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
		body.Message = verr.Message
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("code", code), zap.Error(err), zap.String("request_id", body.RequestID))
		if status == http.StatusInternalServerError {
			body.Message = "internal error"
		}
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": body})
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": apiError{
		Code:      "BadRequest",
		Message:   msg,
		RequestID: c.GetString(ctxRequestID),
	}})
}
