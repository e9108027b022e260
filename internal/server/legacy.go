package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"milanfood-backend/internal/infrastructure/asset"
)

// handleOrderIntake records whatever JSON the storefront page posts and
// answers in plain text.
func (s *Server) handleOrderIntake(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxOrderBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.String(http.StatusRequestEntityTooLarge, "Pedido demasiado grande")
			return
		}
		c.String(http.StatusBadRequest, "JSON inválido")
		return
	}
	if !json.Valid(body) {
		c.String(http.StatusBadRequest, "JSON inválido")
		return
	}
	if _, err := s.orders.Intake(c.Request.Context(), body); err != nil {
		s.log.Error("order intake failed", zap.Error(err), zap.String("request_id", c.GetString(ctxRequestID)))
		c.String(http.StatusInternalServerError, "Error al procesar el pedido")
		return
	}
	c.String(http.StatusOK, "Pedido recibido")
}

// handleStatic serves storefront files for any GET not matched by a route.
func (s *Server) handleStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	data, ct, err := s.assets.Read(c.Request.URL.Path)
	switch {
	case errors.Is(err, asset.ErrForbidden):
		c.String(http.StatusForbidden, "Forbidden")
	case errors.Is(err, asset.ErrNotFound):
		c.String(http.StatusNotFound, "Not found")
	case err != nil:
		s.log.Error("static read failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.String(http.StatusNotFound, "Not found")
	default:
		c.Data(http.StatusOK, ct, data)
	}
}
