package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"milanfood-backend/internal/session"
	"milanfood-backend/internal/usecase"
)

const (
	ctxRequestID = "requestId"
	ctxSession   = "session"

	headerSessionToken = "X-Session-Token"
)

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", c.GetString(ctxRequestID)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			s.log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			s.log.Warn("request", fields...)
		default:
			s.log.Info("request", fields...)
		}
	}
}

// requireSession resolves the bearer token to a live session and hands back
// a renewed token in X-Session-Token.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			s.writeError(c, usecase.ErrUnauthorized("bearer token required"))
			c.Abort()
			return
		}
		sess, err := s.sessions.Resolve(strings.TrimSpace(token))
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}
		if fresh, err := s.sessions.Refresh(sess); err == nil {
			c.Header(headerSessionToken, fresh)
		} else {
			s.log.Warn("token refresh failed", zap.Error(err), zap.String("session_id", sess.ID))
		}
		c.Set(ctxSession, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(ctxSession).(*session.Session)
}
