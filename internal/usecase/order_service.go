package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"milanfood-backend/internal/domain"
)

// OrderSink durably records orders: checkout orders through Submit and
// storefront payloads, untouched, through Append.
type OrderSink interface {
	Submit(ctx context.Context, o *domain.Order) error
	Append(ctx context.Context, id string, payload json.RawMessage) error
}

// OrderReader is implemented by sinks that can read back what they stored.
type OrderReader interface {
	Get(ctx context.Context, id string) (*domain.Order, bool, error)
}

// OrderService sits between checkout and the configured sink.
type OrderService struct {
	Sink   OrderSink
	Logger *zap.Logger
	Now    func() time.Time
}

func (s *OrderService) Submit(ctx context.Context, o *domain.Order) error {
	start := s.now()
	err := s.Sink.Submit(ctx, o)
	log := s.logger().With(
		zap.String("order_id", o.OrderID),
		zap.String("session_id", o.SessionID),
		zap.Int64("total", o.Totals.Total),
		zap.Duration("took", s.now().Sub(start)),
	)
	if err != nil {
		log.Error("order submit failed", zap.Error(err))
		return err
	}
	log.Info("order submitted", zap.Int("items", len(o.Items)), zap.String("payment", string(o.PaymentMethod)))
	return nil
}

// Intake records a payload posted directly by a storefront client. The JSON
// is kept as received, compacted onto one line, and keyed by a fresh id.
func (s *OrderService) Intake(ctx context.Context, payload []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return "", fmt.Errorf("intake payload: %w", err)
	}
	id := uuid.NewString()
	start := s.now()
	err := s.Sink.Append(ctx, id, json.RawMessage(buf.Bytes()))
	log := s.logger().With(
		zap.String("intake_id", id),
		zap.Int("bytes", buf.Len()),
		zap.Duration("took", s.now().Sub(start)),
	)
	if err != nil {
		log.Error("order intake failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", domain.ErrOrderSubmissionFailed, err)
	}
	log.Info("order received")
	return id, nil
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
