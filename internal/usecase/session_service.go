package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"milanfood-backend/internal/catalog"
	"milanfood-backend/internal/checkout"
	"milanfood-backend/internal/domain"
	"milanfood-backend/internal/session"
)

type SessionRepo interface {
	Put(*session.Session)
	Get(id string) (*session.Session, bool)
	Sweep(now time.Time, ttl time.Duration) int
}

type SessionService struct {
	Repo          SessionRepo
	Catalog       *catalog.Catalog
	Orders        checkout.Submitter
	Reader        OrderReader
	Tokens        *TokenService
	Validator     *checkout.CustomerValidator
	StepInterval  time.Duration
	SubmitTimeout time.Duration
	TTL           time.Duration
	Logger        *zap.Logger
	Now           func() time.Time
}

// Create starts a new browsing session and returns its bearer token.
func (s *SessionService) Create() (*session.Session, string, error) {
	id := uuid.NewString()
	opts := []session.Option{session.WithClock(s.now)}
	if s.StepInterval > 0 {
		opts = append(opts, session.WithStepInterval(s.StepInterval))
	}
	if s.Validator != nil {
		opts = append(opts, session.WithValidator(s.Validator))
	}
	sess := session.New(id, s.Catalog, s.Orders, opts...)
	token, err := s.Tokens.Issue(id)
	if err != nil {
		return nil, "", err
	}
	s.Repo.Put(sess)
	s.logger().Debug("session created", zap.String("session_id", id))
	return sess, token, nil
}

// Resolve maps a bearer token to its live session.
func (s *SessionService) Resolve(token string) (*session.Session, error) {
	sid, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	sess, ok := s.Repo.Get(sid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sid)
	}
	return sess, nil
}

// Refresh issues a new token for a live session so its expiry slides along
// with the session's idle TTL.
func (s *SessionService) Refresh(sess *session.Session) (string, error) {
	return s.Tokens.Issue(sess.ID)
}

// Order returns the session's submitted order, read back from the sink when
// it supports reads and the record is there.
func (s *SessionService) Order(ctx context.Context, sess *session.Session) (*domain.Order, error) {
	o := sess.View().Order
	if o == nil {
		return nil, fmt.Errorf("%w: no order submitted", domain.ErrInvalidTransition)
	}
	if s.Reader == nil {
		return o, nil
	}
	stored, ok, err := s.Reader.Get(ctx, o.OrderID)
	if err != nil {
		return nil, fmt.Errorf("read order %s: %w", o.OrderID, err)
	}
	if !ok {
		s.logger().Warn("submitted order missing from sink", zap.String("order_id", o.OrderID))
		return o, nil
	}
	return stored, nil
}

// Pay submits the session's order with a bounded wait on the sink.
func (s *SessionService) Pay(ctx context.Context, sess *session.Session, method string) (*domain.Order, error) {
	if s.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SubmitTimeout)
		defer cancel()
	}
	return sess.Pay(ctx, method)
}

func (s *SessionService) Sweep() int {
	n := s.Repo.Sweep(s.now(), s.TTL)
	if n > 0 {
		s.logger().Info("sessions swept", zap.Int("count", n))
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
