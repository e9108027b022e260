package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"milanfood-backend/internal/cart"
	"milanfood-backend/internal/catalog"
	"milanfood-backend/internal/checkout"
	"milanfood-backend/internal/domain"
	"milanfood-backend/internal/selection"
)

type Option func(*options)

type options struct {
	now      func() time.Time
	interval time.Duration
	valid    *checkout.CustomerValidator
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithStepInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithValidator shares one validator across sessions.
func WithValidator(v *checkout.CustomerValidator) Option {
	return func(o *options) { o.valid = v }
}

// Session owns one shopper's cart, open selection and checkout flow. All
// methods lock the session, so concurrent requests run one after another.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	now      func() time.Time
	lastSeen time.Time
	catalog  *catalog.Catalog
	cart     *cart.Store
	sel      *selection.Selection
	flow     *checkout.Flow
}

type CartView struct {
	Items         []domain.LineItem `json:"items"`
	UnitCount     int               `json:"unitCount"`
	Totals        domain.Totals     `json:"totals"`
	Coupon        string            `json:"coupon,omitempty"`
	CouponApplied bool              `json:"couponApplied"`
}

type View struct {
	ID        string                 `json:"sessionId"`
	State     checkout.State         `json:"state"`
	Cart      CartView               `json:"cart"`
	Customer  domain.Customer        `json:"customer"`
	Selection *selection.View        `json:"selection"`
	Progress  *checkout.ProgressView `json:"progress"`
	Order     *domain.Order          `json:"order"`
}

func New(id string, cat *catalog.Catalog, sub checkout.Submitter, opts ...Option) *Session {
	o := options{now: time.Now, interval: checkout.DefaultStepInterval}
	for _, fn := range opts {
		fn(&o)
	}
	c := cart.New()
	flowOpts := []checkout.Option{
		checkout.WithClock(o.now),
		checkout.WithStepInterval(o.interval),
		checkout.WithSessionID(id),
	}
	if o.valid != nil {
		flowOpts = append(flowOpts, checkout.WithValidator(o.valid))
	}
	now := o.now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		now:       o.now,
		lastSeen:  now,
		catalog:   cat,
		cart:      c,
		flow:      checkout.New(c, sub, flowOpts...),
	}
}

func (s *Session) lock() func() {
	s.mu.Lock()
	s.lastSeen = s.now()
	return s.mu.Unlock
}

func (s *Session) View() View {
	defer s.lock()()
	return s.view()
}

func (s *Session) view() View {
	v := View{
		ID:       s.ID,
		State:    s.flow.State(),
		Cart:     s.cartView(),
		Customer: s.flow.Customer(),
		Order:    s.flow.Order(),
	}
	if s.sel != nil {
		sv := s.sel.View()
		v.Selection = &sv
	}
	if pv, ok := s.flow.Progress(); ok {
		v.Progress = &pv
	}
	return v
}

func (s *Session) Cart() CartView {
	defer s.lock()()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	return CartView{
		Items:         s.cart.Items(),
		UnitCount:     s.cart.UnitCount(),
		Totals:        s.flow.Totals(),
		Coupon:        s.flow.Coupon(),
		CouponApplied: s.flow.CouponApplied(),
	}
}

// OpenProduct starts a selection, replacing any open one.
func (s *Session) OpenProduct(productID int) (selection.View, error) {
	defer s.lock()()
	if err := s.flow.CheckSelection(); err != nil {
		return selection.View{}, err
	}
	p, ok := s.catalog.Product(productID)
	if !ok {
		return selection.View{}, fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
	}
	s.sel = selection.Start(p)
	return s.sel.View(), nil
}

func (s *Session) SetChoice(label string) (selection.View, error) {
	return s.editSelection(func(sel *selection.Selection) error { return sel.SetRequiredChoice(label) })
}

func (s *Session) ToggleExtra(label string) (selection.View, error) {
	return s.editSelection(func(sel *selection.Selection) error { return sel.ToggleExtra(label) })
}

func (s *Session) SetQuantity(n int) (selection.View, error) {
	return s.editSelection(func(sel *selection.Selection) error { return sel.SetQuantity(n) })
}

func (s *Session) SetNote(note string) (selection.View, error) {
	return s.editSelection(func(sel *selection.Selection) error {
		sel.SetNote(note)
		return nil
	})
}

func (s *Session) editSelection(fn func(*selection.Selection) error) (selection.View, error) {
	defer s.lock()()
	if s.sel == nil {
		return selection.View{}, domain.ErrNoSelection
	}
	if err := fn(s.sel); err != nil {
		return selection.View{}, err
	}
	return s.sel.View(), nil
}

// CommitSelection moves the open selection into the cart and closes it.
func (s *Session) CommitSelection() (CartView, error) {
	defer s.lock()()
	if s.sel == nil {
		return CartView{}, domain.ErrNoSelection
	}
	if err := s.flow.CheckSelection(); err != nil {
		return CartView{}, err
	}
	item, err := s.sel.Commit()
	if err != nil {
		return CartView{}, err
	}
	if err := s.cart.Add(item); err != nil {
		return CartView{}, err
	}
	s.sel = nil
	s.flow.CartChanged()
	return s.cartView(), nil
}

// CancelSelection closes the open selection, if any.
func (s *Session) CancelSelection() {
	defer s.lock()()
	s.sel = nil
}

func (s *Session) Increment(index int) (CartView, error) {
	return s.editCart(func() error { return s.cart.Increment(index) })
}

func (s *Session) Decrement(index int) (CartView, error) {
	return s.editCart(func() error { return s.cart.Decrement(index) })
}

func (s *Session) Remove(index int) (CartView, error) {
	return s.editCart(func() error { return s.cart.Remove(index) })
}

func (s *Session) editCart(fn func() error) (CartView, error) {
	defer s.lock()()
	if err := s.flow.CheckCartEdit(); err != nil {
		return CartView{}, err
	}
	if err := fn(); err != nil {
		return CartView{}, err
	}
	s.flow.CartChanged()
	return s.cartView(), nil
}

// OpenCart closes any open selection when the cart review opens.
func (s *Session) OpenCart() (View, error) {
	return s.step(func() error {
		if err := s.flow.OpenCart(); err != nil {
			return err
		}
		s.sel = nil
		return nil
	})
}

func (s *Session) Continue() (View, error) {
	return s.step(s.flow.Continue)
}

func (s *Session) Cancel() (View, error) {
	return s.step(s.flow.Cancel)
}

func (s *Session) UpdateCustomer(c domain.Customer) (View, error) {
	return s.step(func() error { return s.flow.UpdateCustomer(c) })
}

func (s *Session) SetCoupon(code string) (View, error) {
	return s.step(func() error { return s.flow.SetCoupon(code) })
}

func (s *Session) step(fn func() error) (View, error) {
	defer s.lock()()
	if err := fn(); err != nil {
		return s.view(), err
	}
	return s.view(), nil
}

// Pay holds the session lock for the whole submission.
func (s *Session) Pay(ctx context.Context, method string) (*domain.Order, error) {
	defer s.lock()()
	return s.flow.ChoosePayment(ctx, method)
}

func (s *Session) Progress() (checkout.ProgressView, error) {
	defer s.lock()()
	pv, ok := s.flow.Progress()
	if !ok {
		return checkout.ProgressView{}, fmt.Errorf("%w: no order in progress", domain.ErrInvalidTransition)
	}
	return pv, nil
}

// Expired reports whether the session has been idle longer than ttl or has
// finished showing its order progress. A session busy with another call is
// in use and never expired. It does not refresh lastSeen.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	if ttl > 0 && now.Sub(s.lastSeen) > ttl {
		return true
	}
	return s.flow.Finished()
}
