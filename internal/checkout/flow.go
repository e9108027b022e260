// Package checkout drives a session from browsing to a submitted order.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"milanfood-backend/internal/cart"
	"milanfood-backend/internal/domain"
	"milanfood-backend/internal/pricing"
)

// Submitter records a finished order somewhere durable.
type Submitter interface {
	Submit(ctx context.Context, o *domain.Order) error
}

type Option func(*Flow)

func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

func WithStepInterval(d time.Duration) Option {
	return func(f *Flow) { f.interval = d }
}

func WithIDGenerator(gen func() string) Option {
	return func(f *Flow) { f.newID = gen }
}

func WithSessionID(id string) Option {
	return func(f *Flow) { f.sessionID = id }
}

func WithValidator(v *CustomerValidator) Option {
	return func(f *Flow) { f.validator = v }
}

// Flow is not safe for concurrent use; the owning session serializes calls.
type Flow struct {
	cart      *cart.Store
	submitter Submitter
	validator *CustomerValidator
	now       func() time.Time
	newID     func() string
	sessionID string
	interval  time.Duration

	state     State
	customer  domain.Customer
	coupon    string
	order     *domain.Order
	startedAt time.Time
}

func New(c *cart.Store, sub Submitter, opts ...Option) *Flow {
	f := &Flow{
		cart:      c,
		submitter: sub,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		interval:  DefaultStepInterval,
		state:     Browsing,
	}
	for _, o := range opts {
		o(f)
	}
	if f.validator == nil {
		f.validator = NewCustomerValidator()
	}
	return f
}

func (f *Flow) State() State { return f.state }

// Totals is recomputed from the cart and coupon on every call.
func (f *Flow) Totals() domain.Totals {
	return pricing.ComputeTotals(f.cart.Items(), f.coupon)
}

func (f *Flow) Coupon() string { return f.coupon }

func (f *Flow) CouponApplied() bool { return pricing.CouponApplied(f.coupon) }

// Customer returns the in-progress delivery form including the coupon.
func (f *Flow) Customer() domain.Customer {
	c := f.customer
	c.Coupon = f.coupon
	return c
}

// Order is the submitted order, nil before payment succeeds.
func (f *Flow) Order() *domain.Order {
	if f.order == nil {
		return nil
	}
	o := *f.order
	o.Items = make([]domain.LineItem, len(f.order.Items))
	for i, it := range f.order.Items {
		o.Items[i] = it.Clone()
	}
	return &o
}

// OpenCart moves to CartReview. With an empty cart the state is unchanged
// and ErrEmptyCart is returned as a notice.
func (f *Flow) OpenCart() error {
	if f.state != Browsing {
		return f.invalid(TriggerOpenCart)
	}
	if f.cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	f.state = CartReview
	return nil
}

func (f *Flow) Continue() error {
	switch f.state {
	case CartReview:
		if f.cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		f.customer = domain.Customer{}
		f.state = CustomerForm
		return nil
	case CustomerForm:
		if err := f.validator.Validate(f.customer); err != nil {
			return err
		}
		f.state = PaymentSelection
		return nil
	default:
		return f.invalid(TriggerContinue)
	}
}

// Cancel returns to the preceding state. The cart is never touched.
func (f *Flow) Cancel() error {
	switch f.state {
	case CartReview:
		f.state = Browsing
	case CustomerForm:
		f.customer = domain.Customer{}
		f.state = CartReview
	case PaymentSelection:
		f.state = CustomerForm
	default:
		return f.invalid(TriggerCancel)
	}
	return nil
}

// UpdateCustomer replaces the form contents. A non-empty Coupon field also
// replaces the coupon.
func (f *Flow) UpdateCustomer(c domain.Customer) error {
	if f.state != CustomerForm {
		return f.invalid(TriggerEditCustomer)
	}
	if strings.TrimSpace(c.Coupon) != "" {
		f.coupon = c.Coupon
	}
	c.Coupon = ""
	f.customer = c
	return nil
}

func (f *Flow) SetCoupon(code string) error {
	if f.state == OrderProgress {
		return f.invalid(TriggerSetCoupon)
	}
	f.coupon = code
	return nil
}

// CartChanged must be called after a cart mutation. An emptied cart in
// CartReview drops back to Browsing.
func (f *Flow) CartChanged() {
	if f.state == CartReview && f.cart.IsEmpty() {
		f.state = Browsing
	}
}

// CheckCartEdit reports whether the cart may be mutated now.
func (f *Flow) CheckCartEdit() error {
	if !f.state.AllowsCartEdits() {
		return f.invalid(TriggerEditCart)
	}
	return nil
}

// CheckSelection reports whether a product detail view may be used now.
func (f *Flow) CheckSelection() error {
	if !f.state.AllowsSelection() {
		return f.invalid(TriggerSelect)
	}
	return nil
}

// ChoosePayment submits the order. On sink failure the state, cart and
// customer are left as they were.
func (f *Flow) ChoosePayment(ctx context.Context, method string) (*domain.Order, error) {
	if f.state != PaymentSelection {
		return nil, f.invalid(TriggerChoosePayment)
	}
	pm, ok := domain.ParsePaymentMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: payment method %q", domain.ErrInvalidOption, method)
	}
	if err := f.validator.Validate(f.customer); err != nil {
		return nil, err
	}
	if f.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	items := f.cart.Items()
	cust := f.Customer().Trimmed()
	o := &domain.Order{
		OrderID:       f.newID(),
		SessionID:     f.sessionID,
		Items:         items,
		Totals:        pricing.ComputeTotals(items, f.coupon),
		Customer:      cust,
		PaymentMethod: pm,
		CreatedAt:     f.now().UTC(),
	}
	if err := f.submitter.Submit(ctx, o); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderSubmissionFailed, err)
	}

	f.cart.Clear()
	f.order = o
	f.state = OrderProgress
	f.startedAt = f.now()
	return f.Order(), nil
}

// Progress is only meaningful in OrderProgress; ok is false otherwise.
func (f *Flow) Progress() (ProgressView, bool) {
	if f.state != OrderProgress {
		return ProgressView{}, false
	}
	return computeProgress(DefaultSteps, f.interval, f.now().Sub(f.startedAt)), true
}

// Finished reports whether the order was submitted and its progress ran out.
func (f *Flow) Finished() bool {
	pv, ok := f.Progress()
	return ok && pv.Done
}

func (f *Flow) invalid(t Trigger) error {
	return fmt.Errorf("%w: %s not allowed in %s", domain.ErrInvalidTransition, t, f.state)
}
