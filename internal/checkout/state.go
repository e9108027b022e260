package checkout

type State string

const (
	Browsing         State = "browsing"
	CartReview       State = "cart_review"
	CustomerForm     State = "customer_form"
	PaymentSelection State = "payment_selection"
	OrderProgress    State = "order_progress"
)

// Trigger names an input to the flow; used in InvalidTransition messages.
type Trigger string

const (
	TriggerOpenCart      Trigger = "open_cart"
	TriggerContinue      Trigger = "continue"
	TriggerCancel        Trigger = "cancel"
	TriggerEditCustomer  Trigger = "edit_customer"
	TriggerSetCoupon     Trigger = "set_coupon"
	TriggerChoosePayment Trigger = "choose_payment"
	TriggerEditCart      Trigger = "edit_cart"
	TriggerSelect        Trigger = "select_product"
)

// AllowsCartEdits reports whether items may be added or changed in s.
func (s State) AllowsCartEdits() bool {
	return s == Browsing || s == CartReview
}

// AllowsSelection reports whether a product detail view may be open in s.
func (s State) AllowsSelection() bool {
	return s == Browsing
}
