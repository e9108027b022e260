package domain

import (
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCard:
		return PaymentCard, true
	default:
		return "", false
	}
}

// LineItem is one configured product in a cart. Quantity is always >= 1.
type LineItem struct {
	ProductID      int      `json:"productId"`
	Name           string   `json:"name"`
	UnitPrice      int64    `json:"unitPrice"`
	RequiredChoice *string  `json:"requiredChoice"`
	Extras         []string `json:"extras"`
	Note           string   `json:"note"`
	Quantity       int      `json:"quantity"`
}

func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

func (li LineItem) Clone() LineItem {
	cp := li
	if li.RequiredChoice != nil {
		v := *li.RequiredChoice
		cp.RequiredChoice = &v
	}
	cp.Extras = append([]string{}, li.Extras...)
	return cp
}

type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
}

// Customer is the delivery form filled in once per checkout attempt.
type Customer struct {
	Name         string `json:"name" validate:"personname"`
	LastName     string `json:"lastName" validate:"personname"`
	Phone        string `json:"phone" validate:"phone"`
	Street       string `json:"street" validate:"nonblank"`
	Town         string `json:"town" validate:"nonblank"`
	Number       string `json:"number" validate:"nonblank"`
	DeliveryNote string `json:"deliveryNote,omitempty"`
	Coupon       string `json:"coupon,omitempty"`
}

func (c Customer) Trimmed() Customer {
	return Customer{
		Name:         strings.TrimSpace(c.Name),
		LastName:     strings.TrimSpace(c.LastName),
		Phone:        strings.TrimSpace(c.Phone),
		Street:       strings.TrimSpace(c.Street),
		Town:         strings.TrimSpace(c.Town),
		Number:       strings.TrimSpace(c.Number),
		DeliveryNote: strings.TrimSpace(c.DeliveryNote),
		Coupon:       strings.TrimSpace(c.Coupon),
	}
}

type Order struct {
	OrderID       string        `json:"orderId"`
	SessionID     string        `json:"sessionId,omitempty"`
	Items         []LineItem    `json:"items"`
	Totals        Totals        `json:"totals"`
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
}
