// Package pricing holds the one totals formula shared by every surface that
// shows money: cart preview, checkout summary and the submitted order.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"milanfood-backend/internal/domain"
)

const (
	DeliveryBase    int64 = 2000
	DeliveryPerUnit int64 = 500

	CouponCode = "DESCUENTO10"
)

var couponRate = decimal.New(1, -1)

// CouponApplied reports whether code is the recognized coupon, ignoring case
// and surrounding whitespace.
func CouponApplied(code string) bool {
	return strings.ToUpper(strings.TrimSpace(code)) == CouponCode
}

func ComputeTotals(items []domain.LineItem, coupon string) domain.Totals {
	var subtotal int64
	var units int64
	for _, it := range items {
		subtotal += it.LineTotal()
		units += int64(it.Quantity)
	}
	delivery := DeliveryBase + DeliveryPerUnit*units

	var discount int64
	if CouponApplied(coupon) {
		// Round is half away from zero; amounts are never negative here.
		discount = decimal.NewFromInt(subtotal + delivery).Mul(couponRate).Round(0).IntPart()
	}
	return domain.Totals{
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		Discount:    discount,
		Total:       subtotal + delivery - discount,
	}
}
