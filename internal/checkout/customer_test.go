package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milanfood-backend/internal/domain"
)

func TestCustomerValidator_Valid(t *testing.T) {
	cv := NewCustomerValidator()
	assert.NoError(t, cv.Validate(validCustomer()))

	c := validCustomer()
	c.Name = "  Ñandú Pérez  "
	c.Phone = " 1234567 "
	assert.NoError(t, cv.Validate(c))
}

func TestCustomerValidator_UnicodeSpaces(t *testing.T) {
	cv := NewCustomerValidator()
	c := validCustomer()
	c.Name = "María\u00a0José"
	c.LastName = "de\u2009la Fuente"
	c.Phone = "11\u00a02222\u00a03333"
	assert.NoError(t, cv.Validate(c))
}

func TestCustomerValidator_FirstFailingField(t *testing.T) {
	cv := NewCustomerValidator()
	cases := []struct {
		name   string
		mutate func(*domain.Customer)
		field  string
		msg    string
	}{
		{"empty form", func(c *domain.Customer) { *c = domain.Customer{} }, "name", "enter a valid name"},
		{"short name", func(c *domain.Customer) { c.Name = "A" }, "name", "enter a valid name"},
		{"digits in name", func(c *domain.Customer) { c.Name = "Ana1" }, "name", "enter a valid name"},
		{"last name", func(c *domain.Customer) { c.LastName = " " }, "lastName", "enter a valid last name"},
		{"phone letters", func(c *domain.Customer) { c.Phone = "11-ABC-3333" }, "phone", "enter a valid phone number"},
		{"phone short", func(c *domain.Customer) { c.Phone = "12345" }, "phone", "enter a valid phone number"},
		{"phone long", func(c *domain.Customer) { c.Phone = "1234567890123456" }, "phone", "enter a valid phone number"},
		{"street", func(c *domain.Customer) { c.Street = "   " }, "street", "enter the street"},
		{"town", func(c *domain.Customer) { c.Town = "" }, "town", "enter the town"},
		{"number", func(c *domain.Customer) { c.Number = "\t" }, "number", "enter the house/unit number"},
		{"phone before street", func(c *domain.Customer) { c.Phone = "x"; c.Street = "" }, "phone", "enter a valid phone number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCustomer()
			tc.mutate(&c)
			err := cv.Validate(c)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, verr.Message)
		})
	}
}

func TestCustomerValidator_OptionalFieldsIgnored(t *testing.T) {
	c := validCustomer()
	c.DeliveryNote = ""
	c.Coupon = "anything"
	assert.NoError(t, NewCustomerValidator().Validate(c))
}
