package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
	}{
		{"card", PaymentCard},
		{"Card", PaymentCard},
		{"cod", PaymentCashOnDelivery},
		{"cash", PaymentCashOnDelivery},
		{"cash-on-delivery", PaymentCashOnDelivery},
		{"bank", PaymentBankTransfer},
		{"bank-transfer", PaymentBankTransfer},
		{" transfer ", PaymentBankTransfer},
	}
	for _, tt := range tests {
		got, err := ParsePaymentMethod(tt.in)
		require.NoError(t, err, "ParsePaymentMethod(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePaymentMethod("barter")
	assert.Error(t, err)
}

func TestPaymentMethodWireValues(t *testing.T) {
	assert.Equal(t, 0, int(PaymentCard))
	assert.Equal(t, 1, int(PaymentCashOnDelivery))
	assert.Equal(t, 2, int(PaymentBankTransfer))
}

func TestCartIsActive(t *testing.T) {
	var nilCart *Cart
	assert.False(t, nilCart.IsActive())
	assert.True(t, (&Cart{Status: CartStatusActive}).IsActive())
	assert.True(t, (&Cart{}).IsActive())
	assert.False(t, (&Cart{Status: "CheckedOut"}).IsActive())
}

func TestCartItemCount(t *testing.T) {
	var nilCart *Cart
	assert.Zero(t, nilCart.ItemCount())

	c := &Cart{Items: []CartItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, c.ItemCount())
}
