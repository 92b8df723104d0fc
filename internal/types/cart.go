package types

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMethod matches the backend's numeric enum.
type PaymentMethod int

const (
	PaymentCard PaymentMethod = iota
	PaymentCashOnDelivery
	PaymentBankTransfer
)

// ParsePaymentMethod maps CLI-friendly names to the wire enum.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return PaymentCard, nil
	case "cod", "cash", "cash-on-delivery":
		return PaymentCashOnDelivery, nil
	case "bank", "bank-transfer", "transfer":
		return PaymentBankTransfer, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q (want card, cod or bank)", s)
	}
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCashOnDelivery:
		return "cash on delivery"
	case PaymentBankTransfer:
		return "bank transfer"
	default:
		return "card"
	}
}

// CartStatusActive is the only status a cart can be mutated in; anything
// else (CheckedOut, Cancelled) is order history.
const CartStatusActive = "Active"

// CartItem is one line of a cart. Totals come from the server.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	ProductImage string  `json:"productImage"`
}

// Cart mirrors the backend cart. The client treats it as an opaque cached
// copy: item lists and totals are only trusted immediately after a mutating
// call or an explicit refresh, and no totals are ever recomputed locally.
type Cart struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"userId"`
	Items               []CartItem     `json:"items"`
	CouponApplied       string         `json:"couponApplied,omitempty"`
	TotalBeforeDiscount float64        `json:"totalBeforeDiscount"`
	TotalAfterDiscount  float64        `json:"totalAfterDiscount"`
	ShippingCost        float64        `json:"shippingCost"`
	FinalTotal          float64        `json:"finalTotal"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	Status              string         `json:"status"`
	Address             string         `json:"address,omitempty"`
	PaymentMethod       *PaymentMethod `json:"paymentMethod,omitempty"`
}

// IsActive reports whether the cart can still be mutated.
func (c *Cart) IsActive() bool {
	return c != nil && (c.Status == "" || c.Status == CartStatusActive)
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
