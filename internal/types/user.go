package types

import "time"

// UserRecord is a back-office row from the user listing.
type UserRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	ProductImage string  `json:"productImage,omitempty"`
}

// Order is a placed order as reported by the order endpoints.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber,omitempty"`
	CustomerName string      `json:"customerName,omitempty"`
	Amount       float64     `json:"amount"`
	Address      string      `json:"address,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
}
