package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusPacked    OrderStatus = "PACKED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Order is owned by the remote order service; the engine only reads it.
type Order struct {
	ID              ID              `json:"id"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrder struct {
	Items           []OrderItem   `json:"items"`
	DeliveryAddress string        `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
}
