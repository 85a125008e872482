package models

import (
	"slices"
	"time"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CreditCard"
	PaymentCash       PaymentMethod = "Cash"
	PaymentOnline     PaymentMethod = "Online"
)

var paymentMethods = []PaymentMethod{PaymentCreditCard, PaymentCash, PaymentOnline}

func (m PaymentMethod) Valid() bool {
	return slices.Contains(paymentMethods, m)
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPaid      OrderStatus = "Paid"
	OrderCancelled OrderStatus = "Cancelled"
)

// PaymentStatus tracks the money side of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// Order is a placed checkout. Amounts are PKR.
type Order struct {
	ID             string        `json:"id"`
	UserID         int64         `json:"userId"`
	Items          []CartItem    `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	DeliveryFee    float64       `json:"deliveryFee"`
	Discount       float64       `json:"discount"`
	Total          float64       `json:"total"`
	PointsEarned   int           `json:"pointsEarned"`
	PointsRedeemed int           `json:"pointsRedeemed"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
}
