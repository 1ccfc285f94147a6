package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=domain

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Premium plans sold through checkout.
const (
	PlanPremiumMonthly = "premium_monthly"
	PlanPremiumYearly  = "premium_yearly"
)

// PaymentOrder tracks one premium purchase from checkout to settlement.
type PaymentOrder struct {
	OrderID   string      `json:"order_id"`
	StudentID string      `json:"student_id"`
	Plan      string      `json:"plan"`
	Amount    int64       `json:"amount"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// CheckoutSession is what the client needs to open the hosted payment page.
type CheckoutSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentGateway abstracts the hosted-checkout provider. CreateOrder opens
// a checkout session for an order; VerifySignature authenticates a payment
// notification callback.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, order *PaymentOrder) (*CheckoutSession, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}
