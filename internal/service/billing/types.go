package billing

import (
	"time"

	"github.com/erphive/attendance-planner/internal/domain"
)

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Plan        string `json:"plan"`
	Amount      int64  `json:"amount"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Notification is the payment callback the gateway posts after a
// transaction changes state. GrossAmount arrives as a string and feeds the
// signature check verbatim.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// NotificationResult reports what a notification did. Ignored covers
// redeliveries and orders this service never issued; both are acknowledged
// so the gateway stops retrying.
type NotificationResult struct {
	OrderID      string             `json:"order_id"`
	Status       domain.OrderStatus `json:"status,omitempty"`
	Ignored      bool               `json:"ignored"`
	PremiumUntil *time.Time         `json:"premium_until,omitempty"`
}
