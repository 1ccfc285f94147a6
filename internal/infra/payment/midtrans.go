package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/observability/tracing"
)

// midtransGateway sells premium plans through Midtrans Snap hosted checkout.
type midtransGateway struct {
	client    snap.Client
	serverKey string
}

// NewMidtransGateway builds a gateway against the sandbox or production
// Snap environment. The server key doubles as the notification signature
// secret.
func NewMidtransGateway(serverKey string, production bool) domain.PaymentGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &midtransGateway{
		client:    client,
		serverKey: serverKey,
	}
}

func (g *midtransGateway) CreateOrder(ctx context.Context, order *domain.PaymentOrder) (*domain.CheckoutSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: order.Amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    order.Plan,
				Name:  planItemName(order.Plan),
				Price: order.Amount,
				Qty:   1,
			},
		},
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "create_transaction", "midtrans-snap")
	defer span.End()

	resp, midErr := g.client.CreateTransaction(req)
	if midErr != nil {
		span.RecordError(midErr)
		slog.WarnContext(ctx, "snap transaction creation failed",
			slog.String("order_id", order.OrderID),
			slog.String("student_id", order.StudentID),
			slog.String("error", midErr.Error()))
		return nil, fmt.Errorf("failed to create checkout session: %w", midErr)
	}

	return &domain.CheckoutSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// VerifySignature checks the SHA512 signature Midtrans attaches to payment
// notifications: hex(sha512(order_id + status_code + gross_amount + server_key)).
func (g *midtransGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	if signature == "" {
		return false
	}

	raw := orderID + statusCode + grossAmount + g.serverKey
	sum := sha512.Sum512([]byte(raw))
	want := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(signature))) == 1
}

func planItemName(plan string) string {
	switch plan {
	case domain.PlanPremiumMonthly:
		return "Attendance Planner Premium (monthly)"
	case domain.PlanPremiumYearly:
		return "Attendance Planner Premium (yearly)"
	default:
		return "Attendance Planner Premium"
	}
}
