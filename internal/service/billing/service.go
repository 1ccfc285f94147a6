package billing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erphive/attendance-planner/internal/domain"
)

// Service sells premium plans: it issues payment orders, opens checkout
// sessions and settles gateway notifications into the premium flag.
type Service struct {
	repo         domain.PlannerRepository
	gateway      domain.PaymentGateway
	monthlyPrice int64
	yearlyPrice  int64
}

func NewService(repo domain.PlannerRepository, gateway domain.PaymentGateway, monthlyPrice, yearlyPrice int64) *Service {
	return &Service{
		repo:         repo,
		gateway:      gateway,
		monthlyPrice: monthlyPrice,
		yearlyPrice:  yearlyPrice,
	}
}

// Checkout creates a pending order and opens a hosted checkout session for
// it. The order expires with its storage TTL if the student never pays.
func (s *Service) Checkout(ctx context.Context, studentID, plan string) (*CheckoutResponse, error) {
	if s.gateway == nil {
		return nil, domain.ErrPaymentNotConfigured
	}

	price, err := s.priceFor(plan)
	if err != nil {
		return nil, err
	}

	order := &domain.PaymentOrder{
		OrderID:   uuid.NewString(),
		StudentID: studentID,
		Plan:      plan,
		Amount:    price,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		slog.ErrorContext(ctx, "failed to persist payment order",
			slog.String("order_id", order.OrderID),
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	session, err := s.gateway.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "checkout session created",
		slog.String("order_id", order.OrderID),
		slog.String("student_id", studentID),
		slog.String("plan", plan),
		slog.Int64("amount", price),
	)

	return &CheckoutResponse{
		OrderID:     order.OrderID,
		Plan:        plan,
		Amount:      price,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
	}, nil
}

// HandleNotification authenticates and applies one gateway callback.
// Unknown orders are acknowledged as ignored rather than erroring: the
// gateway retries anything that is not a 2xx.
func (s *Service) HandleNotification(ctx context.Context, notif *Notification) (*NotificationResult, error) {
	if s.gateway == nil {
		return nil, domain.ErrPaymentNotConfigured
	}

	if !s.gateway.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		slog.WarnContext(ctx, "payment notification signature mismatch",
			slog.String("order_id", notif.OrderID),
		)
		return nil, domain.ErrInvalidSignature
	}

	order, err := s.repo.GetOrder(ctx, notif.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			slog.WarnContext(ctx, "notification for unknown order, ignoring",
				slog.String("order_id", notif.OrderID),
			)
			return &NotificationResult{OrderID: notif.OrderID, Ignored: true}, nil
		}
		return nil, err
	}

	switch mapTransactionStatus(notif.TransactionStatus, notif.FraudStatus) {
	case domain.OrderStatusPaid:
		return s.settle(ctx, order)
	case domain.OrderStatusFailed:
		return s.fail(ctx, order, notif.TransactionStatus)
	default:
		slog.DebugContext(ctx, "notification leaves order pending",
			slog.String("order_id", order.OrderID),
			slog.String("transaction_status", notif.TransactionStatus),
		)
		return &NotificationResult{OrderID: order.OrderID, Status: order.Status}, nil
	}
}

func (s *Service) settle(ctx context.Context, order *domain.PaymentOrder) (*NotificationResult, error) {
	if order.Status == domain.OrderStatusPaid {
		// Gateways redeliver; a settled order must not extend premium twice.
		slog.DebugContext(ctx, "order already settled, ignoring redelivery",
			slog.String("order_id", order.OrderID),
		)
		return &NotificationResult{OrderID: order.OrderID, Status: order.Status, Ignored: true}, nil
	}

	if err := s.repo.UpdateOrderStatus(ctx, order.OrderID, domain.OrderStatusPaid); err != nil {
		return nil, err
	}

	until, err := s.extendPremium(ctx, order)
	if err != nil {
		// Put the order back so the gateway's retry runs settlement again.
		if revertErr := s.repo.UpdateOrderStatus(ctx, order.OrderID, domain.OrderStatusPending); revertErr != nil {
			slog.ErrorContext(ctx, "failed to revert order after premium write failure",
				slog.String("order_id", order.OrderID),
				slog.String("error", revertErr.Error()),
			)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "premium activated",
		slog.String("order_id", order.OrderID),
		slog.String("student_id", order.StudentID),
		slog.String("plan", order.Plan),
		slog.Time("premium_until", until),
	)

	return &NotificationResult{
		OrderID:      order.OrderID,
		Status:       domain.OrderStatusPaid,
		PremiumUntil: &until,
	}, nil
}

// extendPremium stacks the plan period on top of whatever premium time is
// left, so renewing early never discards paid days.
func (s *Service) extendPremium(ctx context.Context, order *domain.PaymentOrder) (time.Time, error) {
	base := time.Now().UTC()
	if current, err := s.repo.PremiumUntil(ctx, order.StudentID); err == nil && current.After(base) {
		base = current
	}

	until := addPlanPeriod(base, order.Plan)
	if err := s.repo.SetPremiumUntil(ctx, order.StudentID, until); err != nil {
		slog.ErrorContext(ctx, "failed to set premium expiry",
			slog.String("order_id", order.OrderID),
			slog.String("student_id", order.StudentID),
			slog.String("error", err.Error()),
		)
		return time.Time{}, err
	}
	return until, nil
}

func (s *Service) fail(ctx context.Context, order *domain.PaymentOrder, transactionStatus string) (*NotificationResult, error) {
	if order.Status != domain.OrderStatusPending {
		return &NotificationResult{OrderID: order.OrderID, Status: order.Status, Ignored: true}, nil
	}

	if err := s.repo.UpdateOrderStatus(ctx, order.OrderID, domain.OrderStatusFailed); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "payment order failed",
		slog.String("order_id", order.OrderID),
		slog.String("transaction_status", transactionStatus),
	)

	return &NotificationResult{OrderID: order.OrderID, Status: domain.OrderStatusFailed}, nil
}

func (s *Service) priceFor(plan string) (int64, error) {
	switch plan {
	case domain.PlanPremiumMonthly:
		return s.monthlyPrice, nil
	case domain.PlanPremiumYearly:
		return s.yearlyPrice, nil
	default:
		return 0, domain.ErrUnknownPlan
	}
}

// mapTransactionStatus folds the gateway's transaction states onto order
// states. A capture only counts as paid once fraud review accepts it.
func mapTransactionStatus(transactionStatus, fraudStatus string) domain.OrderStatus {
	switch transactionStatus {
	case "settlement":
		return domain.OrderStatusPaid
	case "capture":
		if fraudStatus == "accept" {
			return domain.OrderStatusPaid
		}
		return domain.OrderStatusPending
	case "deny", "cancel", "expire", "failure":
		return domain.OrderStatusFailed
	default:
		return domain.OrderStatusPending
	}
}

func addPlanPeriod(base time.Time, plan string) time.Time {
	switch plan {
	case domain.PlanPremiumYearly:
		return base.AddDate(1, 0, 0)
	default:
		return base.AddDate(0, 1, 0)
	}
}
