package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=planner_repository.go -destination=planner_repository_mock.go -package=domain

type PlannerRepository interface {
	SaveSubjects(ctx context.Context, studentID string, subjects []Subject) error
	GetSubjects(ctx context.Context, studentID string) ([]Subject, error)
	SaveTimetable(ctx context.Context, studentID string, timetable Timetable) error
	GetTimetable(ctx context.Context, studentID string) (Timetable, error)
	SaveThresholds(ctx context.Context, studentID string, thresholds ThresholdConfig) error
	GetThresholds(ctx context.Context, studentID string) (ThresholdConfig, error)
	SaveOrder(ctx context.Context, order *PaymentOrder) error
	GetOrder(ctx context.Context, orderID string) (*PaymentOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error
	SetPremiumUntil(ctx context.Context, studentID string, until time.Time) error
	PremiumUntil(ctx context.Context, studentID string) (time.Time, error)
}
