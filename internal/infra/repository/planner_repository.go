package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erphive/attendance-planner/internal/domain"
)

const (
	subjectsKeyPrefix   = "planner:subjects:"
	timetableKeyPrefix  = "planner:timetable:"
	thresholdsKeyPrefix = "planner:thresholds:"
	orderKeyPrefix      = "planner:order:"
	premiumKeyPrefix    = "planner:premium:"

	// Snapshots go stale when the student stops syncing; config keys live
	// until overwritten.
	subjectsTTL = 90 * 24 * time.Hour
	orderTTL    = 48 * time.Hour
)

type subjectRecord struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type snapshotRecord struct {
	StudentID string          `json:"student_id"`
	Subjects  []subjectRecord `json:"subjects"`
	SyncedAt  time.Time       `json:"synced_at"`
}

type timetableRecord struct {
	Days      map[int][]string `json:"days"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type thresholdRecord struct {
	Global    int            `json:"global"`
	Overrides map[string]int `json:"overrides,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type orderRecord struct {
	OrderID   string    `json:"order_id"`
	StudentID string    `json:"student_id"`
	Plan      string    `json:"plan"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type plannerRepository struct {
	client *redis.Client
}

func NewPlannerRepository(client *redis.Client) domain.PlannerRepository {
	return &plannerRepository{
		client: client,
	}
}

func (r *plannerRepository) SaveSubjects(ctx context.Context, studentID string, subjects []domain.Subject) error {
	records := make([]subjectRecord, 0, len(subjects))
	for _, s := range subjects {
		records = append(records, subjectRecord{
			Name:       s.Name,
			Code:       s.Code,
			Attended:   s.Attended,
			Total:      s.Total,
			Percentage: s.Percentage,
		})
	}

	record := snapshotRecord{
		StudentID: studentID,
		Subjects:  records,
		SyncedAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidSnapshotData
	}

	key := subjectsKeyPrefix + studentID
	return r.client.Set(ctx, key, data, subjectsTTL).Err()
}

func (r *plannerRepository) GetSubjects(ctx context.Context, studentID string) ([]domain.Subject, error) {
	key := subjectsKeyPrefix + studentID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSubjectsNotFound
		}
		return nil, err
	}

	var record snapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSnapshotData
	}

	subjects := make([]domain.Subject, 0, len(record.Subjects))
	for _, s := range record.Subjects {
		subjects = append(subjects, domain.Subject{
			Name:       s.Name,
			Code:       s.Code,
			Attended:   s.Attended,
			Total:      s.Total,
			Percentage: s.Percentage,
		})
	}

	return subjects, nil
}

func (r *plannerRepository) SaveTimetable(ctx context.Context, studentID string, timetable domain.Timetable) error {
	record := timetableRecord{
		Days:      timetable,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidConfigData
	}

	key := timetableKeyPrefix + studentID
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *plannerRepository) GetTimetable(ctx context.Context, studentID string) (domain.Timetable, error) {
	key := timetableKeyPrefix + studentID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTimetableNotFound
		}
		return nil, err
	}

	var record timetableRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidConfigData
	}

	return domain.Timetable(record.Days), nil
}

func (r *plannerRepository) SaveThresholds(ctx context.Context, studentID string, thresholds domain.ThresholdConfig) error {
	record := thresholdRecord{
		Global:    thresholds.Global,
		Overrides: thresholds.Overrides,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidConfigData
	}

	key := thresholdsKeyPrefix + studentID
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *plannerRepository) GetThresholds(ctx context.Context, studentID string) (domain.ThresholdConfig, error) {
	key := thresholdsKeyPrefix + studentID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ThresholdConfig{}, domain.ErrThresholdsNotFound
		}
		return domain.ThresholdConfig{}, err
	}

	var record thresholdRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.ThresholdConfig{}, ErrInvalidConfigData
	}

	return domain.ThresholdConfig{
		Global:    record.Global,
		Overrides: record.Overrides,
	}, nil
}

func (r *plannerRepository) SaveOrder(ctx context.Context, order *domain.PaymentOrder) error {
	if order == nil {
		return ErrInvalidOrderData
	}

	record := orderRecord{
		OrderID:   order.OrderID,
		StudentID: order.StudentID,
		Plan:      order.Plan,
		Amount:    order.Amount,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidOrderData
	}

	key := orderKeyPrefix + order.OrderID
	return r.client.Set(ctx, key, data, orderTTL).Err()
}

func (r *plannerRepository) GetOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	key := orderKeyPrefix + orderID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	var record orderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidOrderData
	}

	return &domain.PaymentOrder{
		OrderID:   record.OrderID,
		StudentID: record.StudentID,
		Plan:      record.Plan,
		Amount:    record.Amount,
		Status:    domain.OrderStatus(record.Status),
		CreatedAt: record.CreatedAt,
	}, nil
}

func (r *plannerRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	order, err := r.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	order.Status = status
	return r.SaveOrder(ctx, order)
}

func (r *plannerRepository) SetPremiumUntil(ctx context.Context, studentID string, until time.Time) error {
	key := premiumKeyPrefix + studentID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, until.UTC().Format(time.RFC3339), 0)
	pipe.ExpireAt(ctx, key, until)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *plannerRepository) PremiumUntil(ctx context.Context, studentID string) (time.Time, error) {
	key := premiumKeyPrefix + studentID

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	until, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, ErrInvalidConfigData
	}

	return until, nil
}
