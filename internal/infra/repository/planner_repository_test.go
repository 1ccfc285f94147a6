package repository

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/testutil"
)

func TestSaveSubjectsSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name      string
		studentID string
		subjects  []domain.Subject
	}{
		{
			name:      "save single subject",
			studentID: "stu-001",
			subjects: []domain.Subject{
				{Name: "Data Structures", Code: "CS201", Attended: 18, Total: 25, Percentage: 72.0},
			},
		},
		{
			name:      "save multiple subjects",
			studentID: "stu-002",
			subjects: []domain.Subject{
				{Name: "Data Structures", Code: "CS201", Attended: 18, Total: 25, Percentage: 72.0},
				{Name: "Chemistry", Code: "CH103", Attended: 20, Total: 22, Percentage: 90.9},
				{Name: "Moral Science", Code: "", Attended: 0, Total: 0, Percentage: 0},
			},
		},
		{
			name:      "save empty snapshot",
			studentID: "stu-003",
			subjects:  []domain.Subject{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveSubjects(ctx, tt.studentID, tt.subjects)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			retrieved, err := repo.GetSubjects(ctx, tt.studentID)
			if err != nil {
				t.Fatalf("failed to get subjects: %v", err)
			}

			if len(retrieved) != len(tt.subjects) {
				t.Fatalf("expected %d subjects, got %d", len(tt.subjects), len(retrieved))
			}
			for i, s := range retrieved {
				if s != tt.subjects[i] {
					t.Errorf("subject %d: expected %+v, got %+v", i, tt.subjects[i], s)
				}
			}

			// Verify snapshot TTL is set
			ttl, err := client.TTL(ctx, "planner:subjects:"+tt.studentID).Result()
			if err != nil {
				t.Fatalf("failed to get TTL: %v", err)
			}
			if ttl <= 0 || ttl > 90*24*time.Hour {
				t.Errorf("expected TTL around 90 days, got %v", ttl)
			}
		})
	}
}

func TestGetSubjectsError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name        string
		studentID   string
		setup       func(t *testing.T)
		expectedErr error
	}{
		{
			name:        "missing snapshot",
			studentID:   "stu-missing",
			setup:       func(t *testing.T) {},
			expectedErr: domain.ErrSubjectsNotFound,
		},
		{
			name:      "corrupt snapshot",
			studentID: "stu-corrupt",
			setup: func(t *testing.T) {
				err := client.Set(ctx, "planner:subjects:stu-corrupt", "not-json", 0).Err()
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expectedErr: ErrInvalidSnapshotData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			_, err := repo.GetSubjects(ctx, tt.studentID)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestSaveTimetableSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name      string
		studentID string
		timetable domain.Timetable
	}{
		{
			name:      "save full week",
			studentID: "stu-tt-001",
			timetable: domain.Timetable{
				0: {"CS201", "CH103"},
				1: {"CS201"},
				4: {"CH103", "CH103"},
			},
		},
		{
			name:      "save empty timetable",
			studentID: "stu-tt-002",
			timetable: domain.Timetable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveTimetable(ctx, tt.studentID, tt.timetable)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			retrieved, err := repo.GetTimetable(ctx, tt.studentID)
			if err != nil {
				t.Fatalf("failed to get timetable: %v", err)
			}

			if !reflect.DeepEqual(retrieved, tt.timetable) {
				t.Errorf("expected timetable %v, got %v", tt.timetable, retrieved)
			}

			// Config keys live until overwritten
			ttl, err := client.TTL(ctx, "planner:timetable:"+tt.studentID).Result()
			if err != nil {
				t.Fatalf("failed to get TTL: %v", err)
			}
			if ttl > 0 {
				t.Errorf("expected no expiry on timetable key, got TTL %v", ttl)
			}
		})
	}
}

func TestGetTimetableError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name        string
		studentID   string
		setup       func(t *testing.T)
		expectedErr error
	}{
		{
			name:        "missing timetable",
			studentID:   "stu-tt-missing",
			setup:       func(t *testing.T) {},
			expectedErr: domain.ErrTimetableNotFound,
		},
		{
			name:      "corrupt timetable",
			studentID: "stu-tt-corrupt",
			setup: func(t *testing.T) {
				err := client.Set(ctx, "planner:timetable:stu-tt-corrupt", "not-json", 0).Err()
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expectedErr: ErrInvalidConfigData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			_, err := repo.GetTimetable(ctx, tt.studentID)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestSaveThresholdsSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name       string
		studentID  string
		thresholds domain.ThresholdConfig
	}{
		{
			name:      "global only",
			studentID: "stu-th-001",
			thresholds: domain.ThresholdConfig{
				Global: 75,
			},
		},
		{
			name:      "global with overrides",
			studentID: "stu-th-002",
			thresholds: domain.ThresholdConfig{
				Global:    75,
				Overrides: map[string]int{"CS201": 80, "CH103": 85},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveThresholds(ctx, tt.studentID, tt.thresholds)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			retrieved, err := repo.GetThresholds(ctx, tt.studentID)
			if err != nil {
				t.Fatalf("failed to get thresholds: %v", err)
			}

			if !reflect.DeepEqual(retrieved, tt.thresholds) {
				t.Errorf("expected thresholds %+v, got %+v", tt.thresholds, retrieved)
			}
		})
	}
}

func TestGetThresholdsError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name        string
		studentID   string
		expectedErr error
	}{
		{
			name:        "missing thresholds",
			studentID:   "stu-th-missing",
			expectedErr: domain.ErrThresholdsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetThresholds(ctx, tt.studentID)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestSaveOrderSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	now := time.Now().UTC().Truncate(time.Millisecond)

	tests := []struct {
		name  string
		order *domain.PaymentOrder
	}{
		{
			name: "save pending monthly order",
			order: &domain.PaymentOrder{
				OrderID:   "order-001",
				StudentID: "stu-pay-001",
				Plan:      "premium_monthly",
				Amount:    15000,
				Status:    domain.OrderStatusPending,
				CreatedAt: now,
			},
		},
		{
			name: "save paid yearly order",
			order: &domain.PaymentOrder{
				OrderID:   "order-002",
				StudentID: "stu-pay-002",
				Plan:      "premium_yearly",
				Amount:    120000,
				Status:    domain.OrderStatusPaid,
				CreatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveOrder(ctx, tt.order)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			retrieved, err := repo.GetOrder(ctx, tt.order.OrderID)
			if err != nil {
				t.Fatalf("failed to get order: %v", err)
			}

			if retrieved.OrderID != tt.order.OrderID {
				t.Errorf("expected OrderID %s, got %s", tt.order.OrderID, retrieved.OrderID)
			}
			if retrieved.StudentID != tt.order.StudentID {
				t.Errorf("expected StudentID %s, got %s", tt.order.StudentID, retrieved.StudentID)
			}
			if retrieved.Plan != tt.order.Plan {
				t.Errorf("expected Plan %s, got %s", tt.order.Plan, retrieved.Plan)
			}
			if retrieved.Amount != tt.order.Amount {
				t.Errorf("expected Amount %d, got %d", tt.order.Amount, retrieved.Amount)
			}
			if retrieved.Status != tt.order.Status {
				t.Errorf("expected Status %s, got %s", tt.order.Status, retrieved.Status)
			}
			if !retrieved.CreatedAt.Equal(tt.order.CreatedAt) {
				t.Errorf("expected CreatedAt %v, got %v", tt.order.CreatedAt, retrieved.CreatedAt)
			}

			// Verify order TTL is set
			ttl, err := client.TTL(ctx, "planner:order:"+tt.order.OrderID).Result()
			if err != nil {
				t.Fatalf("failed to get TTL: %v", err)
			}
			if ttl <= 0 || ttl > 48*time.Hour {
				t.Errorf("expected TTL around 48 hours, got %v", ttl)
			}
		})
	}
}

func TestSaveOrderError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name        string
		order       *domain.PaymentOrder
		expectedErr error
	}{
		{
			name:        "nil order",
			order:       nil,
			expectedErr: ErrInvalidOrderData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveOrder(ctx, tt.order)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestGetOrderError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	tests := []struct {
		name        string
		orderID     string
		expectedErr error
	}{
		{
			name:        "non-existing order",
			orderID:     "order-not-found",
			expectedErr: domain.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetOrder(ctx, tt.orderID)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	order := &domain.PaymentOrder{
		OrderID:   "order-update-001",
		StudentID: "stu-pay-003",
		Plan:      "premium_monthly",
		Amount:    15000,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := repo.SaveOrder(ctx, order); err != nil {
		t.Fatalf("failed to save order: %v", err)
	}

	if err := repo.UpdateOrderStatus(ctx, order.OrderID, domain.OrderStatusPaid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	retrieved, err := repo.GetOrder(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("failed to get order: %v", err)
	}

	if retrieved.Status != domain.OrderStatusPaid {
		t.Errorf("expected Status %s, got %s", domain.OrderStatusPaid, retrieved.Status)
	}
	if retrieved.StudentID != order.StudentID {
		t.Errorf("expected StudentID %s, got %s", order.StudentID, retrieved.StudentID)
	}
}

func TestUpdateOrderStatusError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	err := repo.UpdateOrderStatus(ctx, "order-not-found", domain.OrderStatusPaid)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err != domain.ErrOrderNotFound {
		t.Errorf("expected error %v, got %v", domain.ErrOrderNotFound, err)
	}
}

func TestSetPremiumUntilSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	until := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	if err := repo.SetPremiumUntil(ctx, "stu-prem-001", until); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	retrieved, err := repo.PremiumUntil(ctx, "stu-prem-001")
	if err != nil {
		t.Fatalf("failed to get premium until: %v", err)
	}
	if !retrieved.Equal(until) {
		t.Errorf("expected %v, got %v", until, retrieved)
	}

	// Verify the key expires with the subscription
	ttl, err := client.TTL(ctx, "planner:premium:stu-prem-001").Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected TTL around 1 hour, got %v", ttl)
	}
}

func TestPremiumUntilMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPlannerRepository(client)

	retrieved, err := repo.PremiumUntil(ctx, "stu-prem-missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !retrieved.IsZero() {
		t.Errorf("expected zero time for missing premium, got %v", retrieved)
	}
}
