package stub

import (
	"crypto/sha256"
	"fmt"
	"math"
	"sync"
)

// Storage holds seeded snapshots and received alerts per run, keyed by the
// run ID the driver chooses. Everything lives in memory; a reset drops the
// run.
type Storage struct {
	mu        sync.RWMutex
	snapshots map[string]map[string][]SubjectSeed // runID -> studentID -> subjects
	alerts    map[string][]ReceivedAlert          // runID -> alerts in arrival order
}

func NewStorage() *Storage {
	return &Storage{
		snapshots: make(map[string]map[string][]SubjectSeed),
		alerts:    make(map[string][]ReceivedAlert),
	}
}

func (s *Storage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, runID)
	delete(s.alerts, runID)
}

func (s *Storage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = make(map[string]map[string][]SubjectSeed)
	s.alerts = make(map[string][]ReceivedAlert)
}

// Seed generates deterministic snapshots for the given students and
// returns the total subject count. Reseeding a student replaces their
// snapshot.
func (s *Storage) Seed(runID string, students []SeedStudent) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshots[runID] == nil {
		s.snapshots[runID] = make(map[string][]SubjectSeed)
	}

	total := 0
	for _, student := range students {
		subjects := generateSubjects(runID, student)
		s.snapshots[runID][student.StudentID] = subjects
		total += len(subjects)
	}

	return total
}

func (s *Storage) Snapshot(runID, studentID string) ([]SubjectSeed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects, ok := s.snapshots[runID][studentID]
	return subjects, ok
}

func (s *Storage) RecordAlert(runID string, alert ReceivedAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[runID] = append(s.alerts[runID], alert)
}

func (s *Storage) Stats(runID string) StatsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := s.alerts[runID]

	byStudent := make(map[string]int)
	for _, alert := range alerts {
		byStudent[alert.StudentID]++
	}

	return StatsResponse{
		RunID:        runID,
		StudentCount: len(s.snapshots[runID]),
		AlertCount:   len(alerts),
		ByStudent:    byStudent,
	}
}

// generateSubjects derives a snapshot from a hash of the run and student
// so repeated seeds produce identical data. The first LowCount subjects
// land between 50% and 69%, the rest between 80% and 97%.
func generateSubjects(runID string, student SeedStudent) []SubjectSeed {
	subjects := make([]SubjectSeed, 0, student.SubjectCount)

	for i := 0; i < student.SubjectCount; i++ {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%d", runID, student.StudentID, i)))
		seed := int(sum[0])<<8 | int(sum[1])

		total := 30 + seed%30

		var attended int
		if i < student.LowCount {
			attended = total * (50 + seed%20) / 100
		} else {
			attended = total * (80 + seed%18) / 100
		}

		subjects = append(subjects, SubjectSeed{
			Name:       fmt.Sprintf("Subject %03d", i+1),
			Code:       fmt.Sprintf("SUB%03d", i+1),
			Attended:   attended,
			Total:      total,
			Percentage: math.Round(float64(attended)/float64(total)*1000) / 10,
		})
	}

	return subjects
}
