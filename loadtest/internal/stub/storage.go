package stub

import (
	"net/http"
	"sync"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

// Storage holds what the stub has been told to return and what it has seen.
type Storage struct {
	mu         sync.Mutex
	seeded     *domain.Schedule
	requests   []domain.ScheduleRequest
	failures   int
	failStatus int
}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = nil
	s.requests = nil
	s.failures = 0
	s.failStatus = 0
}

func (s *Storage) Seed(schedule domain.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = &schedule
}

// FailNext makes the next count requests answer with status.
func (s *Storage) FailNext(count, status int) {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = count
	s.failStatus = status
}

// Record stores req and returns the seeded schedule, if any, and the status
// to fail with, or zero.
func (s *Storage) Record(req domain.ScheduleRequest) (*domain.Schedule, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	if s.failures > 0 {
		s.failures--
		return nil, s.failStatus
	}

	if s.seeded == nil {
		return nil, 0
	}
	seeded := *s.seeded
	return &seeded, 0
}

func (s *Storage) Requests() []domain.ScheduleRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduleRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
