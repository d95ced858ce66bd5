package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/metrics"

	"github.com/google/uuid"
)

// MemoryAlertStore keeps alerts in process memory. Used in tests and in
// storage-less development setups. MarkRead is guarded by the mutex so the
// first write wins under concurrent calls.
type MemoryAlertStore struct {
	mu     sync.Mutex
	alerts []*entity.Alert
	byID   map[string]*entity.Alert
}

func NewMemoryAlertStore() *MemoryAlertStore {
	return &MemoryAlertStore{byID: make(map[string]*entity.Alert)}
}

func (s *MemoryAlertStore) Record(_ context.Context, alert *entity.Alert) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *alert
	stored.ID = uuid.NewString()
	stored.IsRead = false
	stored.ReadAt = nil
	stored.ReadBy = ""
	stored.CreatedAt = time.Now().UTC()

	s.alerts = append(s.alerts, &stored)
	s.byID[stored.ID] = &stored

	metrics.AlertsRecorded.WithLabelValues(string(stored.Type)).Inc()
	return stored.ID, nil
}

func (s *MemoryAlertStore) UnreadCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, a := range s.alerts {
		if !a.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *MemoryAlertStore) Recent(_ context.Context, limit int, unreadOnly bool) ([]entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Alert
	for i := len(s.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		a := s.alerts[i]
		if unreadOnly && a.IsRead {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *MemoryAlertStore) MarkRead(_ context.Context, id, byUser string) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: alert %s", entity.ErrNotFound, id)
	}

	if !a.IsRead {
		now := time.Now().UTC()
		a.IsRead = true
		a.ReadAt = &now
		a.ReadBy = byUser
	}

	snapshot := *a
	return &snapshot, nil
}
