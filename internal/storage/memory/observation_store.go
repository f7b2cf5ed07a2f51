// Package memory provides in-memory store implementations for tests and
// fixture-driven pipeline runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage"
)

// ObservationStore is an in-memory implementation of storage.ObservationStore.
type ObservationStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ObservationPoint // keyed by (series, observed_at)
}

// NewObservationStore creates a new in-memory observation store.
func NewObservationStore() *ObservationStore {
	return &ObservationStore{
		data: make(map[string]*domain.ObservationPoint),
	}
}

// Compile-time interface check.
var _ storage.ObservationStore = (*ObservationStore)(nil)

// observationKey generates a unique key for an observation point.
func observationKey(series string, observedAt time.Time) string {
	return fmt.Sprintf("%s|%d", series, observedAt.UTC().Unix())
}

// InsertBulk adds multiple points. Fails entire batch on duplicate.
func (s *ObservationStore) InsertBulk(_ context.Context, points []*domain.ObservationPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: check for duplicates (existing + intra-batch)
	batchKeys := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Series == "" {
			return storage.ErrInvalidInput
		}
		key := observationKey(p.Series, p.ObservedAt)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, p := range points {
		pointCopy := *p
		s.data[observationKey(p.Series, p.ObservedAt)] = &pointCopy
	}

	return nil
}

// ListSeries returns the distinct series names, sorted.
func (s *ObservationStore) ListSeries(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range s.data {
		seen[p.Series] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetBySeries retrieves all points for a series, ordered by date ASC.
func (s *ObservationStore) GetBySeries(_ context.Context, series string) ([]*domain.ObservationPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ObservationPoint
	for _, p := range s.data {
		if p.Series == series {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ObservedAt.Before(result[j].ObservedAt)
	})
	return result, nil
}

// GetAll retrieves all points ordered by (series, date) ASC.
func (s *ObservationStore) GetAll(_ context.Context) ([]*domain.ObservationPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ObservationPoint, 0, len(s.data))
	for _, p := range s.data {
		pointCopy := *p
		result = append(result, &pointCopy)
	}
	sortObservations(result)
	return result, nil
}

// GetByDateRange retrieves all points within [start, end] (inclusive).
func (s *ObservationStore) GetByDateRange(_ context.Context, start, end time.Time) ([]*domain.ObservationPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ObservationPoint
	for _, p := range s.data {
		if !p.ObservedAt.Before(start) && !p.ObservedAt.After(end) {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}
	sortObservations(result)
	return result, nil
}

func sortObservations(points []*domain.ObservationPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Series != points[j].Series {
			return points[i].Series < points[j].Series
		}
		return points[i].ObservedAt.Before(points[j].ObservedAt)
	})
}
