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

// FeatureStore is an in-memory implementation of storage.FeatureStore.
type FeatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FeaturePoint // keyed by (recipe, observed_at, column)
}

// NewFeatureStore creates a new in-memory feature store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{
		data: make(map[string]*domain.FeaturePoint),
	}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// featureKey generates a unique key for a feature point.
func featureKey(recipe string, observedAt time.Time, column string) string {
	return fmt.Sprintf("%s|%d|%s", recipe, observedAt.UTC().Unix(), column)
}

// InsertBulk adds multiple points. Fails entire batch on duplicate.
func (s *FeatureStore) InsertBulk(_ context.Context, points []*domain.FeaturePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Recipe == "" || p.Column == "" {
			return storage.ErrInvalidInput
		}
		key := featureKey(p.Recipe, p.ObservedAt, p.Column)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		pointCopy := *p
		s.data[featureKey(p.Recipe, p.ObservedAt, p.Column)] = &pointCopy
	}

	return nil
}

// GetByRecipe retrieves all points for a recipe, ordered by (date, column) ASC.
func (s *FeatureStore) GetByRecipe(_ context.Context, recipe string) ([]*domain.FeaturePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeaturePoint
	for _, p := range s.data {
		if p.Recipe == recipe {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}
	sortFeatures(result)
	return result, nil
}

// GetByRecipeAndRange retrieves points for a recipe within [start, end] (inclusive).
func (s *FeatureStore) GetByRecipeAndRange(_ context.Context, recipe string, start, end time.Time) ([]*domain.FeaturePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeaturePoint
	for _, p := range s.data {
		if p.Recipe == recipe && !p.ObservedAt.Before(start) && !p.ObservedAt.After(end) {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}
	sortFeatures(result)
	return result, nil
}

func sortFeatures(points []*domain.FeaturePoint) {
	sort.Slice(points, func(i, j int) bool {
		if !points[i].ObservedAt.Equal(points[j].ObservedAt) {
			return points[i].ObservedAt.Before(points[j].ObservedAt)
		}
		return points[i].Column < points[j].Column
	})
}
