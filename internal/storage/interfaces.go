// Package storage defines persistence interfaces for raw observations and
// derived features. Implementations live in the memory, postgres and
// clickhouse subpackages.
package storage

import (
	"context"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// ObservationStore provides access to raw macro observations (long form).
// Observations are append-only, keyed by (series, observed_at).
type ObservationStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate key.
	InsertBulk(ctx context.Context, points []*domain.ObservationPoint) error

	// ListSeries returns the distinct series names, sorted.
	ListSeries(ctx context.Context) ([]string, error)

	// GetBySeries retrieves all points for a series, ordered by date ASC.
	GetBySeries(ctx context.Context, series string) ([]*domain.ObservationPoint, error)

	// GetAll retrieves all points ordered by (series, date) ASC.
	GetAll(ctx context.Context) ([]*domain.ObservationPoint, error)

	// GetByDateRange retrieves all points within [start, end] (inclusive),
	// ordered by (series, date) ASC.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.ObservationPoint, error)
}

// FeatureStore provides access to derived feature rows (long form).
// Rows are append-only, keyed by (recipe, observed_at, column).
type FeatureStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate key.
	InsertBulk(ctx context.Context, points []*domain.FeaturePoint) error

	// GetByRecipe retrieves all points for a recipe, ordered by (date, column) ASC.
	GetByRecipe(ctx context.Context, recipe string) ([]*domain.FeaturePoint, error)

	// GetByRecipeAndRange retrieves points for a recipe within [start, end]
	// (inclusive), ordered by (date, column) ASC.
	GetByRecipeAndRange(ctx context.Context, recipe string, start, end time.Time) ([]*domain.FeaturePoint, error)
}
