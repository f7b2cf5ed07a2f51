package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage"
)

// FeatureStore implements storage.FeatureStore using ClickHouse.
type FeatureStore struct {
	conn *Conn
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(conn *Conn) *FeatureStore {
	return &FeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate.
// ClickHouse MergeTree does not enforce uniqueness, so duplicates are
// detected with explicit checks before the batch insert.
func (s *FeatureStore) InsertBulk(ctx context.Context, points []*domain.FeaturePoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		recipe     string
		observedAt int64
		column     string
	}
	seen := make(map[key]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Recipe == "" || p.Column == "" {
			return storage.ErrInvalidInput
		}
		k := key{p.Recipe, p.ObservedAt.UTC().Unix(), p.Column}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing rows. One query per recipe in
	// the batch, rather than per point.
	recipes := make(map[string]struct{})
	for _, p := range points {
		recipes[p.Recipe] = struct{}{}
	}
	for recipe := range recipes {
		existing, err := s.existingKeys(ctx, recipe)
		if err != nil {
			return fmt.Errorf("check existing rows: %w", err)
		}
		for _, p := range points {
			if p.Recipe != recipe {
				continue
			}
			k := key{p.Recipe, p.ObservedAt.UTC().Unix(), p.Column}
			if _, exists := existing[fmt.Sprintf("%d|%s", k.observedAt, k.column)]; exists {
				return storage.ErrDuplicateKey
			}
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO feature_rows (recipe, observed_at, feature, value)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.Recipe, p.ObservedAt.UTC(), p.Column, p.Value); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// existingKeys returns the (observed_at, column) keys already stored for a recipe.
func (s *FeatureStore) existingKeys(ctx context.Context, recipe string) (map[string]struct{}, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT observed_at, feature FROM feature_rows WHERE recipe = ?
	`, recipe)
	if err != nil {
		return nil, fmt.Errorf("query existing keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var observedAt time.Time
		var column string
		if err := rows.Scan(&observedAt, &column); err != nil {
			return nil, fmt.Errorf("scan existing key: %w", err)
		}
		keys[fmt.Sprintf("%d|%s", observedAt.UTC().Unix(), column)] = struct{}{}
	}
	return keys, rows.Err()
}

// GetByRecipe retrieves all points for a recipe, ordered by (date, column) ASC.
func (s *FeatureStore) GetByRecipe(ctx context.Context, recipe string) ([]*domain.FeaturePoint, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT recipe, observed_at, feature, value
		FROM feature_rows
		WHERE recipe = ?
		ORDER BY observed_at ASC, feature ASC
	`, recipe)
	if err != nil {
		return nil, fmt.Errorf("query by recipe: %w", err)
	}
	defer rows.Close()

	return scanFeatures(rows)
}

// GetByRecipeAndRange retrieves points for a recipe within [start, end] (inclusive).
func (s *FeatureStore) GetByRecipeAndRange(ctx context.Context, recipe string, start, end time.Time) ([]*domain.FeaturePoint, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT recipe, observed_at, feature, value
		FROM feature_rows
		WHERE recipe = ? AND observed_at >= ? AND observed_at <= ?
		ORDER BY observed_at ASC, feature ASC
	`, recipe, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query by recipe and range: %w", err)
	}
	defer rows.Close()

	return scanFeatures(rows)
}

func scanFeatures(rows driver.Rows) ([]*domain.FeaturePoint, error) {
	var result []*domain.FeaturePoint
	for rows.Next() {
		p := &domain.FeaturePoint{}
		if err := rows.Scan(&p.Recipe, &p.ObservedAt, &p.Column, &p.Value); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		p.ObservedAt = p.ObservedAt.UTC()
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}
	return result, nil
}
