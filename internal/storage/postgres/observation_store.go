package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage"
)

// ObservationStore implements storage.ObservationStore using PostgreSQL.
type ObservationStore struct {
	pool *Pool
}

// NewObservationStore creates a new ObservationStore.
func NewObservationStore(pool *Pool) *ObservationStore {
	return &ObservationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ObservationStore = (*ObservationStore)(nil)

// InsertBulk adds multiple points atomically. Fails entire batch on any
// duplicate (series, observed_at).
func (s *ObservationStore) InsertBulk(ctx context.Context, points []*domain.ObservationPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO observations (series, observed_at, value)
		VALUES ($1, $2, $3)
	`

	for _, p := range points {
		if p == nil || p.Series == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query, p.Series, p.ObservedAt.UTC(), p.Value)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert observation in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListSeries returns the distinct series names, sorted.
func (s *ObservationStore) ListSeries(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT series FROM observations ORDER BY series`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan series name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetBySeries retrieves all points for a series, ordered by date ASC.
func (s *ObservationStore) GetBySeries(ctx context.Context, series string) ([]*domain.ObservationPoint, error) {
	query := `
		SELECT series, observed_at, value
		FROM observations
		WHERE series = $1
		ORDER BY observed_at ASC
	`
	rows, err := s.pool.Query(ctx, query, series)
	if err != nil {
		return nil, fmt.Errorf("query by series: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// GetAll retrieves all points ordered by (series, date) ASC.
func (s *ObservationStore) GetAll(ctx context.Context) ([]*domain.ObservationPoint, error) {
	query := `
		SELECT series, observed_at, value
		FROM observations
		ORDER BY series ASC, observed_at ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all observations: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// GetByDateRange retrieves all points within [start, end] (inclusive).
func (s *ObservationStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.ObservationPoint, error) {
	query := `
		SELECT series, observed_at, value
		FROM observations
		WHERE observed_at >= $1 AND observed_at <= $2
		ORDER BY series ASC, observed_at ASC
	`
	rows, err := s.pool.Query(ctx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// rowScanner matches the pgx.Rows subset needed for scanning.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanObservations(rows rowScanner) ([]*domain.ObservationPoint, error) {
	var result []*domain.ObservationPoint
	for rows.Next() {
		p := &domain.ObservationPoint{}
		if err := rows.Scan(&p.Series, &p.ObservedAt, &p.Value); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		p.ObservedAt = p.ObservedAt.UTC()
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return result, nil
}
