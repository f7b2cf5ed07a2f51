package migrations

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/etiennechatreaux/macro-dynamics/internal/storage/postgres"
)

// RunPostgresMigrations applies the embedded observation schema. PostgreSQL
// executes a whole file in one call, so files may hold several statements.
func RunPostgresMigrations(ctx context.Context, pool *postgres.Pool) error {
	files, err := sqlFiles(postgresFS, "postgres")
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := fs.ReadFile(postgresFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}
