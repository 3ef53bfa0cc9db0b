package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/arklim/social-platform-reviews/internal/infra/config"
	"github.com/arklim/social-platform-reviews/internal/infra/database/migrations"
)

// Migrate applies the embedded goose migrations. It opens a dedicated
// database/sql connection because goose does not speak pgx pools.
func Migrate(ctx context.Context, cfg config.PostgresSettings) error {
	db, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
