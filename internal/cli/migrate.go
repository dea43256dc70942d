package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quote-run-service/internal/config"
	"quote-run-service/internal/infra/file"
	pgstore "quote-run-service/internal/infra/postgres"
	pgmigrations "quote-run-service/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and optionally seeds a pool.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seedPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath, seedPath)
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed-pool", "", "quotes.json to upsert as the configured pool")
	return cmd
}

func runMigrations(ctx context.Context, configPath, seedPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	if seedPath == "" {
		return nil
	}
	return seedPool(ctx, cfg, seedPath)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

func seedPool(ctx context.Context, cfg config.Config, path string) error {
	pool, err := file.NewPoolLoader(path).LoadPool(ctx, cfg.Pool.ID)
	if err != nil {
		return err
	}
	conn, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := pgstore.NewPoolLoader(conn).SavePool(ctx, cfg.Pool.ID, pool); err != nil {
		return err
	}
	log.Printf("seeded pool %q with %d quotes", cfg.Pool.ID, len(pool.Quotes))
	return nil
}
