package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"bookshelf/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the books database schema",
		SilenceUsage: true,
	}

	root.AddCommand(
		dbCommand("up", "Apply all pending migrations", func(db *sql.DB, dir string) error {
			return goose.Up(db, dir)
		}),
		dbCommand("down", "Roll back the latest migration", func(db *sql.DB, dir string) error {
			return goose.Down(db, dir)
		}),
		dbCommand("status", "Print the status of all migrations", func(db *sql.DB, dir string) error {
			return goose.Status(db, dir)
		}),
		dbCommand("version", "Print the current schema version", func(db *sql.DB, dir string) error {
			return goose.Version(db, dir)
		}),
		createCommand(),
	)
	return root
}

// dbCommand wraps a goose operation that needs a database connection.
func dbCommand(use, short string, run func(db *sql.DB, dir string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			fsys, dir := migrationsSource()
			goose.SetBaseFS(fsys)
			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			if err := run(db, dir); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", use)
			return nil
		},
	}
}

func createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new SQL migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goose.SetBaseFS(nil)
			dir := createDir()
			if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
				return fmt.Errorf("create: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migration %s created in %s\n", args[0], dir)
			return nil
		},
	}
}

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
