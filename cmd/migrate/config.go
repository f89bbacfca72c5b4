package main

import (
	"io/fs"
	"os"

	"bookshelf/db"
)

const defaultDiskDir = "db/migrations"

// migrationsSource returns the filesystem and directory goose reads from.
// MIGRATIONS_DIR selects an on-disk directory; otherwise the embedded files
// are used. A nil filesystem means the OS filesystem.
func migrationsSource() (fs.FS, string) {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return nil, v
	}
	return db.Migrations, db.MigrationsDir
}

// createDir is where new migration files are written.
func createDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return defaultDiskDir
}
