// Package schema owns the database layout: versioned migrations embedded in
// the binary, and the fixed catalog seed.
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// advisory lock key shared by every process migrating this database
const migrationLockKey = 727_001

type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Manager struct {
	db  database.PgxIface
	tx  database.Transactor
	log *zap.Logger
}

func NewManager(db database.PgxIface, log *zap.Logger) *Manager {
	return &Manager{
		db:  db,
		tx:  database.NewTransactor(db),
		log: log.With(zap.String("component", "schema")),
	}
}

// Migrations lists the embedded migrations in version order.
func Migrations() ([]Migration, error) {
	return loadMigrations(migrationFS, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ".sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: want NNNN_name.sql", entry.Name())
		}

		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: invalid version %q", entry.Name(), prefix)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration %s: version %d already used by %s", entry.Name(), version, other)
		}
		seen[version] = entry.Name()

		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Migrate applies every embedded migration not yet recorded in
// schema_migrations. Safe to run repeatedly and from several processes.
func (m *Manager) Migrate(ctx context.Context) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}

	return m.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, m.db)

		if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}

		_, err := conn.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version    INTEGER PRIMARY KEY,
				name       TEXT NOT NULL,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`)
		if err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		applied, err := m.appliedVersions(ctx)
		if err != nil {
			return err
		}

		for _, mig := range migrations {
			if applied[mig.Version] {
				continue
			}

			if _, err := conn.Exec(ctx, mig.SQL); err != nil {
				return fmt.Errorf("apply migration %04d_%s: %w", mig.Version, mig.Name, err)
			}

			_, err := conn.Exec(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
				mig.Version, mig.Name)
			if err != nil {
				return fmt.Errorf("record migration %04d_%s: %w", mig.Version, mig.Name, err)
			}

			m.log.Info("Migration applied",
				zap.Int("version", mig.Version),
				zap.String("name", mig.Name),
			)
		}

		return nil
	})
}

func (m *Manager) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := database.Conn(ctx, m.db).Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
