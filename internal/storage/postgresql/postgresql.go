package postgresql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// New creates a lazily connected pool: the application starts even when the
// database is down, and the first query reports the failure.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "storage.postgresql.New"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg.LazyConnect = true

	db, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}

// Migrator applies the embedded schema once per file.
type Migrator struct {
	db  *sql.DB
	log *slog.Logger
}

func NewMigrator(dsn string, log *slog.Logger) (*Migrator, error) {
	const op = "storage.postgresql.NewMigrator"

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Migrator{db: db, log: log}, nil
}

// Migrations returns the embedded migration names in apply order.
func Migrations() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

func (m *Migrator) Run(ctx context.Context) error {
	const op = "storage.postgresql.Migrator.Run"

	log := m.log.With(slog.String("op", op))

	if _, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+migrationTable+` (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("%s: create migrations table: %w", op, err)
	}

	names, err := Migrations()
	if err != nil {
		return fmt.Errorf("%s: read migrations: %w", op, err)
	}

	for _, name := range names {
		applied, err := m.isApplied(ctx, name)
		if err != nil {
			return fmt.Errorf("%s: check %s: %w", op, name, err)
		}
		if applied {
			log.Debug("migration already applied", slog.String("name", name))
			continue
		}

		body, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("%s: read %s: %w", op, name, err)
		}

		if err := m.apply(ctx, name, string(body)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		log.Info("migration applied", slog.String("name", name))
	}

	return nil
}

func (m *Migrator) apply(ctx context.Context, name, body string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("exec %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+migrationTable+" (name) VALUES ($1)", name,
	); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}

	return tx.Commit()
}

func (m *Migrator) isApplied(ctx context.Context, name string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+migrationTable+" WHERE name = $1", name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
