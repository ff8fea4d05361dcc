package migration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	infra "cv-portfolio/pkg/infrastructure"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, db infra.DB) error
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, db infra.DB) error {
	slog.Info("Starting database migrations", "dialect", db.Dialect())

	migrations := []Migration{
		{Name: "create_profiles", Up: statements(createProfiles)},
		{Name: "create_section_entries", Up: statements(createSectionEntries)},
		{Name: "create_garage_items", Up: statements(createGarageItems)},
		{Name: "add_single_active_profile_index", Up: addSingleActiveIndex},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, db); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Debug("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// typeNames fills the dialect-specific column types into the DDL below.
func typeNames(d infra.Dialect) *strings.Replacer {
	if d == infra.SQLite {
		return strings.NewReplacer(
			"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{ts}}", "TIMESTAMP",
		)
	}
	return strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{ts}}", "TIMESTAMPTZ",
	)
}

func statements(ddl ...string) func(ctx context.Context, db infra.DB) error {
	return func(ctx context.Context, db infra.DB) error {
		r := typeNames(db.Dialect())
		for _, stmt := range ddl {
			if err := db.Exec(ctx, r.Replace(stmt)); err != nil {
				return err
			}
		}
		return nil
	}
}

var createProfiles = `
	CREATE TABLE IF NOT EXISTS profiles (
		id {{pk}},
		summary VARCHAR(200),
		photo VARCHAR(255),
		active BOOLEAN NOT NULL DEFAULT FALSE,
		printing_allowed BOOLEAN NOT NULL DEFAULT FALSE,
		last_names VARCHAR(60) NOT NULL,
		first_names VARCHAR(60) NOT NULL,
		nationality VARCHAR(50),
		birth_place VARCHAR(100),
		birth_date DATE NOT NULL,
		national_id VARCHAR(10) NOT NULL UNIQUE,
		sex VARCHAR(1),
		marital_status VARCHAR(50),
		driver_license VARCHAR(10),
		phone VARCHAR(20),
		landline VARCHAR(20),
		work_address VARCHAR(120),
		home_address VARCHAR(120),
		website VARCHAR(200),
		created_at {{ts}} NOT NULL,
		updated_at {{ts}}
	);
`

var createSectionEntries = `
	CREATE TABLE IF NOT EXISTS section_entries (
		id {{pk}},
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		section VARCHAR(16) NOT NULL,
		title VARCHAR(200) NOT NULL,
		organization VARCHAR(200),
		location VARCHAR(120),
		description TEXT,
		category VARCHAR(32),
		hours INTEGER NOT NULL DEFAULT 0,
		start_date DATE,
		end_date DATE,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		certificate_pdf VARCHAR(255),
		certificate_image VARCHAR(255),
		created_at {{ts}} NOT NULL,
		CHECK (section IN ('exp', 'cursos', 'reconoc', 'prod_acad', 'prod_lab'))
	);
`

var createGarageItems = `
	CREATE TABLE IF NOT EXISTS garage_items (
		id {{pk}},
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		item_condition VARCHAR(16) NOT NULL,
		description TEXT,
		price_cents BIGINT NOT NULL CHECK (price_cents BETWEEN 1 AND 9999999),
		item_date DATE NOT NULL,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		photo VARCHAR(255),
		created_at {{ts}} NOT NULL
	);
`

// addSingleActiveIndex backs the clear-others-on-save rule with a partial
// unique index. Failure is logged, not fatal: the save path keeps the rule on
// its own.
func addSingleActiveIndex(ctx context.Context, db infra.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_section_entries_profile ON section_entries(profile_id, section)`,
		`CREATE INDEX IF NOT EXISTS idx_garage_items_profile ON garage_items(profile_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_profiles_single_active ON profiles(active) WHERE active`,
	}
	for _, q := range queries {
		if err := db.Exec(ctx, q); err != nil {
			slog.Warn("Error creating index (continuing)", "query", q, "error", err)
		}
	}
	return nil
}
