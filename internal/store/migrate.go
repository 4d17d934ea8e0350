package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const versionTable = "schema_migrations"

// sqliteDriver adapts an already-open SQLite connection to the
// golang-migrate database.Driver contract. The bundled sqlite drivers
// register their own database/sql driver under the "sqlite3" name,
// which collides with the ncruces driver, so we bring our own.
type sqliteDriver struct {
	db *sql.DB
}

func newSQLiteDriver(db *sql.DB) (*sqliteDriver, error) {
	d := &sqliteDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *sqliteDriver) ensureVersionTable() error {
	_, err := d.db.Exec(
		`CREATE TABLE IF NOT EXISTS ` + versionTable + ` (version INTEGER NOT NULL, dirty INTEGER NOT NULL)`,
	)
	return err
}

func (d *sqliteDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("url-based open is not supported, use NewDB")
}

func (d *sqliteDriver) Close() error { return nil }

// Lock and Unlock are no-ops. The connection carries a busy timeout and
// the browser is the only writer.
func (d *sqliteDriver) Lock() error   { return nil }
func (d *sqliteDriver) Unlock() error { return nil }

func (d *sqliteDriver) Run(migration io.Reader) error {
	stmts, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}
	if _, err := d.db.Exec(string(stmts)); err != nil {
		return fmt.Errorf("failed to apply migration: %w", err)
	}
	return nil
}

func (d *sqliteDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM ` + versionTable); err != nil {
		_ = tx.Rollback()
		return err
	}
	if version >= 0 {
		if _, err := tx.Exec(
			`INSERT INTO `+versionTable+` (version, dirty) VALUES (?, ?)`, version, dirty,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (d *sqliteDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	err := d.db.QueryRow(`SELECT version, dirty FROM `+versionTable+` LIMIT 1`).
		Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty, nil
}

func (d *sqliteDriver) Drop() error {
	rows, err := d.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	)
	if err != nil {
		return err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for _, table := range tables {
		if _, err := d.db.Exec(`DROP TABLE ` + table); err != nil {
			return err
		}
	}
	return nil
}

// runMigrations brings the schema up to the latest embedded migration.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	drv, err := newSQLiteDriver(conn)
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
