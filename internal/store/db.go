// Package store persists browser profiles to SQLite. A profile captures
// the view state of one browsed directory so the next session can pick
// up where the last one left off.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB owns the SQLite connection and hands out repositories.
type DB struct {
	conn     *sql.DB
	profiles *profileRepository
}

// NewDB opens (creating if needed) the database at path and brings the
// schema up to date. An existing database file is backed up to
// path+".bak" before migrations run.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := backupFile(path, path+".bak"); err != nil {
			return nil, fmt.Errorf("failed to back up database: %w", err)
		}
	}

	dsn := "file:" + path +
		"?_pragma=journal_mode(wal)" +
		"&_pragma=foreign_keys(on)" +
		"&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{
		conn:     conn,
		profiles: newProfileRepository(conn),
	}, nil
}

// Profiles returns the profile repository.
func (d *DB) Profiles() ProfileRepository { return d.profiles }

// Connection exposes the underlying *sql.DB.
func (d *DB) Connection() *sql.DB { return d.conn }

// Close closes the database connection.
func (d *DB) Close() error { return d.conn.Close() }

func backupFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
