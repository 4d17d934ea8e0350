package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProfileNotFoundError is returned when no profile exists for a directory.
type ProfileNotFoundError struct {
	Dir string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("no profile for directory %q", e.Dir)
}

// ProfileRepository persists and retrieves browser profiles.
type ProfileRepository interface {
	Save(p *Profile) error
	FindByDir(dir string) (*Profile, error)
	Delete(dir string) error
}

const profileColumns = `id, dir, expanded_paths, cursor_path, scroll_offset, show_hidden, created_at, updated_at`

type profileRepository struct {
	db *sql.DB
}

func newProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{db: db}
}

var _ ProfileRepository = (*profileRepository)(nil)

func scanProfile(scanner interface{ Scan(...any) error }) (*profileModel, error) {
	var model profileModel
	err := scanner.Scan(
		&model.ID, &model.Dir, &model.Expanded, &model.CursorPath,
		&model.ScrollOffset, &model.ShowHidden,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Save upserts the profile for p.Dir. A profile saved for the first
// time gets a fresh ID; saving over an existing directory keeps the
// stored ID and creation time.
func (r *profileRepository) Save(p *Profile) error {
	now := time.Now()
	p.UpdatedAt = now
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	model, err := toProfileModel(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(dir) DO UPDATE SET
			expanded_paths = excluded.expanded_paths,
			cursor_path = excluded.cursor_path,
			scroll_offset = excluded.scroll_offset,
			show_hidden = excluded.show_hidden,
			updated_at = excluded.updated_at`,
		model.ID, model.Dir, model.Expanded, model.CursorPath,
		model.ScrollOffset, model.ShowHidden,
		model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// FindByDir retrieves the profile for a directory.
// Returns ProfileNotFoundError if none has been saved.
func (r *profileRepository) FindByDir(dir string) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE dir = ?`, dir,
	)
	model, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ProfileNotFoundError{Dir: dir}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	p, err := model.toProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return p, nil
}

// Delete removes the profile for a directory.
// Returns ProfileNotFoundError if none exists.
func (r *profileRepository) Delete(dir string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE dir = ?`, dir)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &ProfileNotFoundError{Dir: dir}
	}
	return nil
}
