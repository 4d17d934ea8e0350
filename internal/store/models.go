package store

import (
	"encoding/json"
	"time"

	"github.com/perchtree/perch/internal/sticky"
)

// Profile is the persisted view state for one browsed directory.
type Profile struct {
	ID           string
	Dir          string
	Expanded     []sticky.Path
	CursorPath   sticky.Path
	ScrollOffset int
	ShowHidden   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// profileModel is the database row for the profiles table. Time values
// are Unix timestamps, expanded paths are JSON encoded.
type profileModel struct {
	ID           string
	Dir          string
	Expanded     string
	CursorPath   *string // nullable
	ScrollOffset int
	ShowHidden   bool
	CreatedAt    int64
	UpdatedAt    int64
}

func toProfileModel(p *Profile) (*profileModel, error) {
	expanded := make([][]string, len(p.Expanded))
	for i, path := range p.Expanded {
		expanded[i] = []string(path)
	}
	encoded, err := json.Marshal(expanded)
	if err != nil {
		return nil, err
	}

	m := &profileModel{
		ID:           p.ID,
		Dir:          p.Dir,
		Expanded:     string(encoded),
		ScrollOffset: p.ScrollOffset,
		ShowHidden:   p.ShowHidden,
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}
	if len(p.CursorPath) > 0 {
		cursor := p.CursorPath.String()
		m.CursorPath = &cursor
	}
	return m, nil
}

func (m *profileModel) toProfile() (*Profile, error) {
	var segments [][]string
	if err := json.Unmarshal([]byte(m.Expanded), &segments); err != nil {
		return nil, err
	}
	expanded := make([]sticky.Path, len(segments))
	for i, s := range segments {
		expanded[i] = sticky.NewPath(s...)
	}

	p := &Profile{
		ID:           m.ID,
		Dir:          m.Dir,
		Expanded:     expanded,
		ScrollOffset: m.ScrollOffset,
		ShowHidden:   m.ShowHidden,
		CreatedAt:    time.Unix(m.CreatedAt, 0),
		UpdatedAt:    time.Unix(m.UpdatedAt, 0),
	}
	if m.CursorPath != nil {
		p.CursorPath = sticky.ParsePath(*m.CursorPath)
	}
	return p, nil
}
