// Package sticky implements the pinned ancestor-header overlay for
// scrollable tree views: chain derivation, coalesced recomputation, and
// the paint routine that composites the pinned band over scrolled content.
package sticky

import "strings"

// Path identifies a tree node by its node-ID sequence from the root.
// The empty path is the (invisible) tree root itself.
type Path []string

// NewPath builds a path from node IDs, root-most first.
func NewPath(ids ...string) Path {
	p := make(Path, len(ids))
	copy(p, ids)
	return p
}

// ParsePath is the inverse of String. Empty input and "/" both parse to
// the root path.
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "/"))
}

// Parent returns the path with the last element removed.
// The parent of a top-level node is the empty root path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final node ID, or "" for the root path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// IsRoot reports whether p is the tree root's own path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Equal reports value equality of the two node sequences.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}

// Chain is the ordered ancestor lineage currently pinned at the top of
// the view, root-most first. Each entry's parent is the previous entry
// (the first entry is root-level). The chain is a cache derived from the
// tree and scroll offset, never authoritative state.
type Chain []Path

// Equal reports value equality of the two chains.
func (c Chain) Equal(other Chain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether any entry equals p.
func (c Chain) Contains(p Path) bool {
	for _, entry := range c {
		if entry.Equal(p) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the chain.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	for i, p := range c {
		out[i] = p.Clone()
	}
	return out
}
