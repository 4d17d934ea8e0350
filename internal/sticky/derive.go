package sticky

// DeriveChain computes the ancestor chain that should be pinned when the
// effective top of the viewport sits at canvas line y. It is a pure
// function of the tree snapshot, the offset, and the previously derived
// chain; it never mutates its inputs.
//
// prev participates two ways: as a hysteresis input to the boundary
// tie-break, and as the fallback when the continuity probe rejects the
// freshly built chain during rapid structural change.
func DeriveChain(t Tree, y int, prev Chain) Chain {
	if t == nil || t.RowCount() == 0 || y <= 0 {
		return nil
	}

	row := rowAt(t, y)
	if row < 0 {
		return nil
	}
	firstPath, ok := t.PathForRow(row)
	if !ok {
		return nil
	}

	// Collect ancestors root-most first, excluding the root's own path.
	var chain Chain
	for p := firstPath.Parent(); !p.IsRoot(); p = p.Parent() {
		chain = append(chain, p.Clone())
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	// Boundary tie-break at the top row. If the next row is a child of
	// firstPath, the node at row is itself partially scrolled past and
	// joins the band. If instead the next row leaves firstPath's parent
	// entirely and that parent was not pinned before, the deepest
	// ancestor is not yet established; dropping it avoids flicker while
	// a sticky level enters or exits.
	if nextPath, ok := t.PathForRow(row + 1); ok {
		switch {
		case nextPath.Parent().Equal(firstPath):
			chain = append(chain, firstPath.Clone())
		case !nextPath.Parent().Equal(firstPath.Parent()) && !prev.Contains(firstPath.Parent()):
			if len(chain) > 0 {
				chain = chain[:len(chain)-1]
			}
		}
	}

	// Continuity probe: a growing band consumes that many more rows at
	// the top, so the row just under the new band must be a child of the
	// band's deepest entry. A mismatch means the tree is mid-update;
	// reuse the previous chain instead of a transiently wrong one.
	if len(chain) > len(prev) {
		delta := len(chain) - len(prev)
		probePath, ok := t.PathForRow(row + delta)
		if !ok || !probePath.Parent().Equal(chain[len(chain)-1]) {
			return prev
		}
	}

	return chain
}

// rowAt locates the visible row whose bounds contain canvas line y.
// If y falls in an inter-row gap, the first row at or below y wins; past
// the last row's bottom the result clamps to the last row.
func rowAt(t Tree, y int) int {
	n := t.RowCount()
	if n == 0 {
		return -1
	}

	// Locality probe: guess by nominal height before scanning.
	nominal := t.RowHeight()
	if nominal <= 0 {
		nominal = DefaultRowHeight
	}
	guess := y / nominal
	if guess >= n {
		guess = n - 1
	}
	if guess < 0 {
		guess = 0
	}
	if b, ok := t.BoundsForRow(guess); ok && b.Contains(y) {
		return guess
	}

	// Scan forward for the first row whose bottom lies below y. Start at
	// the probe when it is known to sit above y.
	start := 0
	if b, ok := t.BoundsForRow(guess); ok && b.Bottom() <= y {
		start = guess + 1
	}
	for i := start; i < n; i++ {
		b, ok := t.BoundsForRow(i)
		if !ok {
			continue
		}
		if b.Bottom() > y {
			return i
		}
	}
	return n - 1
}
