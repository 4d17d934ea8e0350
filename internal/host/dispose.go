package host

// DisposeScope ties listener registrations and pending callbacks to the
// lifetime of an owning host context. Disposal runs registered funcs in
// LIFO order, exactly once; anything registered after disposal runs
// immediately.
type DisposeScope struct {
	fns      []func()
	disposed bool
}

// NewDisposeScope creates an empty scope.
func NewDisposeScope() *DisposeScope {
	return &DisposeScope{}
}

// OnDispose registers fn to run when the scope tears down.
func (s *DisposeScope) OnDispose(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.fns = append(s.fns, fn)
}

// Disposed reports whether the scope has torn down.
func (s *DisposeScope) Disposed() bool {
	return s.disposed
}

// Dispose tears the scope down synchronously. Listeners detach and
// pending callbacks cancel before Dispose returns.
func (s *DisposeScope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}
