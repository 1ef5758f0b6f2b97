package palette

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ApplyFunc receives the colors of a newly selected scheme.
type ApplyFunc func(fg, bg colorful.Color)

type selector struct {
	mu      *sync.Mutex
	schemes []Scheme
	index   int
	apply   ApplyFunc
}

// Selector owns the scheme list and which scheme is active. Every successful selection
// calls the apply callback exactly once with the scheme's colors.
type Selector interface {
	// Schemes returns a copy of the available schemes.
	Schemes() []Scheme

	// Current returns the active scheme.
	//
	// Returns:
	//   - Scheme: the selected scheme
	//   - int: its index
	Current() (Scheme, int)

	// Select activates the scheme at index i. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - i: scheme index
	//
	// Returns:
	//   - bool: true if the selection was applied
	Select(i int) bool

	// SelectName activates the scheme with the given name.
	//
	// Parameters:
	//   - name: scheme name
	//
	// Returns:
	//   - bool: true if a scheme with that name exists
	SelectName(name string) bool

	// Next activates the following scheme, wrapping to the first.
	Next()

	// SetApply replaces the apply callback.
	//
	// Parameters:
	//   - fn: callback invoked on every selection
	SetApply(fn ApplyFunc)

	// Reapply invokes the apply callback with the current scheme.
	Reapply()
}

var _ Selector = &selector{}

// NewSelector creates a Selector over DefaultSchemes with the first scheme active.
// The apply callback is not invoked during construction; call Reapply to push the
// initial colors.
//
// Parameters:
//   - options: functional options to configure the selector
//
// Returns:
//   - Selector: the newly created selector
func NewSelector(options ...SelectorBuilderOption) Selector {
	s := &selector{
		mu: &sync.Mutex{},
	}
	for _, option := range options {
		option(s)
	}
	if len(s.schemes) == 0 {
		s.schemes = DefaultSchemes()
	}
	if s.index < 0 || s.index >= len(s.schemes) {
		s.index = 0
	}
	return s
}

func (s *selector) Schemes() []Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Scheme(nil), s.schemes...)
}

func (s *selector) Current() (Scheme, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schemes[s.index], s.index
}

func (s *selector) Select(i int) bool {
	s.mu.Lock()
	if i < 0 || i >= len(s.schemes) {
		s.mu.Unlock()
		return false
	}
	s.index = i
	scheme, apply := s.schemes[i], s.apply
	s.mu.Unlock()

	if apply != nil {
		apply(scheme.Foreground, scheme.Background)
	}
	return true
}

func (s *selector) SelectName(name string) bool {
	s.mu.Lock()
	idx := -1
	for i, scheme := range s.schemes {
		if scheme.Name == name {
			idx = i
			break
		}
	}
	s.mu.Unlock()
	return s.Select(idx)
}

func (s *selector) Next() {
	s.mu.Lock()
	next := (s.index + 1) % len(s.schemes)
	s.mu.Unlock()
	s.Select(next)
}

func (s *selector) SetApply(fn ApplyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply = fn
}

func (s *selector) Reapply() {
	_, i := s.Current()
	s.Select(i)
}
