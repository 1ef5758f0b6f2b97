package palette

// SelectorBuilderOption is a functional option for configuring a Selector during construction.
type SelectorBuilderOption func(*selector)

// WithSchemes replaces the default scheme list.
//
// Parameters:
//   - schemes: the schemes to choose from
//
// Returns:
//   - SelectorBuilderOption: functional option to set the schemes
func WithSchemes(schemes ...Scheme) SelectorBuilderOption {
	return func(s *selector) {
		s.schemes = append([]Scheme(nil), schemes...)
	}
}

// WithInitialIndex sets which scheme starts active.
//
// Parameters:
//   - index: scheme index; out-of-range falls back to 0
//
// Returns:
//   - SelectorBuilderOption: functional option to set the starting scheme
func WithInitialIndex(index int) SelectorBuilderOption {
	return func(s *selector) {
		s.index = index
	}
}

// WithApply sets the callback invoked on every selection.
//
// Parameters:
//   - fn: the apply callback
//
// Returns:
//   - SelectorBuilderOption: functional option to set the callback
func WithApply(fn ApplyFunc) SelectorBuilderOption {
	return func(s *selector) {
		s.apply = fn
	}
}
