package ptr

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for an empty string, otherwise a pointer to it
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind p or the zero value for nil
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
