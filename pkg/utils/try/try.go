package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

// Either wraps a pair of (T, error).
//
// When error is nil, such Either is "ok", and the T value is valid.
type Either[T any] struct {
	value T
	err   error
}

// To wraps the pair of return values of a fallible call.
func To[T any](ok T, ng error) Either[T] {
	return Either[T]{value: ok, err: ng}
}

// Get returns the wrapped value & error pair.
func (e Either[T]) Get() (T, error) {
	if e.err != nil {
		return *new(T), e.err
	}
	return e.value, nil
}

// OrFatal returns the wrapped value when the Either is ok.
//
// Otherwise, it calls ftl.Fatal(err).
// If ftl has a "Helper()" method (like *testing.T), that is called before Fatal.
func (e Either[T]) OrFatal(ftl Fataler) T {
	if e.err == nil {
		return e.value
	}
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(e.err)
	return *new(T)
}

// OrDefault returns the wrapped value, or d when the Either holds an error.
func (e Either[T]) OrDefault(d T) T {
	if e.err != nil {
		return d
	}
	return e.value
}
