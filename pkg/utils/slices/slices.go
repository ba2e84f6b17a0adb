package slices

import "sort"

// Map generates a new slice by applying mapper to each element.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	mapped := make([]R, len(sli))
	for i, v := range sli {
		mapped[i] = mapper(v)
	}
	return mapped
}

// Filter returns elements for which predicator holds, keeping order.
func Filter[T any](sli []T, predicator func(T) bool) []T {
	filtered := []T{}
	for _, v := range sli {
		if predicator(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// First returns the first element for which predicator holds.
//
// When no element matches, it returns (zero-value, false).
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Contains tests whether sli has an element for which predicator holds.
func Contains[T any](sli []T, predicator func(T) bool) bool {
	_, ok := First(sli, predicator)
	return ok
}

// Sorted returns a sorted copy of sli. The passed slice is left as it is.
func Sorted[T any](sli []T, less func(a, b T) bool) []T {
	sorted := make([]T, len(sli))
	copy(sorted, sli)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Concat concatenates slices into a single new slice.
func Concat[T any](sli ...[]T) []T {
	length := 0
	for _, s := range sli {
		length += len(s)
	}
	cat := make([]T, 0, length)
	for _, s := range sli {
		cat = append(cat, s...)
	}
	return cat
}

// ToMap converts a slice to a map keyed with getkey.
//
// When two elements share a key, the later one wins.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := make(map[K]T, len(sli))
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

// KeysOf lists the keys of a map. Order is not defined.
func KeysOf[T any, K comparable](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
