package cmp

// SliceEq tests two slices have the same content in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith is SliceEq in some equivalency given as pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq tests two slices have the same content, ignoring order
// and multiplicity of duplicated elements.
func SliceContentEq[T comparable](a []T, b []T) bool {
	return sliceSubset(a, b) && sliceSubset(b, a)
}

// SliceContentEqWith is SliceContentEq in some equivalency given as pred.
func SliceContentEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	return sliceSubsetWith(a, b, pred) &&
		sliceSubsetWith(b, a, func(b U, a T) bool { return pred(a, b) })
}

func sliceSubset[T comparable](a []T, b []T) bool {
	return sliceSubsetWith(a, b, func(a, b T) bool { return a == b })
}

// a ⊇ b, where element equivalency is defined by pred. Ordering does not matter.
func sliceSubsetWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
B:
	for _, be := range b {
		for _, ae := range a {
			if pred(ae, be) {
				continue B
			}
		}
		return false
	}
	return true
}
