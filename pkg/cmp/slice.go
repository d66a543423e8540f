package cmp

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

// Check A and B hold the same elements, ignoring ordering.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	rest := make([]T, len(b))
	copy(rest, b)

	for _, va := range a {
		found := false
		for nth, vb := range rest {
			if va == vb {
				rest = append(rest[:nth], rest[nth+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
