package value

import "strings"

// Equal reports whether a and b are structurally equal. Numbers compare by
// numeric content; arrays compare element-by-element in order; maps compare
// key/value pairs regardless of insertion order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolV == b.boolV
	case KindNumber:
		return a.numV == b.numV
	case KindString:
		return a.strV == b.strV
	case KindArray:
		if len(a.arrV) != len(b.arrV) {
			return false
		}
		for i := range a.arrV {
			if !Equal(a.arrV[i], b.arrV[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if a.mapV.Len() != b.mapV.Len() {
			return false
		}
		equal := true
		a.mapV.Range(func(k string, v Value) bool {
			bv, ok := b.mapV.Get(k)
			if !ok || !Equal(v, bv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		return false
	}
}

// Contains implements the polymorphic `contains` operator semantics:
// string-in-string substring, element-in-array by structural equality,
// key-in-map.
func Contains(haystack, needle Value) bool {
	switch haystack.kind {
	case KindString:
		s, _ := haystack.AsString()
		n, ok := needle.AsString()
		if !ok {
			return false
		}
		return containsSubstring(s, n)
	case KindArray:
		for _, item := range haystack.arrV {
			if Equal(item, needle) {
				return true
			}
		}
		return false
	case KindMap:
		key, ok := needle.AsString()
		if !ok {
			return false
		}
		_, found := haystack.mapV.Get(key)
		return found
	default:
		return false
	}
}

func containsSubstring(s, sub string) bool {
	return strings.Contains(s, sub)
}
