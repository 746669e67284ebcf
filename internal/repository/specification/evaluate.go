package specification

import "sort"

// Evaluate filters and sorts records the way the SQL backend would.
func Evaluate[T Record](records []T, specs ...Specification) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchAll(r, specs) {
			out = append(out, r)
		}
	}

	var orderings []Ordering
	for _, s := range specs {
		if o, ok := s.(Ordering); ok {
			orderings = append(orderings, o)
		}
	}
	if len(orderings) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range orderings {
			if c := o.Compare(out[i], out[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

func matchAll(r Record, specs []Specification) bool {
	for _, s := range specs {
		if !s.Match(r) {
			return false
		}
	}
	return true
}
