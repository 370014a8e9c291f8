package project

import "slices"

// Sort returns records ordered active first, then by creation time, newest
// first. The sort is stable and the input slice is left untouched.
func Sort(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, compare)
	return out
}

func compare(a, b Record) int {
	if a.Active != b.Active {
		if a.Active {
			return -1
		}
		return 1
	}
	ac, bc := createdOrDefault(a), createdOrDefault(b)
	switch {
	case ac > bc:
		return -1
	case ac < bc:
		return 1
	}
	return 0
}

func createdOrDefault(r Record) int64 {
	if r.CreatedAt == 0 {
		return DefaultCreatedAt
	}
	return r.CreatedAt
}
