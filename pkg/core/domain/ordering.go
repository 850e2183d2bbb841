package domain

import (
	"cmp"
	"iter"
	"slices"
)

// VisibleLinks yields links in display order: pinned links first, then by
// ascending Order, keeping input order on ties. The public view
// (editable == false) skips disabled links. The sequence can be ranged over
// any number of times and reflects links as they were when it was created.
func VisibleLinks(links []Link, editable bool) iter.Seq[Link] {
	sorted := slices.Clone(links)
	slices.SortStableFunc(sorted, compareDisplay)

	return func(yield func(Link) bool) {
		for _, l := range sorted {
			if !editable && !l.Enabled {
				continue
			}
			if !yield(l) {
				return
			}
		}
	}
}

func compareDisplay(a, b Link) int {
	if a.Pinned != b.Pinned {
		if a.Pinned {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Order, b.Order)
}

// Reorder moves the link at from to position to and renumbers Order to the
// 1-based position of every link. Pin state is left alone, so a pinned link
// moved below unpinned ones still displays first.
func Reorder(links []Link, from, to int) ([]Link, error) {
	n := len(links)
	if from < 0 || from >= n {
		return nil, newValidationError("from", "index out of range")
	}
	if to < 0 || to >= n {
		return nil, newValidationError("to", "index out of range")
	}

	out := slices.Clone(links)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	renumber(out)
	return out, nil
}

// ReorderByIDs arranges links in the order given by ids, which must name
// every link exactly once.
func ReorderByIDs(links []Link, ids []string) ([]Link, error) {
	if len(ids) != len(links) {
		return nil, newValidationError("ids", "must list every link exactly once")
	}

	byID := make(map[string]Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	out := make([]Link, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Resource: "link", ID: id}
		}
		if _, dup := seen[id]; dup {
			return nil, newValidationError("ids", "duplicate link id "+id)
		}
		seen[id] = struct{}{}
		out = append(out, l)
	}
	renumber(out)
	return out, nil
}

func renumber(links []Link) {
	for i := range links {
		links[i].Order = i + 1
	}
}
