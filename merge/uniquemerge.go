package merge

import (
	"slices"
	"text/template"
)

// NamedEntity is the constraint satisfied by pipeline.ResourceType,
// pipeline.Resource, and pipeline.Job, letting UniqueMerge operate
// generically over all three entity kinds.
type NamedEntity[T any] interface {
	EntityName() string
	Renamed(name string) T
	SemanticEqual(other T) bool
}

// UniqueMerge implements the unique-merge primitive shared by all three
// entity layers: given ordered lists a (left, takes priority) and b
// (right), it returns the merged list and a rewrite map from each name in
// b to its name in the merged list. renameTmpl may be nil, in which case
// collisions use the default "base-NNN" zero-padded scheme.
//
// For each item in b, in order:
//  1. If some entry in the original a is semantically equal to it (ignoring
//     name), a's entry wins: the rewrite map points at a's name and nothing
//     is appended.
//  2. Else if some entry already in the merged list (a, or an earlier
//     append from b) has the same name but different content, a fresh
//     name is minted via uniqueName and a renamed copy is appended.
//  3. Else the item is appended unchanged.
//
// UniqueMerge never mutates a or b; it is safe to call concurrently on
// disjoint inputs. onRename, if non-nil, is invoked once for every case-2
// name clash, after the new name has been chosen.
func UniqueMerge[T NamedEntity[T]](a, b []T, renameTmpl *template.Template, onRename func(oldName, newName string)) ([]T, map[string]string) {
	left := slices.Clone(a)
	merged := slices.Clone(a)

	names := make(map[string]struct{}, len(merged))
	for _, e := range merged {
		names[e.EntityName()] = struct{}{}
	}

	rewrite := make(map[string]string, len(b))

	for _, item := range b {
		if idx := semanticMatchIndex(left, item); idx >= 0 {
			rewrite[item.EntityName()] = left[idx].EntityName()
			continue
		}

		if _, clash := names[item.EntityName()]; clash {
			alt := uniqueName(item.EntityName(), names, renameTmpl)
			renamed := item.Renamed(alt)
			merged = append(merged, renamed)
			names[alt] = struct{}{}
			rewrite[item.EntityName()] = alt
			if onRename != nil {
				onRename(item.EntityName(), alt)
			}
			continue
		}

		merged = append(merged, item)
		names[item.EntityName()] = struct{}{}
		rewrite[item.EntityName()] = item.EntityName()
	}

	return merged, rewrite
}

func semanticMatchIndex[T NamedEntity[T]](list []T, item T) int {
	for i, e := range list {
		if e.SemanticEqual(item) {
			return i
		}
	}
	return -1
}

// uniqueName returns the smallest collision name not already present in
// existing, scanning the counter forward from 0 on every call: a name
// minted in an earlier call is skipped in favor of the next free slot.
func uniqueName(base string, existing map[string]struct{}, renameTmpl *template.Template) string {
	for i := 0; ; i++ {
		alt := formatAlt(base, i, renameTmpl, existing)
		if _, taken := existing[alt]; !taken {
			return alt
		}
	}
}
