// Package tuicore: reconcile.go is the reconciler (C5) — it walks an old and
// a new VNode tree in lockstep and produces a minimal patch list, using
// NodeKey identity to decide which subtrees are reused, updated, replaced,
// created, removed, or reordered.
package tuicore

import (
	"strconv"

	"github.com/google/go-cmp/cmp"
)

// PatchKind tags the variant of a reconciliation Patch.
type PatchKind int

const (
	PatchUpdate PatchKind = iota
	PatchReplace
	PatchCreate
	PatchRemove
	PatchReorder
)

func (k PatchKind) String() string {
	switch k {
	case PatchUpdate:
		return "update"
	case PatchReplace:
		return "replace"
	case PatchCreate:
		return "create"
	case PatchRemove:
		return "remove"
	case PatchReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Move is one (from_index, to_index) pair within a Reorder patch.
type Move struct {
	From int
	To   int
}

// Patch describes a single reconciliation edit.
type Patch struct {
	Kind PatchKind

	Key       NodeKey
	ParentKey NodeKey

	Node VNode // Create, Replace

	OldProps Props // Update
	NewProps Props // Update

	Moves []Move // Reorder
}

// Diff compares old and new, assumed already matched as the same logical
// node (e.g. two renders of the same root), and returns the patch list to
// transform old into new.
func Diff(old, new VNode) []Patch {
	return diffNode(old, new)
}

func diffNode(old, new VNode) []Patch {
	if old.Kind != new.Kind || old.TypeID != new.TypeID ||
		(old.Kind == KindText && old.Text != new.Text) {
		return []Patch{{Kind: PatchReplace, Key: old.Key(), Node: new}}
	}

	var patches []Patch
	if !cmp.Equal(old.Props, new.Props, cmp.Comparer(func(a, b Style) bool { return a.Equal(b) })) {
		patches = append(patches, Patch{Kind: PatchUpdate, Key: new.Key(), OldProps: old.Props, NewProps: new.Props})
	}
	patches = append(patches, diffChildren(old.Children, new.Children, new.Key())...)
	return patches
}

// diffChildren implements the keyed-child matching rule: build a probe from
// (user-key?, type-id, index) of old children, match each new child against
// it, and classify the rest as Create/Remove/Reorder.
func diffChildren(old, new []VNode, parentKey NodeKey) []Patch {
	var patches []Patch

	oldByUserKey := make(map[string]int, len(old))
	oldByPosition := make(map[string]int, len(old))
	for i, c := range old {
		if c.UserKey != nil {
			oldByUserKey[c.TypeID+"#"+*c.UserKey] = i
		}
		oldByPosition[c.TypeID+"@"+strconv.Itoa(i)] = i
	}

	matchedOld := make([]bool, len(old))
	newMatch := make([]int, len(new))
	for ni, c := range new {
		idx := -1
		if c.UserKey != nil {
			if oi, ok := oldByUserKey[c.TypeID+"#"+*c.UserKey]; ok && !matchedOld[oi] {
				idx = oi
			}
		} else if oi, ok := oldByPosition[c.TypeID+"@"+strconv.Itoa(ni)]; ok && !matchedOld[oi] {
			idx = oi
		}
		newMatch[ni] = idx
		if idx >= 0 {
			matchedOld[idx] = true
		}
	}

	for oi, used := range matchedOld {
		if !used {
			patches = append(patches, Patch{Kind: PatchRemove, Key: old[oi].Key(), ParentKey: parentKey})
		}
	}

	var moves []Move
	lastIndex := -1
	for ni, oi := range newMatch {
		if oi < 0 {
			patches = append(patches, Patch{Kind: PatchCreate, Node: new[ni], ParentKey: parentKey})
			continue
		}
		patches = append(patches, diffNode(old[oi], new[ni])...)
		if oi < lastIndex {
			moves = append(moves, Move{From: oi, To: ni})
		} else {
			lastIndex = oi
		}
	}

	if len(moves) > 0 {
		patches = append(patches, Patch{Kind: PatchReorder, Key: parentKey, ParentKey: parentKey, Moves: moves})
	}

	return patches
}
