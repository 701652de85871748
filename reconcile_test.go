package tuicore

import "testing"

func countKind(patches []Patch, kind PatchKind) int {
	n := 0
	for _, p := range patches {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

func TestDiffIdenticalTreesProduceNoPatches(t *testing.T) {
	tree := Root(Box(Props{}, Text("hello", nil)))
	patches := Diff(tree, tree)
	if len(patches) != 0 {
		t.Fatalf("diffing identical trees produced %d patches, want 0", len(patches))
	}
}

func TestDiffPropsChangeProducesUpdate(t *testing.T) {
	old := Root(Box(Props{"width": 10}))
	new := Root(Box(Props{"width": 20}))
	patches := Diff(old, new)
	if countKind(patches, PatchUpdate) != 1 {
		t.Fatalf("expected exactly one update patch, got %v", patches)
	}
}

func TestDiffTextContentChangeProducesReplace(t *testing.T) {
	old := Root(Text("a", nil))
	new := Root(Text("b", nil))
	patches := Diff(old, new)
	if countKind(patches, PatchReplace) != 1 {
		t.Fatalf("expected a replace patch for changed text, got %v", patches)
	}
}

// TestDiffKeyedReorderIsMoveOnly covers scenario S4: reordering keyed
// children a,b,c -> c,a,b must produce Move patches, not Create/Remove for
// the nodes that merely changed position.
func TestDiffKeyedReorderIsMoveOnly(t *testing.T) {
	child := func(key string) VNode {
		return Box(Props{}, Text(key, nil)).WithKey(key)
	}
	old := Root(child("a"), child("b"), child("c"))
	new := Root(child("c"), child("a"), child("b"))

	patches := Diff(old, new)

	if countKind(patches, PatchCreate) != 0 {
		t.Fatalf("keyed reorder should not create nodes, got %v", patches)
	}
	if countKind(patches, PatchRemove) != 0 {
		t.Fatalf("keyed reorder should not remove nodes, got %v", patches)
	}

	var reorder *Patch
	for i, p := range patches {
		if p.Kind == PatchReorder {
			reorder = &patches[i]
		}
	}
	if reorder == nil {
		t.Fatalf("expected a reorder patch, got %v", patches)
	}
	if len(reorder.Moves) == 0 {
		t.Fatal("reorder patch carries no moves")
	}
}

func TestDiffUnkeyedChildAddedAtEndProducesCreate(t *testing.T) {
	old := Root(Box(Props{}))
	new := Root(Box(Props{}), Box(Props{}))
	patches := Diff(old, new)
	if countKind(patches, PatchCreate) != 1 {
		t.Fatalf("expected one create patch for the appended child, got %v", patches)
	}
	if countKind(patches, PatchRemove) != 0 {
		t.Fatalf("unrelated children should not be removed, got %v", patches)
	}
}

func TestDiffChildRemovedProducesRemove(t *testing.T) {
	old := Root(Box(Props{}), Box(Props{}))
	new := Root(Box(Props{}))
	patches := Diff(old, new)
	if countKind(patches, PatchRemove) != 1 {
		t.Fatalf("expected one remove patch, got %v", patches)
	}
}

// TestDiffSameKeySameTypeDifferentIndexStillMatches exercises the NodeKey
// matching rule directly: a user key pins identity regardless of index.
func TestDiffSameKeySameTypeDifferentIndexStillMatches(t *testing.T) {
	a := NodeKey{TypeID: "box", Index: 0}
	b := NodeKey{TypeID: "box", Index: 3}
	if KeysMatch(a, b) {
		t.Fatal("unkeyed nodes at different indices should not match")
	}

	key := "item"
	ak := NodeKey{UserKey: &key, TypeID: "box", Index: 0}
	bk := NodeKey{UserKey: &key, TypeID: "box", Index: 5}
	if !KeysMatch(ak, bk) {
		t.Fatal("nodes sharing a user key should match regardless of index")
	}
}
