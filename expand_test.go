package tuicore

import "testing"

// TestExpandTreeGivesSiblingComponentsDistinctInstances covers C6's reason
// for keying by InstancePath rather than a bare NodeKey: two occurrences of
// the same component type under different parents must not share state.
func TestExpandTreeGivesSiblingComponentsDistinctInstances(t *testing.T) {
	registry := NewRegistry()
	var seen []int

	counter := func(props Props) VNode {
		sig := UseSignal(func() int { return 0 })
		seen = append(seen, sig.Get())
		return Text("x", nil)
	}

	view := Root(
		Box(Props{}, Comp("Counter", counter, nil)),
		Box(Props{}, Comp("Counter", counter, nil)),
	)

	ExpandTree(view, registry)

	if len(seen) != 2 {
		t.Fatalf("expected both sibling components to render, got %d", len(seen))
	}
	if len(registry.instances) != 2 {
		t.Fatalf("expected 2 distinct component instances, got %d", len(registry.instances))
	}
}

// TestExpandTreePreservesInstanceAcrossRenders covers C7/C6 together: the
// same component occurrence must see the same HookContext (and so the same
// signal value) across repeated expansions.
func TestExpandTreePreservesInstanceAcrossRenders(t *testing.T) {
	registry := NewRegistry()
	var sig Signal[int]

	counter := func(props Props) VNode {
		sig = UseSignal(func() int { return 0 })
		return Text("x", nil)
	}
	view := Root(Comp("Counter", counter, nil))

	ExpandTree(view, registry)
	sig.SetSilent(5)
	ExpandTree(view, registry)

	if got := sig.Get(); got != 5 {
		t.Fatalf("signal value = %d, want 5 (state should persist across renders for the same instance)", got)
	}
	if len(registry.instances) != 1 {
		t.Fatalf("expected exactly 1 instance reused across renders, got %d", len(registry.instances))
	}
}

// TestCommitInstancesDisposesUnmountedComponents covers the unmount path:
// a component no longer present in the next render must have its effect
// cleanup run and be evicted from the registry.
func TestCommitInstancesDisposesUnmountedComponents(t *testing.T) {
	registry := NewRegistry()
	cleanedUp := false
	show := true

	child := func(props Props) VNode {
		UseEffect(func() func() {
			return func() { cleanedUp = true }
		}, []any{})
		return Text("child", nil)
	}

	render := func() []*ComponentInstance {
		registry.BeginRender()
		var view VNode
		if show {
			view = Root(Comp("Child", child, nil))
		} else {
			view = Root()
		}
		res := ExpandTreeWithRuntime(view, registry, nil)
		CommitInstances(registry, res.Touched)
		return res.Touched
	}

	render()
	if cleanedUp {
		t.Fatal("cleanup ran before the component ever unmounted")
	}

	show = false
	render()

	if !cleanedUp {
		t.Fatal("unmounted component's effect cleanup did not run")
	}
	if len(registry.instances) != 0 {
		t.Fatalf("expected the unmounted instance to be evicted, registry still holds %d", len(registry.instances))
	}
}

// TestRegistryClearDisposesEveryInstance covers app-shutdown teardown.
func TestRegistryClearDisposesEveryInstance(t *testing.T) {
	registry := NewRegistry()
	cleanupCount := 0

	child := func(props Props) VNode {
		UseEffect(func() func() {
			return func() { cleanupCount++ }
		}, []any{})
		return Text("x", nil)
	}

	view := Root(Comp("A", child, nil), Comp("B", child, nil))
	res := ExpandTreeWithRuntime(view, registry, nil)
	CommitInstances(registry, res.Touched)

	registry.Clear()

	if cleanupCount != 2 {
		t.Fatalf("cleanup ran %d times after Clear, want 2", cleanupCount)
	}
	if len(registry.instances) != 0 {
		t.Fatalf("registry still holds %d instances after Clear", len(registry.instances))
	}
}

func TestPathForBuildsSlashJoinedInstancePaths(t *testing.T) {
	root := NodeKey{TypeID: "Outer", Index: 0}
	child := NodeKey{TypeID: "Inner", Index: 1}

	rootPath := pathFor("", root)
	childPath := pathFor(rootPath, child)

	if rootPath != InstancePath(root.String()) {
		t.Fatalf("root path = %q, want %q", rootPath, root.String())
	}
	if childPath != InstancePath(root.String()+"/"+child.String()) {
		t.Fatalf("child path = %q, want %q/%q joined", childPath, root.String(), child.String())
	}
	if !childPath.hasPrefix(rootPath) {
		t.Fatal("child instance path should carry its parent's path as a prefix")
	}
}
