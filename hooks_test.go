package tuicore

import (
	"testing"
)

// withHook runs fn with a fresh HookContext installed as current, returning
// the context so the test can drive further render passes against it.
func withHook(t *testing.T, fn func()) *HookContext {
	t.Helper()
	h := newHookContext()
	h.beginRender(func() {})
	withRenderContext(h, nil, func() VNode {
		fn()
		return VNode{}
	})
	h.endRender()
	return h
}

func TestUseSignalInitializesOnce(t *testing.T) {
	calls := 0
	var sig Signal[int]
	h := newHookContext()

	render := func() {
		h.beginRender(func() {})
		withRenderContext(h, nil, func() VNode {
			sig = UseSignal(func() int { calls++; return 42 })
			return VNode{}
		})
		h.endRender()
	}

	render()
	render()

	if calls != 1 {
		t.Fatalf("init() called %d times, want 1", calls)
	}
	if got := sig.Get(); got != 42 {
		t.Fatalf("Get() = %d, want 42", got)
	}
}

func TestSignalSetRequestsRender(t *testing.T) {
	h := newHookContext()
	requested := 0
	h.beginRender(func() { requested++ })

	var sig Signal[int]
	withRenderContext(h, nil, func() VNode {
		sig = UseSignal(func() int { return 0 })
		return VNode{}
	})
	h.endRender()

	sig.Set(1)
	if requested != 1 {
		t.Fatalf("requestRender called %d times after Set, want 1", requested)
	}
}

func TestSignalSetSilentDoesNotRequestRender(t *testing.T) {
	h := newHookContext()
	requested := 0
	h.beginRender(func() { requested++ })

	var sig Signal[int]
	withRenderContext(h, nil, func() VNode {
		sig = UseSignal(func() int { return 0 })
		return VNode{}
	})
	h.endRender()

	sig.SetSilent(7)
	if requested != 0 {
		t.Fatalf("requestRender called %d times after SetSilent, want 0", requested)
	}
	if got := sig.Get(); got != 7 {
		t.Fatalf("Get() = %d, want 7", got)
	}
}

// TestHookOrderViolationPanics covers scenario S5: calling hooks in a
// different order on the second render must panic naming the slot.
func TestHookOrderViolationPanics(t *testing.T) {
	h := newHookContext()

	h.beginRender(func() {})
	withRenderContext(h, nil, func() VNode {
		UseSignal(func() int { return 1 })
		UseRef(func() int { return 2 })
		return VNode{}
	})
	h.endRender()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on hook order violation, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value is %T, want string", r)
		}
		if !containsAll(msg, "slot 1", "Ref", "Signal") {
			t.Fatalf("panic message %q does not name the violating slot/kinds", msg)
		}
	}()

	h.beginRender(func() {})
	withRenderContext(h, nil, func() VNode {
		UseSignal(func() int { return 1 })
		UseSignal(func() int { return 2 }) // wrong: was a Ref slot
		return VNode{}
	})
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !stringsContains(s, sub) {
			return false
		}
	}
	return true
}

func stringsContains(s, sub string) bool {
	return len(sub) == 0 || (len(s) >= len(sub) && indexOf(s, sub) >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// TestUseEffectCleanupRunsBeforeRerun: a changed-deps effect must run its
// previous cleanup before the new effect body.
func TestUseEffectCleanupRunsBeforeRerun(t *testing.T) {
	h := newHookContext()
	var order []string
	dep := 1

	render := func() {
		h.beginRender(func() {})
		withRenderContext(h, nil, func() VNode {
			UseEffect(func() func() {
				order = append(order, "effect")
				d := dep
				return func() { order = append(order, "cleanup-"+itoa(d)) }
			}, []any{dep})
			return VNode{}
		})
		h.endRender()
		h.runEffects()
	}

	render()
	dep = 2
	render()

	want := []string{"effect", "cleanup-1", "effect"}
	if !equalStrSlices(order, want) {
		t.Fatalf("effect/cleanup order = %v, want %v", order, want)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}

func equalStrSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUseEffectSkipsWhenDepsUnchanged(t *testing.T) {
	h := newHookContext()
	runs := 0

	render := func(dep int) {
		h.beginRender(func() {})
		withRenderContext(h, nil, func() VNode {
			UseEffect(func() func() {
				runs++
				return nil
			}, []any{dep})
			return VNode{}
		})
		h.endRender()
		h.runEffects()
	}

	render(1)
	render(1)
	render(1)

	if runs != 1 {
		t.Fatalf("effect ran %d times across identical deps, want 1", runs)
	}
}

func TestUseMemoRecomputesOnlyOnDepsChange(t *testing.T) {
	h := newHookContext()
	computations := 0

	render := func(dep int) int {
		var result int
		h.beginRender(func() {})
		withRenderContext(h, nil, func() VNode {
			result = UseMemo(func() int {
				computations++
				return dep * 2
			}, []any{dep})
			return VNode{}
		})
		h.endRender()
		return result
	}

	if got := render(3); got != 6 {
		t.Fatalf("memo result = %d, want 6", got)
	}
	render(3)
	if got := render(4); got != 8 {
		t.Fatalf("memo result = %d, want 8", got)
	}

	if computations != 2 {
		t.Fatalf("compute() ran %d times, want 2", computations)
	}
}

// TestUseContextBalancedEvenOnPanic ensures the push/pop stack unwinds
// correctly if body panics, mirroring the clip-stack balance invariant.
func TestUseContextBalancedEvenOnPanic(t *testing.T) {
	h := newHookContext()
	ctx := &ContextKey[string]{}

	h.beginRender(func() {})
	func() {
		defer func() { recover() }()
		withRenderContext(h, nil, func() VNode {
			UseContext(ctx, "outer", func() {
				panic("boom")
			})
			return VNode{}
		})
	}()

	withRenderContext(h, nil, func() VNode {
		if _, ok := UseContextValue(ctx); ok {
			t.Fatal("context value leaked past a panicking body")
		}
		return VNode{}
	})
}

func TestRequireHookPanicsOutsideRender(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling a hook outside a render")
		}
	}()
	UseSignal(func() int { return 0 })
}

func TestUseMeasureReflectsMostRecentLayoutPass(t *testing.T) {
	tree := Box(Props{"width": 10, "height": 3}, Box(Props{
		"width":       6,
		"height":      2,
		MeasureIDProp: "panel",
	}))
	box := ComputeLayout(tree, LayoutContext{Width: 10, Height: 3})

	rt := NewRuntimeContext()
	RegisterMeasurements(rt, box)

	h := newHookContext()
	var width, height int
	var ok bool
	h.beginRender(func() {})
	withRenderContext(h, rt, func() VNode {
		width, height, ok = UseMeasure("panel")
		return VNode{}
	})
	h.endRender()

	if !ok {
		t.Fatal("UseMeasure reported ok=false for an id present in the laid-out tree")
	}
	if width != 6 || height != 2 {
		t.Fatalf("UseMeasure(\"panel\") = (%d, %d), want (6, 2)", width, height)
	}
}

func TestUseMeasureUnknownIDReportsNotOK(t *testing.T) {
	rt := NewRuntimeContext()
	h := newHookContext()
	var ok bool
	h.beginRender(func() {})
	withRenderContext(h, rt, func() VNode {
		_, _, ok = UseMeasure("never-registered")
		return VNode{}
	})
	h.endRender()

	if ok {
		t.Fatal("UseMeasure reported ok=true for an id that was never registered")
	}
}
