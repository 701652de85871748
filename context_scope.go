// Package tuicore: context_scope.go installs the "current" hook context and
// runtime context for the duration of a component's render: a scope guard
// publishes a pointer only while the render closure runs, and restores it
// (even on panic) when it returns. The scheduling model is single-threaded,
// so a package level variable plays the role a true thread-local would in a
// multi-threaded system — it is never read or written outside the main
// event-loop goroutine.
package tuicore

import "fmt"

var (
	currentHook    *HookContext
	currentRuntime *RuntimeContext
)

// withRenderContext installs hook and rt as current for the duration of fn,
// restoring whatever was previously current on return — including on panic,
// since the restoration happens in a deferred func.
func withRenderContext(hook *HookContext, rt *RuntimeContext, fn func() VNode) VNode {
	prevHook, prevRuntime := currentHook, currentRuntime
	currentHook, currentRuntime = hook, rt
	defer func() {
		currentHook, currentRuntime = prevHook, prevRuntime
	}()
	return fn()
}

func requireHook() *HookContext {
	if currentHook == nil {
		panic("tuicore: hook called outside a component render")
	}
	return currentHook
}

// requireRuntime returns the current runtime context, or nil when hooks run
// outside an app (e.g. in render_to_string) — callers that need the runtime
// context degrade gracefully rather than panicking, since measurement/input
// hooks are meaningful even when their effect is a no-op off-app.
func requireRuntime() *RuntimeContext {
	return currentRuntime
}

func hookOrderPanic(index int, want, got hookKind) {
	panic(fmt.Sprintf(
		"tuicore: hook order violation at slot %d: expected %s, got %s — "+
			"hooks must be called unconditionally and in the same order on every render",
		index, want, got,
	))
}
