// Package tuicore: hooks.go is the positional hook-slot runtime (C7). Unlike
// fine-grained reactivity with run-once components and dependency-tracked
// computations, components here run on every render and hook identity comes
// from call order: each Use* call claims the next slot in its instance's
// HookContext, and calling hooks conditionally or in a different order
// between renders is a programming error, caught by nextSlot's kind check.
package tuicore

import (
	"reflect"
	"sync"
)

type hookKind int

const (
	hookSignal hookKind = iota
	hookRef
	hookEffect
	hookEffectOnce
	hookMemo
	hookCallback
	hookCmdOnDeps
	hookContext
	hookMeasure
	hookMouse
	hookPaste
	hookInput
	hookFrameRate
	hookScreenReader
	hookWindowTitle
	hookIdle
	hookMediaQuery
	hookStdin
	hookStdout
	hookStderr
)

func (k hookKind) String() string {
	names := [...]string{
		"Signal", "Ref", "Effect", "EffectOnce", "Memo", "Callback", "CmdOnDeps",
		"Context", "Measure", "Mouse", "Paste", "Input", "FrameRate",
		"ScreenReader", "WindowTitle", "Idle", "MediaQuery", "Stdin", "Stdout", "Stderr",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// hookSlot is one entry in a HookContext's positional slot array. value
// holds whatever the hook stores (a *signalCell, memoized result, deps
// snapshot, ...); cleanup, if set, runs before the hook re-fires with new
// deps and on instance disposal.
type hookSlot struct {
	kind    hookKind
	value   any
	deps    []any
	cleanup func()
}

// HookContext backs one component instance's hooks across renders.
type HookContext struct {
	mu                  sync.Mutex
	slots               []hookSlot
	cursor              int
	firstRenderComplete bool
	pendingEffects      []func()
	requestRender       func()
	queue               []Command
	contextStack        map[any][]any
}

func newHookContext() *HookContext {
	return &HookContext{contextStack: make(map[any][]any)}
}

// beginRender resets the slot cursor to the top, ready for a fresh pass over
// the component's Use* calls.
func (h *HookContext) beginRender(requestRender func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursor = 0
	h.requestRender = requestRender
}

// endRender marks that at least one full render has completed, so the next
// render's nextSlot calls enforce order/kind stability.
func (h *HookContext) endRender() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.firstRenderComplete = true
}

// nextSlot claims the slot at the current cursor position for kind,
// allocating a new one on first render. On later renders, a kind mismatch
// means hooks were called in a different order than before — a fatal
// programming error.
func (h *HookContext) nextSlot(kind hookKind) *hookSlot {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.cursor
	h.cursor++
	if i < len(h.slots) {
		if h.firstRenderComplete && h.slots[i].kind != kind {
			hookOrderPanic(i, h.slots[i].kind, kind)
		}
		return &h.slots[i]
	}
	h.slots = append(h.slots, hookSlot{kind: kind})
	return &h.slots[i]
}

func (h *HookContext) scheduleEffect(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingEffects = append(h.pendingEffects, fn)
}

// runEffects runs and clears every effect scheduled during the render that
// just committed. Effects run after commit, never interleaved with layout
// or paint.
func (h *HookContext) runEffects() {
	h.mu.Lock()
	pending := h.pendingEffects
	h.pendingEffects = nil
	h.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// drainCommands returns and clears the commands enqueued by CmdOnDeps hooks
// during the render that just committed.
func (h *HookContext) drainCommands() []Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	cmds := h.queue
	h.queue = nil
	return cmds
}

func (h *HookContext) enqueueCommand(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, cmd)
}

// disposeAll runs every slot's cleanup, in slot order, on instance teardown.
func (h *HookContext) disposeAll() {
	h.mu.Lock()
	slots := h.slots
	h.mu.Unlock()
	for i := range slots {
		if slots[i].cleanup != nil {
			slots[i].cleanup()
		}
	}
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ---- Signal ----

type signalCell[T any] struct {
	mu            sync.RWMutex
	value         T
	requestRender func()
}

// Signal is a mutable value cell whose setter schedules a re-render, unless
// SetSilent is used.
type Signal[T any] struct {
	cell *signalCell[T]
}

func (s Signal[T]) Get() T {
	s.cell.mu.RLock()
	defer s.cell.mu.RUnlock()
	return s.cell.value
}

func (s Signal[T]) Set(v T) {
	s.cell.mu.Lock()
	s.cell.value = v
	request := s.cell.requestRender
	s.cell.mu.Unlock()
	if request != nil {
		request()
	}
}

// SetSilent updates the value without scheduling a re-render.
func (s Signal[T]) SetSilent(v T) {
	s.cell.mu.Lock()
	defer s.cell.mu.Unlock()
	s.cell.value = v
}

func (s Signal[T]) Update(f func(T) T) {
	s.cell.mu.Lock()
	s.cell.value = f(s.cell.value)
	request := s.cell.requestRender
	s.cell.mu.Unlock()
	if request != nil {
		request()
	}
}

// UseSignal allocates (on first render) or returns (on later renders) a
// Signal hook slot, initialised from init() only once.
func UseSignal[T any](init func() T) Signal[T] {
	h := requireHook()
	slot := h.nextSlot(hookSignal)
	if slot.value == nil {
		slot.value = &signalCell[T]{value: init(), requestRender: h.requestRender}
	}
	cell := slot.value.(*signalCell[T])
	cell.requestRender = h.requestRender
	return Signal[T]{cell: cell}
}

// ---- Ref ----

// Ref is a mutable value cell that never schedules a re-render.
type Ref[T any] struct {
	cell *refCell[T]
}

type refCell[T any] struct {
	mu    sync.RWMutex
	value T
}

func (r Ref[T]) Get() T {
	r.cell.mu.RLock()
	defer r.cell.mu.RUnlock()
	return r.cell.value
}

func (r Ref[T]) Set(v T) {
	r.cell.mu.Lock()
	defer r.cell.mu.Unlock()
	r.cell.value = v
}

func UseRef[T any](init func() T) Ref[T] {
	h := requireHook()
	slot := h.nextSlot(hookRef)
	if slot.value == nil {
		slot.value = &refCell[T]{value: init()}
	}
	return Ref[T]{cell: slot.value.(*refCell[T])}
}

// ---- Effect ----

// UseEffect schedules fn to run after this render commits, whenever deps
// have changed since the last render (deep-equal comparison). If fn returns
// a non-nil cleanup, that cleanup runs before the next invocation and on
// unmount.
func UseEffect(fn func() func(), deps []any) {
	h := requireHook()
	slot := h.nextSlot(hookEffect)
	idx := h.cursor - 1
	changed := slot.value == nil || !depsEqual(slot.deps, deps)
	slot.deps = deps
	if !changed {
		return
	}
	prevCleanup := slot.cleanup
	h.scheduleEffect(func() {
		if prevCleanup != nil {
			prevCleanup()
		}
		cleanup := fn()
		h.mu.Lock()
		h.slots[idx].cleanup = cleanup
		h.mu.Unlock()
	})
	slot.value = true
}

// UseEffectOnce runs fn exactly once, on the first render, with the same
// cleanup-on-unmount contract as UseEffect.
func UseEffectOnce(fn func() func()) {
	h := requireHook()
	slot := h.nextSlot(hookEffectOnce)
	idx := h.cursor - 1
	if slot.value != nil {
		return
	}
	slot.value = true
	h.scheduleEffect(func() {
		cleanup := fn()
		h.mu.Lock()
		h.slots[idx].cleanup = cleanup
		h.mu.Unlock()
	})
}

// ---- Memo ----

// UseMemo recomputes compute() only when deps change since the last render,
// otherwise returns the memoized value.
func UseMemo[T any](compute func() T, deps []any) T {
	h := requireHook()
	slot := h.nextSlot(hookMemo)
	if slot.value == nil || !depsEqual(slot.deps, deps) {
		slot.value = compute()
		slot.deps = deps
	}
	return slot.value.(T)
}

// ---- Callback ----

// UseCallback returns a stable function identity across renders as long as
// deps are unchanged, so it can be compared/passed down without invalidating
// memoized children.
func UseCallback[F any](f F, deps []any) F {
	h := requireHook()
	slot := h.nextSlot(hookCallback)
	if slot.value == nil || !depsEqual(slot.deps, deps) {
		slot.value = f
		slot.deps = deps
	}
	return slot.value.(F)
}

// ---- CmdOnDeps ----

// UseCmdOnDeps enqueues the Command produced by produce() onto this
// instance's command queue whenever deps change, for the event loop to
// execute after the render that scheduled it commits.
func UseCmdOnDeps(deps []any, produce func() Command) {
	h := requireHook()
	slot := h.nextSlot(hookCmdOnDeps)
	if slot.value != nil && depsEqual(slot.deps, deps) {
		return
	}
	slot.value = true
	slot.deps = deps
	h.enqueueCommand(produce())
}

// ---- Context ----

// UseContext pushes value onto ctx's stack for the duration of body, and
// pops it on return — including when body panics — guaranteeing balanced
// push/pop, mirroring the clip-stack balance invariant.
func UseContext[T any](ctx *ContextKey[T], value T, body func()) {
	h := requireHook()
	h.nextSlot(hookContext)
	h.mu.Lock()
	h.contextStack[ctx] = append(h.contextStack[ctx], value)
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		stack := h.contextStack[ctx]
		h.contextStack[ctx] = stack[:len(stack)-1]
		h.mu.Unlock()
	}()
	body()
}

// ContextKey identifies one context channel; zero value is usable, identity
// is by pointer.
type ContextKey[T any] struct{}

// UseContextValue reads the current value pushed for ctx, or ok=false if
// none is active.
func UseContextValue[T any](ctx *ContextKey[T]) (value T, ok bool) {
	h := requireHook()
	h.mu.Lock()
	defer h.mu.Unlock()
	stack := h.contextStack[ctx]
	if len(stack) == 0 {
		return value, false
	}
	return stack[len(stack)-1].(T), true
}

// ---- Measure ----

// UseMeasure returns the width/height the most recent layout pass computed
// for the element tagged with this id (via Box's "measureID" prop, see
// layout.go's GetStringProp), and whether that id has appeared in a laid-out
// tree yet. The dimensions come from the render loop walking ComputeLayout's
// output, not from the component itself, so the first render (before any
// layout has run) always reports ok=false.
func UseMeasure(id string) (width, height int, ok bool) {
	h := requireHook()
	h.nextSlot(hookMeasure)
	rt := requireRuntime()
	if rt == nil {
		return 0, 0, false
	}
	return rt.Measure(id)
}

// ---- per-frame input handlers ----

// UseMouse registers a mouse event handler for the current frame; the
// runtime context clears and rebuilds this list every render.
func UseMouse(handler func(MouseEvent)) {
	h := requireHook()
	h.nextSlot(hookMouse)
	if rt := requireRuntime(); rt != nil {
		rt.RegisterMouseHandler(handler)
	}
}

// UsePaste registers a bracketed-paste handler for the current frame.
func UsePaste(handler func(string)) {
	h := requireHook()
	h.nextSlot(hookPaste)
	if rt := requireRuntime(); rt != nil {
		rt.RegisterPasteHandler(handler)
	}
}

// UseInput registers a key input handler for the current frame.
func UseInput(handler func(KeyEvent)) {
	h := requireHook()
	h.nextSlot(hookInput)
	if rt := requireRuntime(); rt != nil {
		rt.RegisterInputHandler(handler)
	}
}

// ---- ambient environment hooks ----
//
// These occupy a slot (preserving call-order stability) even though most of
// them just read a snapshot off the runtime context, so like every other
// hook they are called unconditionally and in the same order each render;
// keeping them as hooks routes every ambient read through the same
// render-scoped context a test can substitute.

// UseFrameRate returns the current frame pacing statistics.
func UseFrameRate() FrameRateStats {
	h := requireHook()
	h.nextSlot(hookFrameRate)
	if rt := requireRuntime(); rt != nil {
		return rt.FrameRateStats()
	}
	return FrameRateStats{}
}

// UseScreenReader reports whether a screen reader was detected.
func UseScreenReader() bool {
	h := requireHook()
	h.nextSlot(hookScreenReader)
	if rt := requireRuntime(); rt != nil {
		return rt.ScreenReaderActive()
	}
	return false
}

// UseWindowTitle sets the terminal window title as a side effect of render.
func UseWindowTitle(title string) {
	h := requireHook()
	h.nextSlot(hookWindowTitle)
	if rt := requireRuntime(); rt != nil {
		rt.SetWindowTitle(title)
	}
}

// UseIdle returns how many milliseconds have passed since the last input
// chunk the event loop received (or since the runtime context was created).
func UseIdle() int64 {
	h := requireHook()
	h.nextSlot(hookIdle)
	if rt := requireRuntime(); rt != nil {
		return rt.IdleMillis()
	}
	return 0
}

// UseMediaQuery reports whether the current terminal size satisfies query.
func UseMediaQuery(query func(width, height int) bool) bool {
	h := requireHook()
	h.nextSlot(hookMediaQuery)
	if rt := requireRuntime(); rt != nil {
		w, ht := rt.TerminalSize()
		return query(w, ht)
	}
	return false
}

// UseStdin, UseStdout, UseStderr expose the app's I/O streams, occupying
// hook slots so a component mixing them with other hooks keeps stable order.
func UseStdin() StdinReader {
	h := requireHook()
	h.nextSlot(hookStdin)
	if rt := requireRuntime(); rt != nil {
		return rt.Stdin
	}
	return nil
}

func UseStdout() StdoutWriter {
	h := requireHook()
	h.nextSlot(hookStdout)
	if rt := requireRuntime(); rt != nil {
		return rt.Stdout
	}
	return nil
}

func UseStderr() StdoutWriter {
	h := requireHook()
	h.nextSlot(hookStderr)
	if rt := requireRuntime(); rt != nil {
		return rt.Stderr
	}
	return nil
}
