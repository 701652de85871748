// Package tuicore: runtimectx.go is the runtime context (C9) — per-App state
// reachable from hooks during a render: the render-requested flag, queued
// println output, per-frame input handler lists (rebuilt every render),
// measurement tables, and ambient capability snapshots (screen reader, idle
// time, terminal size). A mutex-guarded struct scoped per App rather than a
// package global, published to hooks only for the duration of a render via
// context_scope.go — not a true global.
package tuicore

import (
	"sync"
	"sync/atomic"
	"time"
)

// MouseEvent describes a single mouse action delivered to UseMouse handlers.
type MouseEvent struct {
	X, Y    int
	Button  int
	Pressed bool
	Scroll  int
}

// KeyEvent describes a single key press delivered to UseInput handlers.
type KeyEvent struct {
	Rune  rune
	Name  string // e.g. "up", "enter", "ctrl+c" for non-printable keys
	Ctrl  bool
	Alt   bool
	Shift bool
}

// FrameRateStats is the adaptive frame-pacing snapshot exposed by UseFrameRate.
type FrameRateStats struct {
	Current      float64
	Min, Max     float64
	Average      float64
	Dropped      int64
	TotalFrames  int64
}

// StdinReader/StdoutWriter are the minimal I/O surfaces exposed to hooks,
// satisfied by the real terminal streams or by a fake in tests.
type StdinReader interface {
	Read(p []byte) (int, error)
}

type StdoutWriter interface {
	Write(p []byte) (int, error)
}

// measurement is one element's last-painted size, as computed by the most
// recent layout pass.
type measurement struct {
	width, height int
}

// RuntimeContext holds per-App state reachable from hooks during a render.
type RuntimeContext struct {
	mu sync.Mutex

	renderRequested atomic.Bool
	modeSwitch      atomic.Int32 // 0 = none, see ModeSwitch* constants

	printlnQueue []string

	mouseHandlers []func(MouseEvent)
	pasteHandlers []func(string)
	inputHandlers []func(KeyEvent)

	measurementsByID  map[string]measurement
	measurementsByKey map[NodeKey]measurement

	screenReaderActive bool
	bracketedPaste     bool
	lastActivity       time.Time

	frameStats      func() FrameRateStats
	terminalSizeFn  func() (width, height int)
	setWindowTitle  func(string)

	Stdin  StdinReader
	Stdout StdoutWriter
	Stderr StdoutWriter
}

// ModeSwitch values for the atomic mode-switch request (e.g. fullscreen <->
// inline, requested from inside a render).
const (
	ModeSwitchNone = iota
	ModeSwitchFullscreen
	ModeSwitchInline
)

// NewRuntimeContext returns a fresh, empty runtime context.
func NewRuntimeContext() *RuntimeContext {
	return &RuntimeContext{
		measurementsByID:  make(map[string]measurement),
		measurementsByKey: make(map[NodeKey]measurement),
		lastActivity:      time.Now(),
	}
}

// RequestRender marks that a re-render is due; safe to call from any
// goroutine, publishing back via an atomic for cross-goroutine safety.
func (rt *RuntimeContext) RequestRender() {
	rt.renderRequested.Store(true)
}

// TakeRenderRequested atomically reads and clears the render-requested flag.
func (rt *RuntimeContext) TakeRenderRequested() bool {
	return rt.renderRequested.Swap(false)
}

// RequestModeSwitch records a pending mode switch, read back and cleared by
// TakeModeSwitch. Neither the event loop nor App reads it, so the rendering
// mode does not change.
func (rt *RuntimeContext) RequestModeSwitch(mode int32) {
	rt.modeSwitch.Store(mode)
}

// TakeModeSwitch atomically reads and clears the pending mode switch.
func (rt *RuntimeContext) TakeModeSwitch() int32 {
	return rt.modeSwitch.Swap(ModeSwitchNone)
}

// Println queues a line for the inline-static commit mechanism,
// rather than writing directly to stdout mid-frame.
func (rt *RuntimeContext) Println(line string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.printlnQueue = append(rt.printlnQueue, line)
}

// DrainPrintln returns and clears the queued println lines.
func (rt *RuntimeContext) DrainPrintln() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	lines := rt.printlnQueue
	rt.printlnQueue = nil
	return lines
}

// BeginFrameHandlers clears the per-frame handler lists; called before each
// render so a component that stops calling UseMouse/UsePaste/UseInput
// correspondingly stops receiving events.
func (rt *RuntimeContext) BeginFrameHandlers() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.mouseHandlers = nil
	rt.pasteHandlers = nil
	rt.inputHandlers = nil
}

func (rt *RuntimeContext) RegisterMouseHandler(fn func(MouseEvent)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.mouseHandlers = append(rt.mouseHandlers, fn)
}

func (rt *RuntimeContext) RegisterPasteHandler(fn func(string)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.pasteHandlers = append(rt.pasteHandlers, fn)
}

func (rt *RuntimeContext) RegisterInputHandler(fn func(KeyEvent)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.inputHandlers = append(rt.inputHandlers, fn)
}

// DispatchMouse/DispatchPaste/DispatchInput invoke every handler registered
// during the most recent render; used by the event loop (C10).
func (rt *RuntimeContext) DispatchMouse(ev MouseEvent) {
	rt.mu.Lock()
	handlers := rt.mouseHandlers
	rt.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (rt *RuntimeContext) DispatchPaste(text string) {
	rt.mu.Lock()
	handlers := rt.pasteHandlers
	rt.mu.Unlock()
	for _, h := range handlers {
		h(text)
	}
}

func (rt *RuntimeContext) DispatchInput(ev KeyEvent) {
	rt.mu.Lock()
	handlers := rt.inputHandlers
	rt.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

// ClearMeasurements discards every registered measurement, called before
// each frame's layout-derived measurements are registered from scratch —
// an id that stops appearing in the tree should stop answering Measure.
func (rt *RuntimeContext) ClearMeasurements() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.measurementsByID = make(map[string]measurement)
	rt.measurementsByKey = make(map[NodeKey]measurement)
}

// RegisterMeasurement records id's computed width/height for this frame,
// overwriting any prior registration for the same id. Called from the
// render loop after ComputeLayout, once per laid-out box tagged with a
// "measureID" prop — never by component code directly.
func (rt *RuntimeContext) RegisterMeasurement(id string, width, height int) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.measurementsByID[id] = measurement{width: width, height: height}
}

// RegisterMeasurementByKey records key's computed width/height for this
// frame, keyed by the node's reconciler identity rather than an explicit id.
func (rt *RuntimeContext) RegisterMeasurementByKey(key NodeKey, width, height int) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.measurementsByKey[key] = measurement{width: width, height: height}
}

// Measure looks up the last layout pass's computed size for id.
func (rt *RuntimeContext) Measure(id string) (width, height int, ok bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	m, found := rt.measurementsByID[id]
	if !found {
		return 0, 0, false
	}
	return m.width, m.height, true
}

// MeasureKey looks up the last layout pass's computed size for a node by its
// reconciler identity, for callers (e.g. a keyed list item) that would
// rather not invent a separate measureID string.
func (rt *RuntimeContext) MeasureKey(key NodeKey) (width, height int, ok bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	m, found := rt.measurementsByKey[key]
	if !found {
		return 0, 0, false
	}
	return m.width, m.height, true
}

func (rt *RuntimeContext) SetScreenReaderActive(v bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.screenReaderActive = v
}

func (rt *RuntimeContext) ScreenReaderActive() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.screenReaderActive
}

func (rt *RuntimeContext) SetBracketedPasteEnabled(v bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.bracketedPaste = v
}

func (rt *RuntimeContext) BracketedPasteEnabled() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.bracketedPaste
}

// NoteActivity stamps the last-activity clock, read back by IdleMillis.
func (rt *RuntimeContext) NoteActivity(now time.Time) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.lastActivity = now
}

func (rt *RuntimeContext) IdleMillis() int64 {
	rt.mu.Lock()
	last := rt.lastActivity
	rt.mu.Unlock()
	return time.Since(last).Milliseconds()
}

func (rt *RuntimeContext) SetWindowTitle(title string) {
	rt.mu.Lock()
	fn := rt.setWindowTitle
	rt.mu.Unlock()
	if fn != nil {
		fn(title)
	}
}

func (rt *RuntimeContext) FrameRateStats() FrameRateStats {
	rt.mu.Lock()
	fn := rt.frameStats
	rt.mu.Unlock()
	if fn == nil {
		return FrameRateStats{}
	}
	return fn()
}

func (rt *RuntimeContext) TerminalSize() (width, height int) {
	rt.mu.Lock()
	fn := rt.terminalSizeFn
	rt.mu.Unlock()
	if fn == nil {
		return 80, 24
	}
	return fn()
}

// bindDriver wires the runtime context's ambient callbacks to a concrete
// TerminalDriver and frame pacer; called once by the App during startup.
func (rt *RuntimeContext) bindDriver(driver *TerminalDriver, pacer *framePacer) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.terminalSizeFn = driver.Size
	rt.setWindowTitle = func(title string) { driver.Write(SetWindowTitle(title)) }
	rt.frameStats = pacer.Stats
}
