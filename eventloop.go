// Package tuicore: eventloop.go is the single-threaded event/frame loop
// (C10) — poll stdin, run the filter chain, dispatch key/mouse/resize
// events, check for exit/suspend, and render when a render was requested
// and the frame-pace budget allows it. Frame pacing adapts its target
// within [1,120] fps over a rolling 60-frame window, shaping down when
// render time exceeds 80% of budget and up (never past the configured
// ceiling) when it drops below 50%.
package tuicore

import (
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// SuspendSelf delivers SIGSTOP, the uncatchable stop signal, to the current
// process (in raw mode the terminal does not turn Ctrl-Z into SIGTSTP) — used after CtrlZ is detected and the terminal
// has been restored to cooked mode, so the OS actually pauses the process
// rather than the app just pretending to.
func SuspendSelf() {
	if runtime.GOOS == "windows" {
		return
	}
	unix.Kill(os.Getpid(), unix.SIGSTOP)
}

// FilterResult is a key filter's verdict on one KeyEvent.
type FilterResult struct {
	Action  FilterAction
	Replace KeyEvent
}

type FilterAction int

const (
	FilterPass FilterAction = iota
	FilterReplace
	FilterBlock
)

// KeyFilter intercepts key events before component dispatch, in descending
// priority order; ties broken by registration order.
type KeyFilter struct {
	Name     string
	Priority int
	Fn       func(KeyEvent) FilterResult
}

type filterChain struct {
	mu      sync.Mutex
	filters []KeyFilter
}

func (c *filterChain) add(f KeyFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, f)
	// Stable sort by descending priority, preserving registration order for
	// ties — insertion sort is fine at the small N a TUI filter chain has.
	for i := 1; i < len(c.filters); i++ {
		j := i
		for j > 0 && c.filters[j-1].Priority < c.filters[j].Priority {
			c.filters[j-1], c.filters[j] = c.filters[j], c.filters[j-1]
			j--
		}
	}
}

// apply runs the chain against ev, returning the possibly-replaced event and
// whether it should still be dispatched.
func (c *filterChain) apply(ev KeyEvent) (KeyEvent, bool) {
	c.mu.Lock()
	filters := c.filters
	c.mu.Unlock()
	for _, f := range filters {
		result := f.Fn(ev)
		switch result.Action {
		case FilterBlock:
			return ev, false
		case FilterReplace:
			ev = result.Replace
		}
	}
	return ev, true
}

// framePacer tracks render durations over a rolling window and adapts the
// effective frame interval within [1, targetFPS].
type framePacer struct {
	mu          sync.Mutex
	targetFPS   int
	currentFPS  float64
	window      [60]time.Duration
	windowLen   int
	windowPos   int
	lastFrame   time.Time
	minFPS      float64
	maxFPS      float64
	sumFPS      float64
	sampleCount int64
	dropped     int64
	total       int64
}

func newFramePacer(targetFPS int) *framePacer {
	if targetFPS < 1 {
		targetFPS = 1
	}
	if targetFPS > 120 {
		targetFPS = 120
	}
	return &framePacer{targetFPS: targetFPS, currentFPS: float64(targetFPS)}
}

func (p *framePacer) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(float64(time.Second) / p.currentFPS)
}

// recordRender feeds one frame's render duration into the rolling window
// and adjusts currentFPS: down when render time exceeds 80% of the current
// budget, up (never past targetFPS) when it's under 50%.
func (p *framePacer) recordRender(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.window[p.windowPos] = d
	p.windowPos = (p.windowPos + 1) % len(p.window)
	if p.windowLen < len(p.window) {
		p.windowLen++
	}

	budget := time.Duration(float64(time.Second) / p.currentFPS)
	if d > time.Duration(1.5*float64(budget)) {
		p.dropped++
	}
	p.total++

	if p.windowLen < len(p.window) {
		return
	}
	var sum time.Duration
	for _, v := range p.window {
		sum += v
	}
	avg := sum / time.Duration(len(p.window))

	if float64(avg) > 0.8*float64(budget) {
		next := p.currentFPS * 0.9
		if next < 1 {
			next = 1
		}
		p.currentFPS = next
	} else if float64(avg) < 0.5*float64(budget) {
		next := p.currentFPS * 1.1
		if next > float64(p.targetFPS) {
			next = float64(p.targetFPS)
		}
		p.currentFPS = next
	}

	p.minFPS = minNonZero(p.minFPS, p.currentFPS)
	p.maxFPS = maxF(p.maxFPS, p.currentFPS)
	p.sumFPS += p.currentFPS
	p.sampleCount++
}

func minNonZero(a, b float64) float64 {
	if a == 0 {
		return b
	}
	if b < a {
		return b
	}
	return a
}

func maxF(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}

func (p *framePacer) Stats() FrameRateStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	avg := p.currentFPS
	if p.sampleCount > 0 {
		avg = p.sumFPS / float64(p.sampleCount)
	}
	return FrameRateStats{
		Current:     p.currentFPS,
		Min:         p.minFPS,
		Max:         p.maxFPS,
		Average:     avg,
		Dropped:     p.dropped,
		TotalFrames: p.total,
	}
}

// LoopHooks are the callbacks the event loop drives each cycle. renderFn
// performs a full render pass and returns its wall-clock duration.
type LoopHooks struct {
	RenderFn      func() time.Duration
	RenderPending func() bool
	OnResize      func(width, height int)
}

// EventLoop runs the single-threaded poll/filter/dispatch/render cycle.
type EventLoop struct {
	driver   *TerminalDriver
	runtime  *RuntimeContext
	pacer    *framePacer
	filters  filterChain
	exitOnCtrlC bool
	cancel   atomic.Bool
	suspend  atomic.Bool

	inputCh chan string
	resizeCh chan [2]int

	pasteBuf     strings.Builder
	inPaste      bool
}

// NewEventLoop wires a loop around driver/runtime with pacing targeting fps.
func NewEventLoop(driver *TerminalDriver, rt *RuntimeContext, fps int, exitOnCtrlC bool) *EventLoop {
	pacer := newFramePacer(fps)
	rt.bindDriver(driver, pacer)
	return &EventLoop{
		driver:      driver,
		runtime:     rt,
		pacer:       pacer,
		exitOnCtrlC: exitOnCtrlC,
		inputCh:     make(chan string, 64),
		resizeCh:    make(chan [2]int, 4),
	}
}

// AddFilter registers a key filter.
func (l *EventLoop) AddFilter(f KeyFilter) {
	l.filters.add(f)
}

// RequestExit asks the loop to return at the next cycle boundary.
func (l *EventLoop) RequestExit() {
	l.cancel.Store(true)
}

// CancelOn ties external cancellation to an atomic flag: once it is true,
// the loop exits at the next cycle boundary.
func (l *EventLoop) CancelOn(flag *atomic.Bool) {
	go func() {
		for !flag.Load() {
			time.Sleep(20 * time.Millisecond)
		}
		l.RequestExit()
	}()
}

func (l *EventLoop) startStdinReader() {
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := l.driver.ReadStdin(buf)
			if err != nil {
				return
			}
			if n > 0 {
				select {
				case l.inputCh <- string(buf[:n]):
				default:
				}
			}
		}
	}()
}

func (l *EventLoop) startResizeWatcher() {
	if runtime.GOOS == "windows" {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	go func() {
		for range sigCh {
			w, h := l.driver.Size()
			select {
			case l.resizeCh <- [2]int{w, h}:
			default:
			}
		}
	}()
}

// Run executes the loop until exit is requested or a suspend (SIGTSTP) is
// observed, in which case it returns so the caller can restore terminal
// state and later resume.
func (l *EventLoop) Run(hooks LoopHooks) {
	l.startStdinReader()
	l.startResizeWatcher()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case raw := <-l.inputCh:
			l.runtime.NoteActivity(time.Now())
			l.handleRaw(raw, hooks)
		case size := <-l.resizeCh:
			if hooks.OnResize != nil {
				hooks.OnResize(size[0], size[1])
			}
			l.runtime.RequestRender()
		case <-ticker.C:
		}

		if l.cancel.Load() {
			return
		}
		if l.suspend.Load() {
			l.suspend.Store(false)
			return
		}

		if hooks.RenderPending() {
			interval := l.pacer.interval()
			if time.Since(l.pacer.lastFrame) >= interval {
				start := time.Now()
				d := hooks.RenderFn()
				l.pacer.lastFrame = start
				l.pacer.recordRender(d)
			}
		}
	}
}

func (l *EventLoop) handleRaw(raw string, hooks LoopHooks) {
	if l.inPaste {
		l.handlePasteChunk(raw)
		return
	}
	if strings.Contains(raw, "\x1b[200~") {
		before, rest := splitOnce(raw, "\x1b[200~")
		if before != "" {
			l.handleRaw(before, hooks)
		}
		l.inPaste = true
		l.pasteBuf.Reset()
		l.handlePasteChunk(rest)
		return
	}
	if mv, ok := parseMouseEvent(raw); ok {
		l.runtime.DispatchMouse(mv)
		l.runtime.RequestRender()
		return
	}

	ev := ParseKeyEvent(raw)
	filtered, dispatch := l.filters.apply(ev)
	if !dispatch {
		return
	}

	if raw == CtrlC {
		if l.exitOnCtrlC {
			l.RequestExit()
			return
		}
	}
	if raw == CtrlZ && runtime.GOOS != "windows" {
		l.suspend.Store(true)
		return
	}

	l.runtime.DispatchInput(filtered)
	l.runtime.RequestRender()
}

func (l *EventLoop) handlePasteChunk(chunk string) {
	if idx := strings.Index(chunk, "\x1b[201~"); idx >= 0 {
		l.pasteBuf.WriteString(chunk[:idx])
		l.inPaste = false
		text := l.pasteBuf.String()
		l.pasteBuf.Reset()
		l.runtime.DispatchPaste(text)
		l.runtime.RequestRender()
		rest := chunk[idx+len("\x1b[201~"):]
		if rest != "" {
			l.handleRaw(rest, LoopHooks{RenderPending: func() bool { return false }})
		}
		return
	}
	l.pasteBuf.WriteString(chunk)
}

func splitOnce(s, sep string) (before, after string) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

// parseMouseEvent recognises xterm SGR mouse sequences: ESC [ < Cb ; Cx ; Cy (M|m).
func parseMouseEvent(raw string) (MouseEvent, bool) {
	const prefix = "\x1b[<"
	if !strings.HasPrefix(raw, prefix) {
		return MouseEvent{}, false
	}
	body := raw[len(prefix):]
	if len(body) == 0 {
		return MouseEvent{}, false
	}
	pressed := true
	last := body[len(body)-1]
	if last == 'm' {
		pressed = false
	} else if last != 'M' {
		return MouseEvent{}, false
	}
	body = body[:len(body)-1]
	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	cb, err1 := strconv.Atoi(parts[0])
	cx, err2 := strconv.Atoi(parts[1])
	cy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, false
	}
	scroll := 0
	if cb&64 != 0 {
		if cb&1 != 0 {
			scroll = -1
		} else {
			scroll = 1
		}
	}
	return MouseEvent{
		X: cx - 1, Y: cy - 1,
		Button:  cb & 0x3,
		Pressed: pressed,
		Scroll:  scroll,
	}, true
}
