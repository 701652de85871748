// Package tuicore: app.go is the public entry point — the
// render(view) builder (.fullscreen()/.inline()/.fps()/.exit_on_ctrl_c()/
// .filter()/.cancel_on()/.run()), plus the cross-thread RequestRender() and
// Println() helpers bound to whichever App is currently running. A builder
// wraps the view function, then Run owns raw mode, Ctrl-C/Ctrl-Z handling, and the
// input/render goroutines, driving the positional hook-slot expansion pass
// every frame rather than a run-once-effect root.
package tuicore

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
)

type renderMode int

const (
	modeFullscreen renderMode = iota
	modeInline
)

// AppBuilder configures and launches an application.
type AppBuilder struct {
	view           func() VNode
	mode           renderMode
	fps            int
	exitOnCtrlC    bool
	filters        []KeyFilter
	cancelFlag     *atomic.Bool
	captureConsole bool
}

// Render begins building an application around view.
func Render(view func() VNode) *AppBuilder {
	return &AppBuilder{view: view, mode: modeFullscreen, fps: 60, exitOnCtrlC: true, captureConsole: true}
}

// CaptureConsole toggles ambient stdout/stderr capture (on by default) so
// stray writes from outside the render loop don't corrupt the frame.
func (b *AppBuilder) CaptureConsole(v bool) *AppBuilder {
	b.captureConsole = v
	return b
}

func (b *AppBuilder) Fullscreen() *AppBuilder { b.mode = modeFullscreen; return b }
func (b *AppBuilder) Inline() *AppBuilder     { b.mode = modeInline; return b }

func (b *AppBuilder) FPS(n int) *AppBuilder {
	b.fps = n
	return b
}

func (b *AppBuilder) ExitOnCtrlC(v bool) *AppBuilder {
	b.exitOnCtrlC = v
	return b
}

func (b *AppBuilder) Filter(name string, priority int, fn func(KeyEvent) FilterResult) *AppBuilder {
	b.filters = append(b.filters, KeyFilter{Name: name, Priority: priority, Fn: fn})
	return b
}

func (b *AppBuilder) CancelOn(flag *atomic.Bool) *AppBuilder {
	b.cancelFlag = flag
	return b
}

// runningRuntime is the currently executing App's runtime context, published
// only for the duration of Run so RequestRender/Println can be called from
// any goroutine without the caller holding a reference to the App.
var runningRuntime atomic.Pointer[RuntimeContext]

// RequestRender asks the currently running app to render on its next cycle.
// A no-op if no app is running.
func RequestRender() {
	if rt := runningRuntime.Load(); rt != nil {
		rt.RequestRender()
	}
}

// Println queues a line for the inline-static commit mechanism, or writes
// nothing if no app is running.
func Println(line string) {
	if rt := runningRuntime.Load(); rt != nil {
		rt.Println(line)
	}
}

// Run starts the event loop and blocks until the app exits, restoring
// terminal state on return even if a component panics.
func (b *AppBuilder) Run() error {
	var logCapture *LogCapture
	output := os.Stdout
	if b.captureConsole {
		logCapture = NewLogCapture(1000)
		if err := logCapture.Start(); err == nil {
			output = logCapture.OriginalStdout()
			defer logCapture.Stop()
		} else {
			logCapture = nil
		}
	}

	driver, err := NewTerminalDriver(output)
	if err != nil {
		return err
	}
	defer driver.Close()

	rt := NewRuntimeContext()
	rt.Stdin = os.Stdin
	rt.Stdout = os.Stdout
	rt.Stderr = os.Stderr
	rt.SetScreenReaderActive(ScreenReaderDetected())

	runningRuntime.Store(rt)
	defer runningRuntime.Store(nil)

	if err := driver.EnterRawMode(); err != nil {
		return err
	}
	defer driver.RestoreMode()

	if b.mode == modeFullscreen {
		driver.EnterAltScreen()
		defer driver.ExitAltScreen()
	}
	driver.Write(HideCursor())
	defer driver.Write(ShowCursor())
	defer driver.Write(ClearScreen())

	loop := NewEventLoop(driver, rt, b.fps, b.exitOnCtrlC)
	for _, f := range b.filters {
		loop.AddFilter(f)
	}
	if b.cancelFlag != nil {
		loop.CancelOn(b.cancelFlag)
	}

	registry := NewRegistry()
	var wg conc.WaitGroup
	defer wg.Wait()

	var prevBuf *CellBuffer
	var prevTree VNode
	var havePrevTree bool
	var prevWidth, prevHeight int
	rt.RequestRender()

	renderFn := func() time.Duration {
		start := time.Now()

		width, height := driver.Size()
		registry.BeginRender()
		rt.BeginFrameHandlers()

		root := b.view()
		result := ExpandTreeWithRuntime(root, registry, rt)
		tree := result.Tree

		var staticLines []string
		dynamicHeight := height
		if b.mode == modeInline {
			var statics []VNode
			tree, statics = ExtractStatic(tree)
			for _, s := range statics {
				staticLines = append(staticLines, RenderStaticLines(s, width)...)
			}
		}

		// Reconcile against the previous committed tree: an empty patch
		// set, at an unchanged size, means nothing a repaint could show has
		// changed, so layout/paint for this frame is skipped entirely.
		var patches []Patch
		if havePrevTree {
			patches = Diff(prevTree, tree)
		}
		repaintForced := driver.TakeRepaintRequested()
		sizeChanged := width != prevWidth || height != prevHeight
		unchanged := havePrevTree && prevBuf != nil && len(staticLines) == 0 &&
			len(patches) == 0 && !sizeChanged && !repaintForced

		var runs []CellRun
		if !unchanged {
			box := ComputeLayout(tree, LayoutContext{Width: width, Height: dynamicHeight})
			RegisterMeasurements(rt, box)
			buf := NewCellBuffer(width, dynamicHeight)
			RenderToBuffer(box, buf)

			if len(staticLines) > 0 {
				CommitStatic(driver, staticLines, dynamicHeight)
				prevBuf = nil
			}

			if prevBuf == nil || repaintForced {
				runs = FullBufferRuns(buf)
			} else {
				runs = DiffBuffers(prevBuf, buf)
			}
			prevBuf = buf
		}
		driver.Write(RunsToAnsi(runs))

		prevTree, havePrevTree = tree, true
		prevWidth, prevHeight = width, height

		for _, line := range rt.DrainPrintln() {
			driver.Write(line + "\r\n")
			driver.RequestRepaint()
		}

		commands := CommitInstances(registry, result.Touched)
		for _, cmd := range commands {
			runCommand(cmd, rt, driver, &wg)
		}

		return time.Since(start)
	}

	hooks := LoopHooks{
		RenderFn:      renderFn,
		RenderPending: rt.TakeRenderRequested,
		OnResize: func(width, height int) {
			driver.RequestRepaint()
		},
	}

	for {
		loop.Run(hooks)
		if loop.cancel.Load() {
			registry.Clear()
			return nil
		}
		// Suspended (SIGTSTP): restore cooked mode, stop the process, and on
		// resume put raw mode / alt-screen back before rejoining the loop.
		resume := driver.Suspend()
		SuspendSelf()
		resume()
		loop.suspend.Store(false)
	}
}
