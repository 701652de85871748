// Package tuicore: terminal.go is the terminal driver (C11) — raw-mode
// setup/teardown, alt-screen entry/exit, cursor visibility, size queries,
// and ANSI emission, plus capability detection (truecolor, hyperlinks,
// screen reader, adaptive background) that feeds ansi.go's ActiveProfile.
// Raw-mode and size queries go through golang.org/x/term rather than
// hand-rolled per-OS termios syscalls, removing the need for an OS-specific
// file pair (see DESIGN.md).
package tuicore

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/muesli/cancelreader"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Profile is the detected terminal capability set consulted by ansi.go.
type Profile struct {
	Truecolor  bool
	Hyperlinks bool
}

var activeProfile atomic.Pointer[Profile]

func init() {
	activeProfile.Store(detectProfile())
}

// ActiveProfile returns the currently active capability profile.
func ActiveProfile() *Profile {
	p := activeProfile.Load()
	if p == nil {
		return &Profile{}
	}
	return p
}

// SetActiveProfile overrides the active profile (tests, or an explicit
// user override of capability auto-detection).
func SetActiveProfile(p Profile) {
	activeProfile.Store(&p)
}

// detectProfile probes termenv's color profile plus the hyperlink heuristics
// from TERM_PROGRAM, WT_SESSION, VTE_VERSION, COLORTERM, KONSOLE_VERSION.
func detectProfile() *Profile {
	cp := termenv.NewOutput(os.Stdout).ColorProfile()
	return &Profile{
		Truecolor:  cp == termenv.TrueColor,
		Hyperlinks: detectHyperlinkSupport(),
	}
}

func detectHyperlinkSupport() bool {
	if v := os.Getenv("COLORTERM"); v == "truecolor" || v == "24bit" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Hyper":
		return true
	}
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	if v := os.Getenv("VTE_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 5000 {
			return true
		}
	}
	return false
}

// ScreenReaderDetected reports whether a screen reader appears active, by
// checking the NVDA_RUNNING, JAWS_RUNNING, ORCA_RUNNING and
// TUICORE_SCREEN_READER environment variables only; no platform
// accessibility setting is queried. Always
// overridable by the app via RuntimeContext.SetScreenReaderActive.
func ScreenReaderDetected() bool {
	for _, name := range []string{"NVDA_RUNNING", "JAWS_RUNNING", "ORCA_RUNNING", "TUICORE_SCREEN_READER"} {
		if v := os.Getenv(name); v != "" && v != "0" {
			return true
		}
	}
	return false
}

// AdaptiveBackgroundIsDark reports whether the terminal's background is
// dark, from COLORFGBG ("fg;bg" luminance) with a TERM_PROGRAM fallback,
// adaptive-colour detection.
func AdaptiveBackgroundIsDark() bool {
	if v := os.Getenv("COLORFGBG"); v != "" {
		parts := strings.Split(v, ";")
		if len(parts) >= 2 {
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				return bg < 7
			}
		}
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal":
		return false
	}
	return true
}

// TerminalDriver owns the process's terminal state: raw mode, alt-screen,
// cursor visibility, and the cancelable stdin reader the event loop polls.
type TerminalDriver struct {
	mu          sync.Mutex
	out         io.Writer
	fd          int
	rawState    *term.State
	altScreen   bool
	repaint     atomic.Bool
	stdinCancel cancelreader.CancelReader
}

// NewTerminalDriver wraps out (typically os.Stdout) for ANSI writes, with
// stdin polling driven through a cancelreader so the event loop can stop a
// blocking read on shutdown.
func NewTerminalDriver(out io.Writer) (*TerminalDriver, error) {
	cr, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return nil, err
	}
	return &TerminalDriver{out: out, fd: int(os.Stdin.Fd()), stdinCancel: cr}, nil
}

// EnterRawMode puts stdin into raw mode, remembering the prior state for
// RestoreMode. A no-op (returning nil) when stdin is not a terminal, so
// tests and piped input keep working.
func (d *TerminalDriver) EnterRawMode() error {
	if !term.IsTerminal(d.fd) {
		return nil
	}
	state, err := term.MakeRaw(d.fd)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.rawState = state
	d.mu.Unlock()
	return nil
}

// RestoreMode restores whatever terminal state EnterRawMode captured.
// Safe to call multiple times (e.g. once from a normal shutdown path and
// once from a deferred panic-recovery path) and safe to call even if raw
// mode was never entered.
func (d *TerminalDriver) RestoreMode() error {
	d.mu.Lock()
	state := d.rawState
	d.rawState = nil
	d.mu.Unlock()
	if state == nil {
		return nil
	}
	return term.Restore(d.fd, state)
}

// Size returns the current terminal dimensions, falling back to 80x24 when
// they cannot be determined (piped output, no controlling terminal).
func (d *TerminalDriver) Size() (width, height int) {
	w, h, err := term.GetSize(d.fd)
	if err != nil || w == 0 || h == 0 {
		return 80, 24
	}
	return w, h
}

// Write emits s to the underlying output stream.
func (d *TerminalDriver) Write(s string) {
	io.WriteString(d.out, s)
}

func (d *TerminalDriver) EnterAltScreen() {
	d.mu.Lock()
	d.altScreen = true
	d.mu.Unlock()
	d.Write(EnterAltScreen())
}

func (d *TerminalDriver) ExitAltScreen() {
	d.mu.Lock()
	d.altScreen = false
	d.mu.Unlock()
	d.Write(ExitAltScreen())
}

func (d *TerminalDriver) InAltScreen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.altScreen
}

// RequestRepaint marks that the next frame must redraw every cell instead of
// diffing against the previous buffer (e.g. after an external process wrote
// to the terminal during an Exec command).
func (d *TerminalDriver) RequestRepaint() {
	d.repaint.Store(true)
}

// TakeRepaintRequested atomically reads and clears the repaint flag.
func (d *TerminalDriver) TakeRepaintRequested() bool {
	return d.repaint.Swap(false)
}

// ReadStdin blocks for the next chunk of raw input, or returns an error once
// Cancel has been called (used by the event loop's poll step).
func (d *TerminalDriver) ReadStdin(buf []byte) (int, error) {
	return d.stdinCancel.Read(buf)
}

// CancelStdin unblocks a pending ReadStdin call, for clean shutdown.
func (d *TerminalDriver) CancelStdin() bool {
	return d.stdinCancel.Cancel()
}

// Suspend restores cooked terminal mode and returns a function that restores
// raw mode (and alt-screen, if active) again — used around Exec commands
// that hand the terminal to a child process.
func (d *TerminalDriver) Suspend() (resume func()) {
	wasAlt := d.InAltScreen()
	if wasAlt {
		d.Write(ExitAltScreen())
	}
	d.Write(ShowCursor())
	d.RestoreMode()
	return func() {
		d.EnterRawMode()
		if wasAlt {
			d.Write(EnterAltScreen())
		}
		d.Write(HideCursor())
		d.RequestRepaint()
	}
}

func (d *TerminalDriver) RawStdin() *os.File  { return os.Stdin }
func (d *TerminalDriver) RawStdout() *os.File { return os.Stdout }
func (d *TerminalDriver) RawStderr() *os.File { return os.Stderr }

// Close releases the cancelable stdin reader.
func (d *TerminalDriver) Close() error {
	return d.stdinCancel.Close()
}
