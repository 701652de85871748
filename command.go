// Package tuicore: command.go is the command system (C8) — a tagged union
// of side effects a component can request via UseCmdOnDeps, drained from the
// instance's queue and executed by the event loop after the render that
// produced them commits. Async commands run on their own goroutine, via
// sourcegraph/conc's structured goroutine groups rather than a bare `go`,
// and report back solely through the render-requested signal and queued
// callbacks — never by touching the tree, instances, or hooks directly.
package tuicore

import (
	"os/exec"
	"time"

	"github.com/sourcegraph/conc"
)

// TerminalCommandKind enumerates the built-in terminal side effects a
// Command can request.
type TerminalCommandKind int

const (
	ClearScreenCmd TerminalCommandKind = iota
	HideCursorCmd
	ShowCursorCmd
	SetWindowTitleCmd
	WindowSizeCmd
	EnterAltScreenCmd
	ExitAltScreenCmd
	EnableMouseCmd
	DisableMouseCmd
	EnableBracketedPasteCmd
	DisableBracketedPasteCmd
)

// ExecConfig describes an external process a command should run, suspending
// the TUI (restoring cooked terminal mode) for its duration.
type ExecConfig struct {
	Path string
	Args []string
	Dir  string
	Env  []string
}

// CommandKind tags the variant of a Command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdPerform
	CmdSleep
	CmdTerminal
	CmdExec
)

// Command is the tagged union produced by UseCmdOnDeps and consumed by the
// event loop.
type Command struct {
	Kind CommandKind

	// CmdPerform
	Perform func(ctx *RuntimeContext)

	// CmdSleep
	Sleep    time.Duration
	OnWake   func()

	// CmdTerminal
	Terminal      TerminalCommandKind
	WindowTitle   string
	WindowSizeCB  func(width, height int)

	// CmdExec
	Exec       ExecConfig
	OnExecDone func(err error)
}

// NoneCommand is a Command that does nothing; UseCmdOnDeps's produce() can
// return it when a dependency change should be observed but no side effect
// taken.
func NoneCommand() Command { return Command{Kind: CmdNone} }

// PerformCommand runs fn asynchronously off the event loop goroutine; fn
// must signal completion back only via rt.RequestRender() or by enqueuing
// further commands, never by mutating the tree directly.
func PerformCommand(fn func(ctx *RuntimeContext)) Command {
	return Command{Kind: CmdPerform, Perform: fn}
}

// SleepCommand fires onWake after d, then requests a render.
func SleepCommand(d time.Duration, onWake func()) Command {
	return Command{Kind: CmdSleep, Sleep: d, OnWake: onWake}
}

// TerminalCommand requests one of the built-in terminal side effects.
func TerminalCommand(kind TerminalCommandKind) Command {
	return Command{Kind: CmdTerminal, Terminal: kind}
}

// SetWindowTitleCommand is shorthand for TerminalCommand(SetWindowTitleCmd)
// carrying its title payload.
func SetWindowTitleCommand(title string) Command {
	return Command{Kind: CmdTerminal, Terminal: SetWindowTitleCmd, WindowTitle: title}
}

// ExecCommand suspends the TUI (restoring cooked terminal mode), runs cfg,
// restores raw/alt-screen mode, then invokes onDone with the run's error (if
// any) — external process failures surface here, never as a raw panic
//
func ExecCommand(cfg ExecConfig, onDone func(err error)) Command {
	return Command{Kind: CmdExec, Exec: cfg, OnExecDone: onDone}
}

// runCommand executes cmd, dispatching async work onto wg so the caller can
// wait for outstanding goroutines at shutdown.
func runCommand(cmd Command, rt *RuntimeContext, driver *TerminalDriver, wg *conc.WaitGroup) {
	switch cmd.Kind {
	case CmdNone:
		return

	case CmdPerform:
		if cmd.Perform == nil {
			return
		}
		wg.Go(func() { cmd.Perform(rt) })

	case CmdSleep:
		wg.Go(func() {
			time.Sleep(cmd.Sleep)
			if cmd.OnWake != nil {
				cmd.OnWake()
			}
			rt.RequestRender()
		})

	case CmdTerminal:
		runTerminalCommand(cmd, rt, driver)

	case CmdExec:
		wg.Go(func() {
			err := runExec(cmd.Exec, driver)
			if cmd.OnExecDone != nil {
				cmd.OnExecDone(err)
			}
			rt.RequestRender()
		})
	}
}

func runTerminalCommand(cmd Command, rt *RuntimeContext, driver *TerminalDriver) {
	switch cmd.Terminal {
	case ClearScreenCmd:
		driver.RequestRepaint()
	case HideCursorCmd:
		driver.Write(HideCursor())
	case ShowCursorCmd:
		driver.Write(ShowCursor())
	case SetWindowTitleCmd:
		driver.Write(SetWindowTitle(cmd.WindowTitle))
	case WindowSizeCmd:
		if cmd.WindowSizeCB != nil {
			w, h := driver.Size()
			cmd.WindowSizeCB(w, h)
		}
	case EnterAltScreenCmd:
		driver.EnterAltScreen()
	case ExitAltScreenCmd:
		driver.ExitAltScreen()
	case EnableMouseCmd:
		driver.Write(EnableMouse())
	case DisableMouseCmd:
		driver.Write(DisableMouse())
	case EnableBracketedPasteCmd:
		driver.Write(EnableBracketedPaste())
		rt.SetBracketedPasteEnabled(true)
	case DisableBracketedPasteCmd:
		driver.Write(DisableBracketedPaste())
		rt.SetBracketedPasteEnabled(false)
	}
}

// runExec suspends the terminal driver, runs cfg as a child process handed
// the real controlling-tty fds directly (driver.Suspend already restored
// cooked mode on the actual terminal, so there is no separate pty to
// allocate), and restores driver state on return regardless of whether the
// process succeeded.
func runExec(cfg ExecConfig, driver *TerminalDriver) error {
	restore := driver.Suspend()
	defer restore()

	cmd := exec.Command(cfg.Path, cfg.Args...)
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = cfg.Env
	}
	cmd.Stdin = driver.RawStdin()
	cmd.Stdout = driver.RawStdout()
	cmd.Stderr = driver.RawStderr()
	return cmd.Run()
}
