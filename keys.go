// Package tuicore: keys.go recognises raw terminal byte sequences and turns
// them into structured KeyEvent values for UseInput handlers. The escape
// sequence constants feed a lookup table and a parser, since input needs to
// reach hooks as a structured KeyEvent rather than a raw escape string
// compared directly against a constant.
package tuicore

// Raw terminal key sequences.
const (
	seqSpace   = " "
	seqEnter   = "\r"
	seqEnterLF = "\n"
	seqTab     = "\t"
	seqEscape  = "\x1b"

	seqBackspace     = "\x7f"
	seqBackspaceCtrl = "\b"
	seqDelete        = "\x1b[3~"
	seqInsert        = "\x1b[2~"

	seqLeft     = "\x1b[D"
	seqRight    = "\x1b[C"
	seqUp       = "\x1b[A"
	seqDown     = "\x1b[B"
	seqHome     = "\x1b[H"
	seqHomeAlt  = "\x1b[1~"
	seqEnd      = "\x1b[F"
	seqEndAlt   = "\x1b[4~"
	seqPageUp   = "\x1b[5~"
	seqPageDown = "\x1b[6~"

	seqShiftTab   = "\x1b[Z"
	seqShiftUp    = "\x1b[1;2A"
	seqShiftDown  = "\x1b[1;2B"
	seqShiftLeft  = "\x1b[1;2D"
	seqShiftRight = "\x1b[1;2C"

	seqCtrlUp    = "\x1b[1;5A"
	seqCtrlDown  = "\x1b[1;5B"
	seqCtrlLeft  = "\x1b[1;5D"
	seqCtrlRight = "\x1b[1;5C"

	seqF1  = "\x1bOP"
	seqF2  = "\x1bOQ"
	seqF3  = "\x1bOR"
	seqF4  = "\x1bOS"
	seqF5  = "\x1b[15~"
	seqF6  = "\x1b[17~"
	seqF7  = "\x1b[18~"
	seqF8  = "\x1b[19~"
	seqF9  = "\x1b[20~"
	seqF10 = "\x1b[21~"
	seqF11 = "\x1b[23~"
	seqF12 = "\x1b[24~"

	CtrlC = "\x03"
	CtrlZ = "\x1a"
)

var namedSequences = map[string]string{
	seqSpace: "space", seqEnter: "enter", seqEnterLF: "enter", seqTab: "tab",
	seqBackspace: "backspace", seqBackspaceCtrl: "backspace",
	seqDelete: "delete", seqInsert: "insert",
	seqLeft: "left", seqRight: "right", seqUp: "up", seqDown: "down",
	seqHome: "home", seqHomeAlt: "home", seqEnd: "end", seqEndAlt: "end",
	seqPageUp: "pageup", seqPageDown: "pagedown",
	seqShiftTab: "shift+tab",
	seqShiftUp: "shift+up", seqShiftDown: "shift+down",
	seqShiftLeft: "shift+left", seqShiftRight: "shift+right",
	seqCtrlUp: "ctrl+up", seqCtrlDown: "ctrl+down",
	seqCtrlLeft: "ctrl+left", seqCtrlRight: "ctrl+right",
	seqF1: "f1", seqF2: "f2", seqF3: "f3", seqF4: "f4",
	seqF5: "f5", seqF6: "f6", seqF7: "f7", seqF8: "f8",
	seqF9: "f9", seqF10: "f10", seqF11: "f11", seqF12: "f12",
	seqEscape: "escape",
}

// ParseKeyEvent turns one raw input chunk (as delivered by a single stdin
// read) into a KeyEvent.
func ParseKeyEvent(raw string) KeyEvent {
	if name, ok := namedSequences[raw]; ok {
		return KeyEvent{Name: name, Shift: isShiftName(name), Ctrl: isCtrlName(name)}
	}
	if len(raw) == 1 {
		b := raw[0]
		if b >= 1 && b <= 26 && b != 9 && b != 13 && b != 10 {
			return KeyEvent{Name: "ctrl+" + string(rune('a'+b-1)), Ctrl: true}
		}
		r := []rune(raw)[0]
		return KeyEvent{Rune: r, Name: string(r)}
	}
	if len(raw) == 2 && raw[0] == '\x1b' {
		return KeyEvent{Name: "alt+" + raw[1:], Alt: true}
	}
	runes := []rune(raw)
	if len(runes) >= 1 {
		return KeyEvent{Rune: runes[0], Name: raw}
	}
	return KeyEvent{Name: raw}
}

func isShiftName(name string) bool {
	return len(name) > 6 && name[:6] == "shift+"
}

func isCtrlName(name string) bool {
	return len(name) > 5 && name[:5] == "ctrl+"
}
