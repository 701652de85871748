package tuicore

import (
	"strconv"
	"strings"
)

// ANSI escape building blocks.
const (
	ESC = "\x1b"
	CSI = ESC + "["
	OSC = ESC + "]"
	ST  = ESC + "\\"
)

const (
	csiStr    = "\x1b["
	resetStr  = "\x1b[0m"
	boldStr   = "\x1b[1m"
	dimStr    = "\x1b[2m"
	italicStr = "\x1b[3m"
	underStr  = "\x1b[4m"
	invStr    = "\x1b[7m"
	strikeStr = "\x1b[9m"

	hyperlinkEnd = "\x1b]8;;\x1b\\"

	altScreenEnter = CSI + "?1049h"
	altScreenExit  = CSI + "?1049l"
	mouseEnable    = CSI + "?1000h" + CSI + "?1002h" + CSI + "?1006h"
	mouseDisable   = CSI + "?1006l" + CSI + "?1002l" + CSI + "?1000l"
	pasteEnable    = CSI + "?2004h"
	pasteDisable   = CSI + "?2004l"
)

// MoveCursor returns the ANSI code to move the cursor to (x, y), 1-based.
func MoveCursor(x, y int) string {
	return csiStr + strconv.Itoa(y+1) + ";" + strconv.Itoa(x+1) + "H"
}

// HideCursor returns the ANSI code to hide the cursor.
func HideCursor() string { return CSI + "?25l" }

// ShowCursor returns the ANSI code to show the cursor.
func ShowCursor() string { return CSI + "?25h" }

// ClearScreen returns the ANSI code to clear the screen and home the cursor.
func ClearScreen() string { return CSI + "2J" + CSI + "H" }

// ClearLine returns the ANSI code to erase the current line.
func ClearLine() string { return CSI + "2K" }

// EnterAltScreen / ExitAltScreen toggle the alternate screen buffer.
func EnterAltScreen() string { return altScreenEnter }
func ExitAltScreen() string  { return altScreenExit }

// EnableMouse / DisableMouse toggle xterm mouse-tracking sequences.
func EnableMouse() string  { return mouseEnable }
func DisableMouse() string { return mouseDisable }

// EnableBracketedPaste / DisableBracketedPaste toggle bracketed-paste mode.
func EnableBracketedPaste() string  { return pasteEnable }
func DisableBracketedPaste() string { return pasteDisable }

// SetWindowTitle returns the OSC sequence to set the terminal window title.
func SetWindowTitle(title string) string {
	return OSC + "0;" + title + "\x07"
}

var fgCodes = [...]string{
	ColorNone:          "",
	ColorDefault:       "\x1b[39m",
	ColorBlack:         "\x1b[30m",
	ColorRed:           "\x1b[31m",
	ColorGreen:         "\x1b[32m",
	ColorYellow:        "\x1b[33m",
	ColorBlue:          "\x1b[34m",
	ColorMagenta:       "\x1b[35m",
	ColorCyan:          "\x1b[36m",
	ColorWhite:         "\x1b[37m",
	ColorBrightBlack:   "\x1b[90m",
	ColorBrightRed:     "\x1b[91m",
	ColorBrightGreen:   "\x1b[92m",
	ColorBrightYellow:  "\x1b[93m",
	ColorBrightBlue:    "\x1b[94m",
	ColorBrightMagenta: "\x1b[95m",
	ColorBrightCyan:    "\x1b[96m",
	ColorBrightWhite:   "\x1b[97m",
}

var bgCodes = [...]string{
	ColorNone:          "",
	ColorDefault:       "\x1b[49m",
	ColorBlack:         "\x1b[40m",
	ColorRed:           "\x1b[41m",
	ColorGreen:         "\x1b[42m",
	ColorYellow:        "\x1b[43m",
	ColorBlue:          "\x1b[44m",
	ColorMagenta:       "\x1b[45m",
	ColorCyan:          "\x1b[46m",
	ColorWhite:         "\x1b[47m",
	ColorBrightBlack:   "\x1b[100m",
	ColorBrightRed:     "\x1b[101m",
	ColorBrightGreen:   "\x1b[102m",
	ColorBrightYellow:  "\x1b[103m",
	ColorBrightBlue:    "\x1b[104m",
	ColorBrightMagenta: "\x1b[105m",
	ColorBrightCyan:    "\x1b[106m",
	ColorBrightWhite:   "\x1b[107m",
}

// ColorToAnsi converts a Color (or RGB override) to its ANSI escape code.
// When the active profile does not support truecolor, rgb is downgraded to
// the nearest named color instead of emitting a 38;2/48;2 sequence.
func ColorToAnsi(color Color, rgb *RGB, isFg bool) string {
	if rgb != nil {
		if ActiveProfile().Truecolor {
			if isFg {
				return csiStr + "38;2;" + itoa3(rgb.R, rgb.G, rgb.B) + "m"
			}
			return csiStr + "48;2;" + itoa3(rgb.R, rgb.G, rgb.B) + "m"
		}
		color = rgb.NearestNamed()
	}
	if int(color) < len(fgCodes) {
		if isFg {
			return fgCodes[color]
		}
		return bgCodes[color]
	}
	return ""
}

func itoa3(r, g, b uint8) string {
	return strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}

// StyleToAnsi writes the ANSI codes for style to sb.
func StyleToAnsi(style Style, sb *strings.Builder) {
	if style.Bold {
		sb.WriteString(boldStr)
	}
	if style.Dim {
		sb.WriteString(dimStr)
	}
	if style.Italic {
		sb.WriteString(italicStr)
	}
	if style.Underline {
		sb.WriteString(underStr)
	}
	if style.Inverse {
		sb.WriteString(invStr)
	}
	if style.Strikethrough {
		sb.WriteString(strikeStr)
	}
	if style.Color != ColorNone || style.ColorRGB != nil {
		sb.WriteString(ColorToAnsi(style.Color, style.ColorRGB, true))
	}
	if style.Background != ColorNone || style.BackgroundRGB != nil {
		sb.WriteString(ColorToAnsi(style.Background, style.BackgroundRGB, false))
	}
}

// HyperlinkStart returns the OSC 8 sequence beginning a hyperlink.
func HyperlinkStart(url string) string { return "\x1b]8;;" + url + "\x1b\\" }

// HyperlinkEnd returns the OSC 8 sequence ending a hyperlink.
func HyperlinkEnd() string { return hyperlinkEnd }

// FormatHyperlink renders text as a hyperlink when the active profile
// supports OSC 8, or falls back to "text (uri)" / plain text otherwise
//
func FormatHyperlink(text, url string) string {
	if url == "" {
		return text
	}
	if ActiveProfile().Hyperlinks {
		return HyperlinkStart(url) + text + hyperlinkEnd
	}
	if text == url {
		return text
	}
	return text + " (" + url + ")"
}

// CellRun represents a run of consecutive same-row cells, used to batch
// cursor moves during diff-based output.
type CellRun struct {
	X, Y  int
	Cells []Cell
}

// RunToAnsi renders a single run of cells to ANSI, writing into sb.
func RunToAnsi(run CellRun, sb *strings.Builder) {
	sb.WriteString(MoveCursor(run.X, run.Y))

	var current *Style
	hyperlink := ""

	for _, c := range run.Cells {
		styleChanged := current == nil || !current.Equal(c.Style)
		linkChanged := c.Style.HyperlinkURL != hyperlink

		if styleChanged {
			if hyperlink != "" {
				sb.WriteString(hyperlinkEnd)
			}
			sb.WriteString(resetStr)
			StyleToAnsi(c.Style, sb)
			if c.Style.HyperlinkURL != "" {
				sb.WriteString(HyperlinkStart(c.Style.HyperlinkURL))
			}
			hyperlink = c.Style.HyperlinkURL
			cp := c.Style
			current = &cp
		} else if linkChanged {
			if hyperlink != "" {
				sb.WriteString(hyperlinkEnd)
			}
			if c.Style.HyperlinkURL != "" {
				sb.WriteString(HyperlinkStart(c.Style.HyperlinkURL))
			}
			hyperlink = c.Style.HyperlinkURL
		}
		sb.WriteRune(c.Char)
	}
	if hyperlink != "" {
		sb.WriteString(hyperlinkEnd)
	}
}

// RunsToAnsi renders a set of runs to a single ANSI string, terminated with
// an explicit reset.
func RunsToAnsi(runs []CellRun) string {
	if len(runs) == 0 {
		return resetStr
	}
	total := 0
	for _, r := range runs {
		total += len(r.Cells)
	}
	var sb strings.Builder
	sb.Grow(total*20 + len(runs)*15)
	for _, r := range runs {
		RunToAnsi(r, &sb)
	}
	sb.WriteString(resetStr)
	return sb.String()
}

// RunsToAnsiBuilder renders runs into a caller-supplied builder.
func RunsToAnsiBuilder(runs []CellRun, sb *strings.Builder) {
	if len(runs) == 0 {
		sb.WriteString(resetStr)
		return
	}
	for _, r := range runs {
		RunToAnsi(r, sb)
	}
	sb.WriteString(resetStr)
}

// BufferToSequentialAnsi renders an entire buffer with newline-separated
// rows instead of cursor positioning, used when content overflows the
// terminal height (cursor addressing cannot reach past the bottom row).
func BufferToSequentialAnsi(buf *CellBuffer) string {
	var sb strings.Builder
	sb.Grow(buf.Width() * buf.Height() * 12)
	sb.WriteString(MoveCursor(0, 0))

	var current *Style
	hyperlink := ""
	for y := 0; y < buf.Height(); y++ {
		if y > 0 {
			if current != nil {
				sb.WriteString(resetStr)
				current = nil
			}
			if hyperlink != "" {
				sb.WriteString(hyperlinkEnd)
				hyperlink = ""
			}
			sb.WriteString("\r\n")
		}
		for x := 0; x < buf.Width(); x++ {
			c := buf.Get(x, y)
			styleChanged := current == nil || !current.Equal(c.Style)
			linkChanged := c.Style.HyperlinkURL != hyperlink
			if styleChanged {
				if hyperlink != "" {
					sb.WriteString(hyperlinkEnd)
				}
				sb.WriteString(resetStr)
				StyleToAnsi(c.Style, &sb)
				if c.Style.HyperlinkURL != "" {
					sb.WriteString(HyperlinkStart(c.Style.HyperlinkURL))
				}
				hyperlink = c.Style.HyperlinkURL
				cp := c.Style
				current = &cp
			} else if linkChanged {
				if hyperlink != "" {
					sb.WriteString(hyperlinkEnd)
				}
				if c.Style.HyperlinkURL != "" {
					sb.WriteString(HyperlinkStart(c.Style.HyperlinkURL))
				}
				hyperlink = c.Style.HyperlinkURL
			}
			sb.WriteRune(c.Char)
		}
	}
	if hyperlink != "" {
		sb.WriteString(hyperlinkEnd)
	}
	sb.WriteString(resetStr)
	return sb.String()
}
