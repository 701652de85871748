package tuicore

import (
	"strings"
	"testing"
)

// stripAnsi removes CSI ("\x1b[...letter") and OSC 8 hyperlink
// ("\x1b]8;;...\x1b\\") escape sequences, leaving only the visible text a
// test can compare against plain strings.
func stripAnsi(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && !(s[j] >= '@' && s[j] <= '~') {
				j++
			}
			i = j + 1
			continue
		}
		if strings.HasPrefix(s[i:], "\x1b]8;;") {
			end := strings.Index(s[i:], "\x1b\\")
			if end < 0 {
				break
			}
			i += end + 2
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// TestRenderToStringTrimsTrailingWhitespace covers scenario S1: a plain
// "Hello" text node rendered into a wider buffer must come back with
// trailing padding trimmed from each line, and the trailing blank rows
// trimmed entirely.
func TestRenderToStringTrimsTrailingWhitespace(t *testing.T) {
	view := Root(Text("Hello", nil))
	out := RenderToString(view, RenderToStringOptions{Width: 20, Height: 5})

	lines := strings.Split(out, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected trailing blank lines trimmed, got %d lines: %q", len(lines), out)
	}
	if text := stripAnsi(lines[0]); text != "Hello" {
		t.Fatalf("line = %q, want %q (no trailing padding)", text, "Hello")
	}
}

func TestRenderToStringNoTrimPreservesPadding(t *testing.T) {
	view := Root(Text("Hi", nil))
	trimmed := stripAnsi(RenderToString(view, RenderToStringOptions{Width: 5, Height: 1}))
	untrimmed := stripAnsi(RenderToString(view, RenderToStringOptions{Width: 5, Height: 1, NoTrim: true}))
	if trimmed != "Hi" {
		t.Fatalf("trimmed output = %q, want %q", trimmed, "Hi")
	}
	if untrimmed != "Hi   " {
		t.Fatalf("NoTrim output = %q, want padding preserved out to the full width", untrimmed)
	}
}

func TestRenderToStringRawUsesCRLF(t *testing.T) {
	view := Root(Text("a", nil), Box(Props{}, Text("b", nil)))
	out := RenderToString(view, RenderToStringOptions{Width: 5, Height: 3, Raw: true, NoTrim: true})
	if !strings.Contains(out, "\r\n") {
		t.Fatalf("Raw output does not use CRLF separators: %q", out)
	}
}

// TestRenderToStringIsDeterministic: rendering the same view twice must
// produce byte-identical output.
func TestRenderToStringIsDeterministic(t *testing.T) {
	view := Root(Box(Props{"border": "single", "width": 6, "height": 3}, Text("Hi", nil)))
	opts := RenderToStringOptions{Width: 6, Height: 3}
	a := RenderToString(view, opts)
	b := RenderToString(view, opts)
	if a != b {
		t.Fatalf("render_to_string not deterministic:\n%q\nvs\n%q", a, b)
	}
}

// TestRenderToStringBorderedBox covers scenario S2: a 6x3 single-bordered
// box containing "Hi" draws a full border frame with the text inside it.
func TestRenderToStringBorderedBox(t *testing.T) {
	view := Root(Box(Props{"border": "single", "width": 6, "height": 3}, Text("Hi", nil)))
	out := RenderToString(view, RenderToStringOptions{Width: 6, Height: 3, NoTrim: true})
	lines := strings.Split(stripAnsi(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(lines), out)
	}

	top, mid, bottom := []rune(lines[0]), []rune(lines[1]), []rune(lines[2])
	if top[0] != '┌' || top[len(top)-1] != '┐' {
		t.Fatalf("top row corners = %q, want ┌...┐", lines[0])
	}
	if bottom[0] != '└' || bottom[len(bottom)-1] != '┘' {
		t.Fatalf("bottom row corners = %q, want └...┘", lines[2])
	}
	if mid[0] != '│' || mid[len(mid)-1] != '│' {
		t.Fatalf("middle row sides = %q, want │...│", lines[1])
	}
	if !strings.Contains(lines[1], "Hi") {
		t.Fatalf("middle row %q does not contain the inner text", lines[1])
	}
}

// TestScrollOffsetShiftsVisibleContent covers scenario S3: a scrolled
// container's children render shifted by (-scrollX, -scrollY), so content
// that was off the top/left of the viewport becomes visible after scrolling
// and vice versa.
func TestScrollOffsetShiftsVisibleContent(t *testing.T) {
	container := Box(Props{"width": 5, "height": 1, "overflowY": "hidden"},
		Text("line0", nil), Text("line1", nil), Text("line2", nil))

	unscrolled := container
	box := ComputeLayout(unscrolled, LayoutContext{Width: 5, Height: 1})
	buf := NewCellBuffer(5, 1)
	RenderToBuffer(box, buf)
	if got := buf.ToDebugString(); got != "line0" {
		t.Fatalf("unscrolled visible row = %q, want %q", got, "line0")
	}

	scrolled := container.WithScroll(0, 1)
	box2 := ComputeLayout(scrolled, LayoutContext{Width: 5, Height: 1})
	buf2 := NewCellBuffer(5, 1)
	RenderToBuffer(box2, buf2)
	if got := buf2.ToDebugString(); got != "line1" {
		t.Fatalf("scrolled (offset 1) visible row = %q, want %q", got, "line1")
	}
}
