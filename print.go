// Package tuicore: print.go is the render_to_string family — render a
// view to a fixed-size buffer and return its text, for snapshot tests and
// non-interactive output, without spinning up an event loop or terminal
// driver.
package tuicore

// RenderToStringOptions configures one render_to_string call.
type RenderToStringOptions struct {
	Width, Height int // 0 means auto-detect from the current terminal
	NoTrim        bool
	Raw           bool // emit CRLF line endings instead of LF
}

// RenderToString renders view once into a buffer sized per opts and returns
// its textual form. Plain mode (the default) trims trailing whitespace from
// each line; NoTrim preserves it; Raw uses CRLF line separators instead of
// LF.
func RenderToString(view VNode, opts RenderToStringOptions) string {
	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		if driver, err := NewTerminalDriver(nil); err == nil {
			if w, h := driver.Size(); w > 0 && h > 0 {
				if width == 0 {
					width = w
				}
				if height == 0 {
					height = h
				}
			}
			driver.Close()
		}
	}
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	expanded := ExpandTree(view, NewRegistry())
	ctx := LayoutContext{Width: width, Height: height}
	box := ComputeLayout(expanded, ctx)

	buf := NewCellBuffer(width, height)
	RenderToBuffer(box, buf)

	sep := "\n"
	if opts.Raw {
		sep = "\r\n"
	}
	if opts.NoTrim {
		if opts.Raw {
			return buf.RenderRaw()
		}
		return buf.Render()
	}
	return buf.RenderTrimmed(sep)
}
