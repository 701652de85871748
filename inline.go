// Package tuicore: inline.go implements the "static" content mechanism for
// inline (non-alt-screen) mode: elements flagged static are extracted
// from the tree before the dynamic region is laid out, rendered
// independently, and their non-empty lines are committed above the dynamic
// region — scrolling into the terminal's normal history — rather than being
// redrawn every frame. An empty static wrapper (no non-blank lines) is
// skipped entirely so it never eats a blank scrollback line.
package tuicore

import "strings"

// ExtractStatic splits root's direct children into the dynamic tree (static
// children removed) and the ordered list of static subtrees pulled out.
func ExtractStatic(root VNode) (dynamic VNode, static []VNode) {
	kept := make([]VNode, 0, len(root.Children))
	for _, child := range root.Children {
		if isStatic(child) {
			static = append(static, child)
			continue
		}
		kept = append(kept, child)
	}
	dynamic = root
	dynamic.Children = withIndices(kept)
	return dynamic, static
}

func isStatic(node VNode) bool {
	v, ok := node.Props["static"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// RenderStaticLines lays out and paints node at the given width, returning
// its non-empty, trimmed lines — or nil if every line is blank, in which
// case nothing should be committed to scrollback.
func RenderStaticLines(node VNode, width int) []string {
	_, height := MeasureNode(node)
	if height <= 0 {
		return nil
	}

	laidOut := ComputeLayout(node, LayoutContext{Width: width, Height: height})
	buf := NewCellBuffer(width, height)
	RenderToBuffer(laidOut, buf)

	var lines []string
	for _, line := range strings.Split(buf.RenderTrimmed("\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CommitStatic writes lines to the terminal above the dynamic region: clear
// the dynamic region's rows first, print each static line preceded by a
// line-erase, then mark the driver for a full repaint of the dynamic region
// next frame (its previous contents have scrolled away with the static
// output).
func CommitStatic(driver *TerminalDriver, lines []string, dynamicHeight int) {
	if len(lines) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(MoveCursor(0, 0))
	for y := 0; y < dynamicHeight; y++ {
		sb.WriteString(ClearLine())
		if y < dynamicHeight-1 {
			sb.WriteString("\r\n")
		}
	}
	sb.WriteString(MoveCursor(0, 0))
	for _, line := range lines {
		sb.WriteString(ClearLine())
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}
	driver.Write(sb.String())
	driver.RequestRepaint()
}
