// Package tuicore: renderer_tree.go is the tree renderer (C3) — it paints a
// computed LayoutBox tree into a CellBuffer: background, border, text spans,
// then recurses into children under a clip/scroll transform.
package tuicore

import "strings"

// RenderToBuffer paints box (and its subtree) into buf. The clip stack used
// for overflow/scroll is owned by buf itself (CellBuffer.Clip/Unclip), not
// threaded through as a parameter.
func RenderToBuffer(box *LayoutBox, buf *CellBuffer) {
	node := box.Node
	if getDisplay(node.Props) == DisplayNone {
		return
	}

	switch node.Kind {
	case KindText:
		renderTextBox(box, buf)
		return
	case KindComponent:
		// Components are expanded to their rendered output before layout;
		// a Component-kind LayoutBox at render time means the reconciler
		// failed to expand it. Render children defensively rather than
		// silently dropping content.
		for _, child := range box.Children {
			RenderToBuffer(child, buf)
		}
		return
	}

	if handler := GetIntrinsicHandler(node.TypeID); handler != nil && handler.Render != nil {
		handler.Render(box, buf)
		for _, child := range box.Children {
			RenderToBuffer(child, buf)
		}
		return
	}

	renderBoxSelf(box, buf)

	overflowX := getOverflow(node.Props, "X")
	overflowY := getOverflow(node.Props, "Y")
	pushedClip := overflowX == OverflowHidden || overflowX == OverflowScroll ||
		overflowY == OverflowHidden || overflowY == OverflowScroll

	if pushedClip {
		buf.Clip(ClipRegion{
			MinX: box.InnerX, MinY: box.InnerY,
			MaxX: box.InnerX + box.InnerWidth, MaxY: box.InnerY + box.InnerHeight,
		})
	}

	scrollX, scrollY := node.ScrollX, node.ScrollY
	for _, child := range box.Children {
		renderChildWithScroll(child, buf, scrollX, scrollY)
	}

	if pushedClip {
		buf.Unclip()
	}
}

// renderChildWithScroll recurses into child with its origin shifted by the
// parent's scroll offset: child-origin becomes
// (parent.x - scroll.x, parent.y - scroll.y).
func renderChildWithScroll(child *LayoutBox, buf *CellBuffer, scrollX, scrollY int) {
	if scrollX == 0 && scrollY == 0 {
		RenderToBuffer(child, buf)
		return
	}
	shifted := *child
	shifted.X -= scrollX
	shifted.Y -= scrollY
	shifted.InnerX -= scrollX
	shifted.InnerY -= scrollY
	RenderToBuffer(&shifted, buf)
}

func renderBoxSelf(box *LayoutBox, buf *CellBuffer) {
	node := box.Node
	x, y, width, height := box.X, box.Y, box.Width, box.Height

	style := GetStyle(node.Props)
	if style.HasBackground() {
		bg := Style{Background: style.Background, BackgroundRGB: style.BackgroundRGB}
		buf.FillRect(x, y, width, height, ' ', bg)
	}

	sides := GetBorderSides(node.Props)
	borderStyle := GetBorderStyle(node.Props["border"])
	if borderStyle == BorderNone || width < 2 || height < 2 {
		return
	}
	chars := BorderCharSets[borderStyle]

	topStyle := borderSideStyle(sides, sides.TopColor)
	rightStyle := borderSideStyle(sides, sides.RightColor)
	bottomStyle := borderSideStyle(sides, sides.BottomColor)
	leftStyle := borderSideStyle(sides, sides.LeftColor)

	if sides.Top {
		buf.WriteChar(x, y, chars.TopLeft, topStyle)
		for dx := 1; dx < width-1; dx++ {
			buf.WriteChar(x+dx, y, chars.Horizontal, topStyle)
		}
		buf.WriteChar(x+width-1, y, chars.TopRight, topStyle)
	}
	for dy := 1; dy < height-1; dy++ {
		if sides.Left {
			buf.WriteChar(x, y+dy, chars.Vertical, leftStyle)
		}
		if sides.Right {
			buf.WriteChar(x+width-1, y+dy, chars.Vertical, rightStyle)
		}
	}
	if sides.Bottom {
		buf.WriteChar(x, y+height-1, chars.BottomLeft, bottomStyle)
		for dx := 1; dx < width-1; dx++ {
			buf.WriteChar(x+dx, y+height-1, chars.Horizontal, bottomStyle)
		}
		buf.WriteChar(x+width-1, y+height-1, chars.BottomRight, bottomStyle)
	}
}

func borderSideStyle(sides BorderSides, override *Color) Style {
	color := sides.Common
	if override != nil {
		color = *override
	}
	return Style{Color: color, Dim: sides.Dim}
}

// renderTextBox paints a text node's own Text, one line per row, at the
// box's top-left in the node's style. Child text nodes are not painted as
// separate spans.
func renderTextBox(box *LayoutBox, buf *CellBuffer) {
	node := box.Node
	style := GetStyle(node.Props)
	lines := strings.Split(node.Text, "\n")
	for i, line := range lines {
		buf.Write(box.X, box.Y+i, line, style)
	}
}
