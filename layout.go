// Package tuicore: layout.go implements the flexbox layout engine (C2) —
// from an element tree and an outer size, it produces a LayoutBox per
// element carrying its absolute rectangle, ready for the tree renderer (C3).
package tuicore

import (
	"strconv"
	"strings"
)

// Direction specifies the main axis for flex layout.
type Direction string

const (
	Row    Direction = "row"
	Column Direction = "column"
)

// Justify specifies alignment along the main axis.
type Justify string

const (
	JustifyStart        Justify = "start"
	JustifyCenter       Justify = "center"
	JustifyEnd          Justify = "end"
	JustifySpaceBetween Justify = "space-between"
	JustifySpaceAround  Justify = "space-around"
)

// Align specifies alignment along the cross axis.
type Align string

const (
	AlignStart   Align = "start"
	AlignCenter  Align = "center"
	AlignEnd     Align = "end"
	AlignStretch Align = "stretch"
)

// Position specifies positioning mode.
type Position string

const (
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
)

// Display controls whether an element (and its subtree) participates in
// layout at all: an element with Display::None produces no layout and its
// children are never visited.
type Display string

const (
	DisplayFlex Display = "flex"
	DisplayNone Display = "none"
)

// BorderStyle specifies the border glyph set.
type BorderStyle string

const (
	BorderNone    BorderStyle = "none"
	BorderSingle  BorderStyle = "single"
	BorderDouble  BorderStyle = "double"
	BorderRounded BorderStyle = "rounded"
	BorderBold    BorderStyle = "bold"
)

// Overflow specifies overflow behavior along one axis.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowScroll  Overflow = "scroll"
)

// Spacing represents padding or margin on all sides.
type Spacing struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// BorderChars holds the glyphs for drawing one border style.
type BorderChars struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// BorderCharSets maps each border kind to its glyph set.
var BorderCharSets = map[BorderStyle]BorderChars{
	BorderSingle: {
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
	},
	BorderDouble: {
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
	},
	BorderRounded: {
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
	},
	BorderBold: {
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Horizontal: '━', Vertical: '┃',
	},
}

// BorderSides holds per-side enable flags and colours for a border, falling
// back to a common colour when a side colour isn't set.
type BorderSides struct {
	Top, Right, Bottom, Left bool
	TopColor, RightColor     *Color
	BottomColor, LeftColor   *Color
	Common                   Color
	Dim                      bool
}

// NormalizeSpacing converts various spacing inputs to a Spacing struct.
func NormalizeSpacing(value any) Spacing {
	switch v := value.(type) {
	case int:
		return Spacing{Top: v, Right: v, Bottom: v, Left: v}
	case float64:
		i := int(v)
		return Spacing{Top: i, Right: i, Bottom: i, Left: i}
	case Spacing:
		return v
	case map[string]any:
		return Spacing{
			Top:    getInt(v, "top"),
			Right:  getInt(v, "right"),
			Bottom: getInt(v, "bottom"),
			Left:   getInt(v, "left"),
		}
	default:
		return Spacing{}
	}
}

// GetSpacing extracts spacing from props, supporting a base prop plus
// directional overrides, e.g. GetSpacing(props, "padding") also reads
// "paddingTop"/"paddingRight"/"paddingBottom"/"paddingLeft".
func GetSpacing(props Props, baseProp string) Spacing {
	spacing := NormalizeSpacing(props[baseProp])
	if v, ok := props[baseProp+"Top"]; ok {
		spacing.Top = getIntFromAny(v)
	}
	if v, ok := props[baseProp+"Right"]; ok {
		spacing.Right = getIntFromAny(v)
	}
	if v, ok := props[baseProp+"Bottom"]; ok {
		spacing.Bottom = getIntFromAny(v)
	}
	if v, ok := props[baseProp+"Left"]; ok {
		spacing.Left = getIntFromAny(v)
	}
	return spacing
}

func getIntFromAny(v any) int {
	switch i := v.(type) {
	case int:
		return i
	case float64:
		return int(i)
	}
	return 0
}

func getInt(m map[string]any, key string) int {
	if v, ok := m[key]; ok {
		return getIntFromAny(v)
	}
	return 0
}

// GetBorderStyle normalizes a "border" prop value to a BorderStyle.
func GetBorderStyle(border any) BorderStyle {
	switch v := border.(type) {
	case bool:
		if v {
			return BorderSingle
		}
		return BorderNone
	case string:
		return BorderStyle(v)
	case BorderStyle:
		return v
	default:
		return BorderNone
	}
}

// GetBorderSides reads per-side border enable flags and colours from props.
// "border" alone enables all four sides; "borderTop"/"borderRight"/...
// (bool) override individual sides; "borderColor" sets the common colour,
// "borderTopColor" etc. override per side.
func GetBorderSides(props Props) BorderSides {
	style := GetBorderStyle(props["border"])
	all := style != BorderNone
	sides := BorderSides{Top: all, Right: all, Bottom: all, Left: all}

	if v, ok := props["borderTop"].(bool); ok {
		sides.Top = v
	}
	if v, ok := props["borderRight"].(bool); ok {
		sides.Right = v
	}
	if v, ok := props["borderBottom"].(bool); ok {
		sides.Bottom = v
	}
	if v, ok := props["borderLeft"].(bool); ok {
		sides.Left = v
	}

	if c, ok := resolveColorProp(props["borderColor"]); ok {
		sides.Common = c
	} else {
		sides.Common = ColorDefault
	}
	if c, ok := resolveColorProp(props["borderTopColor"]); ok {
		sides.TopColor = &c
	}
	if c, ok := resolveColorProp(props["borderRightColor"]); ok {
		sides.RightColor = &c
	}
	if c, ok := resolveColorProp(props["borderBottomColor"]); ok {
		sides.BottomColor = &c
	}
	if c, ok := resolveColorProp(props["borderLeftColor"]); ok {
		sides.LeftColor = &c
	}
	sides.Dim, _ = props["borderDim"].(bool)
	return sides
}

func resolveColorProp(v any) (Color, bool) {
	if v == nil {
		return ColorNone, false
	}
	c, _ := toColor(v)
	return c, c != ColorNone
}

// GetStyle extracts paintable Style attributes from props["style"].
func GetStyle(props Props) Style {
	styleVal, ok := props["style"]
	if !ok || styleVal == nil {
		return EmptyStyle
	}
	switch s := styleVal.(type) {
	case Style:
		return s
	case map[string]any:
		return mapToStyle(s)
	default:
		return EmptyStyle
	}
}

func mapToStyle(m map[string]any) Style {
	style := Style{}
	if v, ok := m["color"]; ok {
		style.Color, style.ColorRGB = toColor(v)
	}
	if v, ok := m["background"]; ok {
		style.Background, style.BackgroundRGB = toColor(v)
	}
	if v, ok := m["bold"].(bool); ok {
		style.Bold = v
	}
	if v, ok := m["dim"].(bool); ok {
		style.Dim = v
	}
	if v, ok := m["italic"].(bool); ok {
		style.Italic = v
	}
	if v, ok := m["underline"].(bool); ok {
		style.Underline = v
	}
	if v, ok := m["inverse"].(bool); ok {
		style.Inverse = v
	}
	if v, ok := m["strikethrough"].(bool); ok {
		style.Strikethrough = v
	}
	if v, ok := m["hyperlink"].(string); ok {
		style.HyperlinkURL = v
	}
	return style
}

func toColor(v any) (Color, *RGB) {
	switch c := v.(type) {
	case string:
		if color, ok := NameToColor[c]; ok {
			return color, nil
		}
		return ColorNone, nil
	case Color:
		return c, nil
	case RGB:
		return ColorNone, &c
	case *RGB:
		return ColorNone, c
	default:
		return ColorNone, nil
	}
}

// ClipRegion defines the visible area for clipping content. MaxX/MaxY are
// exclusive.
type ClipRegion struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// IsInClip reports whether (x,y) falls inside clip, or true if clip is nil.
func IsInClip(x, y int, clip *ClipRegion) bool {
	if clip == nil {
		return true
	}
	return x >= clip.MinX && x < clip.MaxX && y >= clip.MinY && y < clip.MaxY
}

// IntersectClip intersects two clip regions.
func IntersectClip(a, b *ClipRegion) *ClipRegion {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &ClipRegion{
		MinX: max(a.MinX, b.MinX),
		MinY: max(a.MinY, b.MinY),
		MaxX: min(a.MaxX, b.MaxX),
		MaxY: min(a.MaxY, b.MaxY),
	}
}

// LayoutBox is the computed rectangle for one VNode, plus its children's
// boxes in render order (relative/flex children first, absolute children —
// z-index sorted — appended last).
type LayoutBox struct {
	X, Y          int
	Width, Height int

	InnerX, InnerY          int
	InnerWidth, InnerHeight int

	Node     VNode
	Children []*LayoutBox
	ZIndex   int
}

// LayoutContext is the available space handed down to a node during layout.
type LayoutContext struct {
	X, Y          int
	Width, Height int
}

type layoutResult struct {
	box           *LayoutBox
	absoluteBoxes []*LayoutBox
}

// RuneWidth returns the display width of a string (wide glyphs count 2).
func RuneWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidthOf(r)
	}
	return w
}

// ComputeLayout lays out a (reconciled) VNode tree against an outer
// width/height, merging absolutely positioned descendants back in z-index
// order.
func ComputeLayout(node VNode, ctx LayoutContext) *LayoutBox {
	result := layoutNode(node, ctx)

	allAbsolute := collectAbsoluteBoxes(result.box)
	allAbsolute = append(allAbsolute, result.absoluteBoxes...)
	sortByZIndex(allAbsolute)

	children := make([]*LayoutBox, len(result.box.Children)+len(allAbsolute))
	copy(children, result.box.Children)
	copy(children[len(result.box.Children):], allAbsolute)

	out := *result.box
	out.Children = children
	return &out
}

// RegisterMeasurements walks a computed layout tree and publishes each box's
// inner size into rt: by NodeKey unconditionally, and additionally by
// MeasureIDProp for any node that set one. Called once per frame after
// ComputeLayout, so UseMeasure reflects this frame's actual paint rather
// than a component-supplied guess.
func RegisterMeasurements(rt *RuntimeContext, box *LayoutBox) {
	if rt == nil || box == nil {
		return
	}
	rt.ClearMeasurements()
	registerMeasurementsRec(rt, box)
}

func registerMeasurementsRec(rt *RuntimeContext, box *LayoutBox) {
	rt.RegisterMeasurementByKey(box.Node.Key(), box.InnerWidth, box.InnerHeight)
	if id, ok := GetStringProp(box.Node.Props, MeasureIDProp); ok {
		rt.RegisterMeasurement(id, box.InnerWidth, box.InnerHeight)
	}
	for _, child := range box.Children {
		registerMeasurementsRec(rt, child)
	}
}

func sortByZIndex(boxes []*LayoutBox) {
	for i := 0; i < len(boxes)-1; i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].ZIndex > boxes[j].ZIndex {
				boxes[i], boxes[j] = boxes[j], boxes[i]
			}
		}
	}
}

func collectAbsoluteBoxes(box *LayoutBox) []*LayoutBox {
	var out []*LayoutBox
	for _, child := range box.Children {
		if getPosition(child.Node.Props) == PositionAbsolute {
			out = append(out, child)
		}
		out = append(out, collectAbsoluteBoxes(child)...)
	}
	return out
}

// MeasureNode measures a node's natural (unconstrained-by-parent) size.
func MeasureNode(node VNode) (width, height int) { return measureNode(node) }

func measureNode(node VNode) (width, height int) {
	if getDisplay(node.Props) == DisplayNone {
		return 0, 0
	}
	if node.IsTextNode() {
		return measureText(node.Text)
	}

	handler := GetIntrinsicHandler(node.TypeID)
	if handler != nil && handler.Measure != nil {
		return handler.Measure(node)
	}

	padding := GetSpacing(node.Props, "padding")
	borderSize := 0
	if GetBorderStyle(node.Props["border"]) != BorderNone {
		borderSize = 1
	}
	direction := getDirection(node.Props)
	gap := GetIntProp(node.Props, "gap", 0)

	relChildren := filterRelativeChildren(node)
	contentWidth, contentHeight := 0, 0
	for i, c := range relChildren {
		w, h := measureNode(c)
		if direction == Row {
			contentWidth += w
			if i > 0 {
				contentWidth += gap
			}
			contentHeight = max(contentHeight, h)
		} else {
			contentHeight += h
			if i > 0 {
				contentHeight += gap
			}
			contentWidth = max(contentWidth, w)
		}
	}

	totalWidth := contentWidth + padding.Left + padding.Right + borderSize*2
	totalHeight := contentHeight + padding.Top + padding.Bottom + borderSize*2

	if ew := GetIntProp(node.Props, "width", -1); ew >= 0 {
		totalWidth = ew
	}
	if eh := GetIntProp(node.Props, "height", -1); eh >= 0 {
		totalHeight = eh
	}
	totalWidth = max(totalWidth, GetIntProp(node.Props, "minWidth", 0))
	totalHeight = max(totalHeight, GetIntProp(node.Props, "minHeight", 0))
	if mw := GetIntProp(node.Props, "maxWidth", -1); mw >= 0 {
		totalWidth = min(totalWidth, mw)
	}
	if mh := GetIntProp(node.Props, "maxHeight", -1); mh >= 0 {
		totalHeight = min(totalHeight, mh)
	}

	return totalWidth, totalHeight
}

func measureText(text string) (int, int) {
	lines := strings.Split(text, "\n")
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, RuneWidth(line))
	}
	return maxWidth, len(lines)
}

func layoutNode(node VNode, ctx LayoutContext) layoutResult {
	if getDisplay(node.Props) == DisplayNone {
		return layoutResult{box: &LayoutBox{Node: node}}
	}

	if node.IsTextNode() {
		w, h := measureText(node.Text)
		w = min(w, max(ctx.Width, 0))
		return layoutResult{box: &LayoutBox{
			X: ctx.X, Y: ctx.Y, Width: w, Height: h,
			InnerX: ctx.X, InnerY: ctx.Y, InnerWidth: w, InnerHeight: h,
			Node: node, ZIndex: GetIntProp(node.Props, "zIndex", 0),
		}}
	}

	if handler := GetIntrinsicHandler(node.TypeID); handler != nil && handler.Layout != nil {
		box := handler.Layout(node, ctx)
		return layoutResult{box: box}
	}

	return layoutFlexContainer(node, ctx)
}

func layoutFlexContainer(node VNode, ctx LayoutContext) layoutResult {
	var absoluteBoxes []*LayoutBox

	padding := GetSpacing(node.Props, "padding")
	margin := GetSpacing(node.Props, "margin")
	borderSize := 0
	if GetBorderStyle(node.Props["border"]) != BorderNone {
		borderSize = 1
	}

	direction := getDirection(node.Props)
	justify := getJustify(node.Props)
	align := getAlign(node.Props)
	gap := GetIntProp(node.Props, "gap", 0)
	rowGap := GetIntProp(node.Props, "rowGap", gap)
	colGap := GetIntProp(node.Props, "columnGap", gap)
	mainGap := colGap
	if direction == Column {
		mainGap = rowGap
	}

	measuredW, measuredH := measureNode(node)
	boxWidth := GetIntProp(node.Props, "width", -1)
	if boxWidth < 0 {
		boxWidth = ctx.Width - margin.Left - margin.Right
		if boxWidth < 0 {
			boxWidth = measuredW
		}
	}
	boxHeight := GetIntProp(node.Props, "height", -1)
	if boxHeight < 0 {
		boxHeight = ctx.Height - margin.Top - margin.Bottom
		if boxHeight < 0 {
			boxHeight = measuredH
		}
	}

	boxX := ctx.X + margin.Left
	boxY := ctx.Y + margin.Top

	innerX := boxX + borderSize + padding.Left
	innerY := boxY + borderSize + padding.Top
	innerWidth := max(0, boxWidth-borderSize*2-padding.Left-padding.Right)
	innerHeight := max(0, boxHeight-borderSize*2-padding.Top-padding.Bottom)

	relChildren := filterRelativeChildren(node)
	absChildren := filterAbsoluteChildren(node)

	measurements := make([]childMeasurement, len(relChildren))
	for i, c := range relChildren {
		w, h := measureNode(c)
		measurements[i] = childMeasurement{node: c, width: w, height: h}
	}

	childBoxes := layoutFlexChildren(
		measurements,
		LayoutContext{X: innerX, Y: innerY, Width: innerWidth, Height: innerHeight},
		direction, justify, align, mainGap, &absoluteBoxes,
	)

	for _, absChild := range absChildren {
		absX, absY := resolveOffsets(absChild.Props, boxWidth, boxHeight)
		result := layoutNode(absChild, LayoutContext{
			X: boxX + absX, Y: boxY + absY,
			Width: ctx.Width - absX, Height: ctx.Height - absY,
		})
		absoluteBoxes = append(absoluteBoxes, result.box)
		absoluteBoxes = append(absoluteBoxes, result.absoluteBoxes...)
	}

	return layoutResult{
		box: &LayoutBox{
			X: boxX, Y: boxY, Width: boxWidth, Height: boxHeight,
			InnerX: innerX, InnerY: innerY,
			InnerWidth: innerWidth, InnerHeight: innerHeight,
			Node: node, Children: childBoxes,
			ZIndex: GetIntProp(node.Props, "zIndex", 0),
		},
		absoluteBoxes: absoluteBoxes,
	}
}

// resolveOffsets reads t/r/b/l positioning offsets for an absolutely
// positioned child, preferring left/top, falling back to computing from
// right/bottom against the parent box.
func resolveOffsets(props Props, parentW, parentH int) (x, y int) {
	if v, ok := props["left"]; ok {
		x = getIntFromAny(v)
	} else if v, ok := props["right"]; ok {
		x = parentW - getIntFromAny(v)
	} else {
		x = GetIntProp(props, "x", 0)
	}
	if v, ok := props["top"]; ok {
		y = getIntFromAny(v)
	} else if v, ok := props["bottom"]; ok {
		y = parentH - getIntFromAny(v)
	} else {
		y = GetIntProp(props, "y", 0)
	}
	return x, y
}

type childMeasurement struct {
	node   VNode
	width  int
	height int
}

func layoutFlexChildren(
	children []childMeasurement,
	ctx LayoutContext,
	direction Direction,
	justify Justify,
	align Align,
	gap int,
	absoluteBoxes *[]*LayoutBox,
) []*LayoutBox {
	if len(children) == 0 {
		return nil
	}
	isRow := direction == Row

	totalMainSize := 0
	for i, child := range children {
		margin := GetSpacing(child.node.Props, "margin")
		if isRow {
			totalMainSize += margin.Left + margin.Right + child.width
		} else {
			totalMainSize += margin.Top + margin.Bottom + child.height
		}
		if i > 0 {
			totalMainSize += gap
		}
	}

	availableMain, availableCross := ctx.Width, ctx.Height
	if !isRow {
		availableMain, availableCross = ctx.Height, ctx.Width
	}

	totalGrow, totalShrink := 0.0, 0.0
	growValues := make([]float64, len(children))
	shrinkValues := make([]float64, len(children))
	for i, child := range children {
		grow := GetFloatProp(child.node.Props, "grow", 0)
		shrink := GetFloatProp(child.node.Props, "shrink", 1)
		if !isRow && child.node.IsTextNode() {
			// A text node is always laid out at its full line count, so it
			// cannot give up height in a column.
			shrink = 0
		}
		hasExplicitMain := isRow && GetIntProp(child.node.Props, "width", -1) >= 0 ||
			!isRow && GetIntProp(child.node.Props, "height", -1) >= 0
		if hasExplicitMain {
			grow = 0
		}
		growValues[i] = grow
		shrinkValues[i] = shrink
		totalGrow += grow
		totalShrink += shrink
	}

	extraSpace := 0
	deficit := 0
	if availableMain > totalMainSize {
		extraSpace = availableMain - totalMainSize
	} else {
		deficit = totalMainSize - availableMain
	}

	growShares := make([]int, len(children))
	if totalGrow > 0 && extraSpace > 0 {
		remaining := extraSpace
		for i := range children {
			if growValues[i] > 0 {
				share := int(float64(extraSpace) * growValues[i] / totalGrow)
				growShares[i] = share
				remaining -= share
			}
		}
		for i := range children {
			if remaining <= 0 {
				break
			}
			if growValues[i] > 0 {
				growShares[i]++
				remaining--
			}
		}
	}

	shrinkAmounts := make([]int, len(children))
	if totalShrink > 0 && deficit > 0 {
		remaining := deficit
		for i := range children {
			if shrinkValues[i] > 0 {
				share := int(float64(deficit) * shrinkValues[i] / totalShrink)
				shrinkAmounts[i] = share
				remaining -= share
			}
		}
		for i := range children {
			if remaining <= 0 {
				break
			}
			if shrinkValues[i] > 0 {
				shrinkAmounts[i]++
				remaining--
			}
		}
	}

	mainPos := 0
	extraGap := 0
	switch justify {
	case JustifyCenter:
		mainPos = max(0, (availableMain-totalMainSize)/2)
	case JustifyEnd:
		mainPos = max(0, availableMain-totalMainSize)
	case JustifySpaceBetween:
		if len(children) > 1 {
			extraGap = max(0, (availableMain-totalMainSize+gap*(len(children)-1))/(len(children)-1))
		}
	case JustifySpaceAround:
		totalSpace := availableMain - totalMainSize + gap*(len(children)-1)
		extraGap = totalSpace / len(children)
		mainPos = extraGap / 2
	}

	var boxes []*LayoutBox
	for i, child := range children {
		margin := GetSpacing(child.node.Props, "margin")
		var mainSize, crossSize, marginBefore, marginAfter int
		if isRow {
			mainSize, crossSize = child.width, child.height
			marginBefore, marginAfter = margin.Left, margin.Right
		} else {
			mainSize, crossSize = child.height, child.width
			marginBefore, marginAfter = margin.Top, margin.Bottom
		}
		mainSize += growShares[i]
		mainSize = max(0, mainSize-shrinkAmounts[i])

		crossPos, actualCrossSize := 0, crossSize
		childAlign := align
		if v, ok := child.node.Props["alignSelf"]; ok {
			if s, ok := v.(string); ok {
				childAlign = Align(s)
			}
		}
		switch childAlign {
		case AlignCenter:
			crossPos = max(0, (availableCross-crossSize)/2)
		case AlignEnd:
			crossPos = max(0, availableCross-crossSize)
		case AlignStretch:
			actualCrossSize = availableCross
		case AlignStart:
		default:
			actualCrossSize = availableCross
		}

		var childX, childY, childWidth, childHeight int
		if isRow {
			childX, childY = ctx.X+mainPos, ctx.Y+crossPos
			childWidth = mainSize + margin.Left + margin.Right
			childHeight = actualCrossSize + margin.Top + margin.Bottom
		} else {
			childX, childY = ctx.X+crossPos, ctx.Y+mainPos
			childWidth = actualCrossSize + margin.Left + margin.Right
			childHeight = mainSize + margin.Top + margin.Bottom
		}

		result := layoutNode(child.node, LayoutContext{X: childX, Y: childY, Width: childWidth, Height: childHeight})
		boxes = append(boxes, result.box)
		*absoluteBoxes = append(*absoluteBoxes, result.absoluteBoxes...)

		effectiveGap := gap
		if justify == JustifySpaceBetween || justify == JustifySpaceAround {
			effectiveGap = extraGap
		}
		mainPos += marginBefore + mainSize + marginAfter + effectiveGap
	}
	return boxes
}

// WrapText wraps text to fit within maxWidth, breaking on the last word
// boundary before the limit; when that boundary falls in the first half of
// the line (or there is none), the line is cut at maxWidth instead.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		remaining := line
		for RuneWidth(remaining) > maxWidth {
			breakPoint := lastSpaceWithin(remaining, maxWidth)
			if breakPoint <= 0 || breakPoint < maxWidth/2 {
				breakPoint = maxWidth
			}
			out = append(out, remaining[:breakPoint])
			remaining = strings.TrimLeft(remaining[breakPoint:], " ")
		}
		out = append(out, remaining)
	}
	return out
}

func lastSpaceWithin(s string, width int) int {
	limit := min(width+1, len(s))
	return strings.LastIndex(s[:limit], " ")
}

// GetIntProp reads an int-valued prop, coercing float64, defaulting
// otherwise. Percent strings ("50%") and "auto" are not numeric and fall
// through to defaultVal — callers needing those call GetDimensionProp.
func GetIntProp(props Props, key string, defaultVal int) int {
	if props == nil {
		return defaultVal
	}
	v, ok := props[key]
	if !ok {
		return defaultVal
	}
	switch i := v.(type) {
	case int:
		return i
	case float64:
		return int(i)
	default:
		return defaultVal
	}
}

// GetFloatProp reads a float-valued prop (used for grow/shrink weights).
func GetFloatProp(props Props, key string, defaultVal float64) float64 {
	if props == nil {
		return defaultVal
	}
	v, ok := props[key]
	if !ok {
		return defaultVal
	}
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	default:
		return defaultVal
	}
}

// GetBoolProp reads a bool-valued prop.
func GetBoolProp(props Props, key string, defaultVal bool) bool {
	if props == nil {
		return defaultVal
	}
	if b, ok := props[key].(bool); ok {
		return b
	}
	return defaultVal
}

// GetStringProp reads a string-valued prop.
func GetStringProp(props Props, key string) (string, bool) {
	if props == nil {
		return "", false
	}
	s, ok := props[key].(string)
	return s, ok
}

// MeasureIDProp is the Box/Text prop key UseMeasure correlates against: a
// node built with Props{MeasureIDProp: id} has its InnerWidth/InnerHeight
// registered under id after every layout pass.
const MeasureIDProp = "measureID"

// GetDimensionProp resolves a width/height-like prop against the available
// space: an int is taken as cells, a "NN%" string as a percentage of
// available, "auto" returns -1 to signal "use measured size"; absence (or nil
// props) returns defaultVal.
func GetDimensionProp(props Props, key string, available int, defaultVal int) int {
	if props == nil {
		return defaultVal
	}
	v, ok := props[key]
	if !ok {
		return defaultVal
	}
	switch d := v.(type) {
	case int:
		return d
	case float64:
		return int(d)
	case string:
		if d == "auto" {
			return -1
		}
		if strings.HasSuffix(d, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSuffix(d, "%"), 64)
			if err != nil {
				return defaultVal
			}
			return int(float64(available) * pct / 100)
		}
		return defaultVal
	default:
		return defaultVal
	}
}

func getDirection(props Props) Direction {
	if props == nil {
		return Column
	}
	switch v := props["direction"].(type) {
	case string:
		return Direction(v)
	case Direction:
		return v
	}
	return Column
}

func getJustify(props Props) Justify {
	if props == nil {
		return JustifyStart
	}
	switch v := props["justify"].(type) {
	case string:
		return Justify(v)
	case Justify:
		return v
	}
	return JustifyStart
}

func getAlign(props Props) Align {
	if props == nil {
		return AlignStretch
	}
	switch v := props["align"].(type) {
	case string:
		return Align(v)
	case Align:
		return v
	}
	return AlignStretch
}

func getPosition(props Props) Position {
	if props == nil {
		return PositionRelative
	}
	switch v := props["position"].(type) {
	case string:
		return Position(v)
	case Position:
		return v
	}
	return PositionRelative
}

func getDisplay(props Props) Display {
	if props == nil {
		return DisplayFlex
	}
	switch v := props["display"].(type) {
	case string:
		return Display(v)
	case Display:
		return v
	}
	return DisplayFlex
}

// getOverflow reads "overflowX"/"overflowY" (falling back to "overflow" for
// both axes).
func getOverflow(props Props, axis string) Overflow {
	if props == nil {
		return OverflowVisible
	}
	if v, ok := props["overflow"+axis]; ok {
		if s, ok := v.(string); ok {
			return Overflow(s)
		}
	}
	if v, ok := props["overflow"]; ok {
		if s, ok := v.(string); ok {
			return Overflow(s)
		}
	}
	return OverflowVisible
}

func filterRelativeChildren(node VNode) []VNode {
	var out []VNode
	for _, c := range node.Children {
		if getPosition(c.Props) != PositionAbsolute {
			out = append(out, c)
		}
	}
	return out
}

func filterAbsoluteChildren(node VNode) []VNode {
	var out []VNode
	for _, c := range node.Children {
		if getPosition(c.Props) == PositionAbsolute {
			out = append(out, c)
		}
	}
	return out
}
