package tuicore

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// MaxBufferHeight bounds how far a LogicalBuffer will auto-grow, preventing
// runaway memory use from unbounded inline/overflow content.
const MaxBufferHeight = 10000

// CellBuffer is a fixed-size 2D grid of styled cells (C1): the core data
// structure the tree renderer paints into and the diff/ANSI stages read
// from. It owns its own clip stack — writes outside the current clip
// (intersected down through the stack) are silently dropped.
type CellBuffer struct {
	width, height int
	cells         []Cell
	clipStack     []ClipRegion
}

// NewCellBuffer creates a new buffer filled with empty cells.
func NewCellBuffer(w, h int) *CellBuffer {
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = EmptyCell
	}
	return &CellBuffer{width: w, height: h, cells: cells}
}

func (b *CellBuffer) index(x, y int) int { return y*b.width + x }

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Width returns the buffer width.
func (b *CellBuffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *CellBuffer) Height() int { return b.height }

// Get returns the cell at (x, y), or EmptyCell if out of bounds.
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return EmptyCell
	}
	return b.cells[b.index(x, y)]
}

// currentClip returns the intersection of every region on the clip stack,
// or nil if the stack is empty (no restriction).
func (b *CellBuffer) currentClip() *ClipRegion {
	if len(b.clipStack) == 0 {
		return nil
	}
	region := b.clipStack[0]
	for _, r := range b.clipStack[1:] {
		region = *IntersectClip(&region, &r)
	}
	return &region
}

// Clip pushes a clip region onto the stack, intersected with whatever is
// already active. Clip/Unclip must be balanced within a single render
// an unbalanced stack is a renderer bug.
func (b *CellBuffer) Clip(region ClipRegion) {
	if current := b.currentClip(); current != nil {
		region = *IntersectClip(current, &region)
	}
	b.clipStack = append(b.clipStack, region)
}

// Unclip pops the most recently pushed clip region.
func (b *CellBuffer) Unclip() {
	if len(b.clipStack) == 0 {
		return
	}
	b.clipStack = b.clipStack[:len(b.clipStack)-1]
}

// ClipDepth returns the number of clip regions currently pushed.
func (b *CellBuffer) ClipDepth() int { return len(b.clipStack) }

// set writes a cell at (x, y) if it falls within bounds and the active
// clip; otherwise it is silently dropped.
func (b *CellBuffer) set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	if clip := b.currentClip(); clip != nil && !IsInClip(x, y, clip) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// wipe replaces a cell with a blank space, used to clear the continuation
// half of a wide glyph before it is overwritten.
func (b *CellBuffer) wipe(x, y int) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = EmptyCell
}

// WriteChar writes a single rune at (x, y) with the given style, handling
// the case where it overwrites a wide glyph's continuation or head cell.
func (b *CellBuffer) WriteChar(x, y int, ch rune, style Style) {
	b.clearWideOverlap(x, y)
	w := runewidth.RuneWidth(ch)
	if w == 2 {
		// A width-2 glyph that would straddle the clip/buffer edge is
		// replaced with a space.
		clip := b.currentClip()
		rightOK := b.inBounds(x+1, y) && (clip == nil || IsInClip(x+1, y, clip))
		if !rightOK {
			b.set(x, y, New(' ', style))
			return
		}
		b.clearWideOverlap(x+1, y)
		b.set(x, y, Cell{Char: ch, Style: style})
		b.set(x+1, y, Cell{Char: ' ', Style: style, Continuation: true})
		return
	}
	b.set(x, y, New(ch, style))
}

// clearWideOverlap clears the cell at (x,y) plus, if (x,y) is the
// continuation half of a wide glyph, the head cell to its left, or if it is
// the head of a wide glyph, the continuation to its right. "Overwriting the
// continuation of a wide glyph replaces both cells with spaces.
func (b *CellBuffer) clearWideOverlap(x, y int) {
	if !b.inBounds(x, y) {
		return
	}
	existing := b.cells[b.index(x, y)]
	if existing.Continuation && x > 0 {
		b.wipe(x-1, y)
		b.wipe(x, y)
		return
	}
	if runewidth.RuneWidth(existing.Char) == 2 && b.inBounds(x+1, y) {
		next := b.cells[b.index(x+1, y)]
		if next.Continuation {
			b.wipe(x, y)
			b.wipe(x+1, y)
		}
	}
}

// Write writes text starting at (x, y), advancing the virtual cursor by the
// Unicode width of each grapheme cluster (not each rune) so combining
// sequences and emoji don't over-advance.
func (b *CellBuffer) Write(x, y int, text string, style Style) {
	col := x
	it := graphemes.FromString(text)
	for it.Next() {
		g := it.Value().String()
		w := runewidth.StringWidth(g)
		if w == 2 {
			r := firstRune(g)
			b.WriteChar(col, y, r, style)
			col += 2
			continue
		}
		r := firstRune(g)
		b.WriteChar(col, y, r, style)
		col++
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// FillRect fills a rectangle with a repeated character and style.
func (b *CellBuffer) FillRect(x, y, w, h int, ch rune, style Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.set(col, row, New(ch, style))
		}
	}
}

// Clear resets the entire buffer to empty cells. It does not reset the
// clip stack.
func (b *CellBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = EmptyCell
	}
}

// Render serializes the buffer row-major to a string, emitting attribute
// changes only when they differ from what's already active, and
// terminating with an explicit reset. Rows are separated with LF;
// use RenderRaw for CRLF (raw-mode terminal output).
func (b *CellBuffer) Render() string {
	return b.render("\n", false)
}

// RenderRaw is like Render but separates rows with CRLF, matching raw-mode
// terminal line discipline.
func (b *CellBuffer) RenderRaw() string {
	return b.render("\r\n", false)
}

// RenderTrimmed is like Render but omits each row's trailing blank cells and
// any wholly-blank trailing rows. Trimming has to happen here, against the
// cell grid, rather than as a string post-process on the ANSI output: a
// style reset always trails a row's content, so a blank cell's trailing
// space character is never actually the last byte of the rendered line for
// a naive suffix trim to find.
func (b *CellBuffer) RenderTrimmed(lineSep string) string {
	return b.render(lineSep, true)
}

func (b *CellBuffer) lastNonBlankCol(y int) int {
	for x := b.width - 1; x >= 0; x-- {
		c := b.Get(x, y)
		if c.Char != ' ' || !c.Style.Equal(EmptyStyle) {
			return x
		}
	}
	return -1
}

func (b *CellBuffer) lastNonBlankRow() int {
	for y := b.height - 1; y >= 0; y-- {
		if b.lastNonBlankCol(y) >= 0 {
			return y
		}
	}
	return -1
}

func (b *CellBuffer) render(lineSep string, trim bool) string {
	var sb strings.Builder
	sb.Grow(b.width * b.height * 12)

	maxRow := b.height - 1
	if trim {
		maxRow = b.lastNonBlankRow()
		if maxRow < 0 {
			return ""
		}
	}

	var current *Style
	hyperlink := ""

	for y := 0; y <= maxRow; y++ {
		if y > 0 {
			if current != nil {
				sb.WriteString(resetStr)
				current = nil
			}
			if hyperlink != "" {
				sb.WriteString(hyperlinkEnd)
				hyperlink = ""
			}
			sb.WriteString(lineSep)
		}
		rowWidth := b.width
		if trim {
			rowWidth = b.lastNonBlankCol(y) + 1
		}
		for x := 0; x < rowWidth; x++ {
			c := b.Get(x, y)
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

// ToDebugString returns the buffer's characters only, row by row.
func (b *CellBuffer) ToDebugString() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.Get(x, y).Char)
		}
	}
	return sb.String()
}

// LogicalRow is a variable-length array of cells, used by LogicalBuffer.
type LogicalRow struct {
	Cells []Cell
}

// LogicalBuffer stores rendered content as logical rows of arbitrary
// length; terminal-width wrapping is deferred to ToVisualRows. This backs
// inline mode's scrollback/overflow handling where content can
// exceed the terminal's height.
type LogicalBuffer struct {
	rows   []LogicalRow
	height int
}

// NewLogicalBuffer creates a logical buffer with the given initial height.
func NewLogicalBuffer(height int) *LogicalBuffer {
	return &LogicalBuffer{rows: make([]LogicalRow, height), height: height}
}

// Height returns the number of logical rows.
func (b *LogicalBuffer) Height() int { return b.height }

// Get returns the cell at logical position (x, y), or EmptyCell out of
// bounds.
func (b *LogicalBuffer) Get(x, y int) Cell {
	if y < 0 || y >= b.height {
		return EmptyCell
	}
	row := b.rows[y]
	if x < 0 || x >= len(row.Cells) {
		return EmptyCell
	}
	return row.Cells[x]
}

// Set sets the cell at logical position (x, y), growing the row/buffer as
// needed, capped at MaxBufferHeight.
func (b *LogicalBuffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || y >= MaxBufferHeight {
		return
	}
	for y >= b.height {
		b.rows = append(b.rows, LogicalRow{})
		b.height++
	}
	row := &b.rows[y]
	for len(row.Cells) <= x {
		row.Cells = append(row.Cells, EmptyCell)
	}
	row.Cells[x] = c
}

// RowLength returns the length of a logical row.
func (b *LogicalBuffer) RowLength(y int) int {
	if y < 0 || y >= b.height {
		return 0
	}
	return len(b.rows[y].Cells)
}

// ClearRow clears a single logical row.
func (b *LogicalBuffer) ClearRow(y int) {
	if y < 0 || y >= b.height {
		return
	}
	b.rows[y] = LogicalRow{}
}

// Clear resets every logical row.
func (b *LogicalBuffer) Clear() {
	for y := range b.rows {
		b.rows[y] = LogicalRow{}
	}
}

// VisualRows holds the result of wrapping logical rows to terminal width.
type VisualRows struct {
	Rows            [][]Cell
	LogicalToVisual []int // first visual row index for each logical row
}

// ToVisualRows wraps each logical row into terminalWidth-wide chunks.
func (b *LogicalBuffer) ToVisualRows(terminalWidth int) VisualRows {
	if terminalWidth <= 0 {
		terminalWidth = 1
	}
	visual := make([][]Cell, 0, b.height)
	logicalToVisual := make([]int, b.height)

	for y := 0; y < b.height; y++ {
		logicalToVisual[y] = len(visual)
		row := b.rows[y]
		if len(row.Cells) == 0 {
			visual = append(visual, []Cell{})
			continue
		}
		for i := 0; i < len(row.Cells); i += terminalWidth {
			end := min(i+terminalWidth, len(row.Cells))
			chunk := make([]Cell, end-i)
			copy(chunk, row.Cells[i:end])
			visual = append(visual, chunk)
		}
	}
	return VisualRows{Rows: visual, LogicalToVisual: logicalToVisual}
}
