// Package tuicore: diff_paint.go compares two CellBuffers and produces the
// minimal set of CellRuns needed to repaint the terminal from prev to curr —
// only the cells that actually changed, grouped into contiguous per-row runs
// so the ANSI writer can move the cursor once per run instead of once per
// cell.
package tuicore

// DiffBuffers returns the changed-cell runs needed to repaint prev into
// curr. If the buffers differ in size it returns FullBufferRuns(curr), a
// repaint of every cell.
func DiffBuffers(prev, curr *CellBuffer) []CellRun {
	if prev.Width() != curr.Width() || prev.Height() != curr.Height() {
		return FullBufferRuns(curr)
	}

	var runs []CellRun
	for y := 0; y < curr.Height(); y++ {
		var run []Cell
		runStartX := -1
		for x := 0; x < curr.Width(); x++ {
			a, b := prev.Get(x, y), curr.Get(x, y)
			if a.Equal(b) {
				if len(run) > 0 {
					runs = append(runs, CellRun{X: runStartX, Y: y, Cells: run})
					run = nil
				}
				continue
			}
			if len(run) == 0 {
				runStartX = x
			}
			run = append(run, b)
		}
		if len(run) > 0 {
			runs = append(runs, CellRun{X: runStartX, Y: y, Cells: run})
		}
	}
	return runs
}

// FullBufferRuns returns one run per row covering the entire buffer, used
// for a forced full repaint (resize, Exec suspend/resume, first frame).
func FullBufferRuns(buf *CellBuffer) []CellRun {
	runs := make([]CellRun, 0, buf.Height())
	for y := 0; y < buf.Height(); y++ {
		cells := make([]Cell, buf.Width())
		for x := 0; x < buf.Width(); x++ {
			cells[x] = buf.Get(x, y)
		}
		runs = append(runs, CellRun{X: 0, Y: y, Cells: cells})
	}
	return runs
}
