package tuicore

import "testing"

func TestCellBufferClipBalance(t *testing.T) {
	buf := NewCellBuffer(10, 10)
	if buf.ClipDepth() != 0 {
		t.Fatalf("fresh buffer ClipDepth = %d, want 0", buf.ClipDepth())
	}
	buf.Clip(ClipRegion{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5})
	buf.Clip(ClipRegion{MinX: 1, MinY: 1, MaxX: 4, MaxY: 4})
	if buf.ClipDepth() != 2 {
		t.Fatalf("ClipDepth after two pushes = %d, want 2", buf.ClipDepth())
	}
	buf.Unclip()
	buf.Unclip()
	if buf.ClipDepth() != 0 {
		t.Fatalf("ClipDepth after matching unclips = %d, want 0", buf.ClipDepth())
	}
}

func TestCellBufferClipDropsOutsideWrites(t *testing.T) {
	buf := NewCellBuffer(10, 10)
	buf.Clip(ClipRegion{MinX: 2, MinY: 2, MaxX: 5, MaxY: 5})
	buf.WriteChar(0, 0, 'x', EmptyStyle)
	if got := buf.Get(0, 0).Char; got != ' ' {
		t.Fatalf("write outside active clip landed: got %q", got)
	}
	buf.WriteChar(3, 3, 'y', EmptyStyle)
	if got := buf.Get(3, 3).Char; got != 'y' {
		t.Fatalf("write inside active clip was dropped: got %q", got)
	}
}

// TestWriteCharWideGlyphOccupiesTwoCells: a CJK double-width glyph must
// write a continuation cell, and overwriting either half must clear both.
func TestWriteCharWideGlyphOccupiesTwoCells(t *testing.T) {
	buf := NewCellBuffer(5, 1)
	buf.WriteChar(0, 0, '中', EmptyStyle) // 中, width 2

	head := buf.Get(0, 0)
	cont := buf.Get(1, 0)
	if head.Char != '中' {
		t.Fatalf("head cell char = %q, want 中", head.Char)
	}
	if !cont.Continuation {
		t.Fatal("continuation cell not marked Continuation")
	}
}

func TestWriteCharOverwritingWideGlyphClearsBothCells(t *testing.T) {
	buf := NewCellBuffer(5, 1)
	buf.WriteChar(0, 0, '中', EmptyStyle)
	buf.WriteChar(0, 0, 'x', EmptyStyle)

	if got := buf.Get(0, 0).Char; got != 'x' {
		t.Fatalf("overwritten head = %q, want x", got)
	}
	if got := buf.Get(1, 0).Char; got != ' ' {
		t.Fatalf("stale continuation cell = %q, want space", got)
	}
	if buf.Get(1, 0).Continuation {
		t.Fatal("continuation flag should be cleared once the wide glyph is gone")
	}
}

func TestWriteCharOverwritingContinuationClearsHead(t *testing.T) {
	buf := NewCellBuffer(5, 1)
	buf.WriteChar(0, 0, '中', EmptyStyle)
	buf.WriteChar(1, 0, 'y', EmptyStyle)

	if got := buf.Get(0, 0).Char; got != ' ' {
		t.Fatalf("stale head after overwriting continuation = %q, want space", got)
	}
	if got := buf.Get(1, 0).Char; got != 'y' {
		t.Fatalf("overwritten continuation cell = %q, want y", got)
	}
}

func TestWriteCharWideGlyphAtRightEdgeBecomesSpace(t *testing.T) {
	buf := NewCellBuffer(3, 1)
	buf.WriteChar(2, 0, '中', EmptyStyle)
	if got := buf.Get(2, 0).Char; got != ' ' {
		t.Fatalf("wide glyph straddling the buffer edge = %q, want space", got)
	}
}

// TestWriteAdvancesByGraphemeWidth exercises Write (the string-oriented
// entry point): total advance across mixed narrow/wide glyphs must equal
// their summed display widths, never raw rune count.
func TestWriteAdvancesByGraphemeWidth(t *testing.T) {
	buf := NewCellBuffer(10, 1)
	buf.Write(0, 0, "a中b", EmptyStyle)

	if got := buf.Get(0, 0).Char; got != 'a' {
		t.Fatalf("cell 0 = %q, want a", got)
	}
	if got := buf.Get(1, 0).Char; got != '中' {
		t.Fatalf("cell 1 = %q, want 中", got)
	}
	if !buf.Get(2, 0).Continuation {
		t.Fatal("cell 2 should be the wide glyph's continuation")
	}
	if got := buf.Get(3, 0).Char; got != 'b' {
		t.Fatalf("cell 3 = %q, want b (advance must count 中 as width 2)", got)
	}
}

func TestCellBufferRenderResetsAtEnd(t *testing.T) {
	buf := NewCellBuffer(3, 1)
	buf.WriteChar(0, 0, 'x', Style{Bold: true})
	out := buf.Render()
	if len(out) == 0 {
		t.Fatal("Render produced empty output")
	}
	if out[len(out)-len(resetStr):] != resetStr {
		t.Fatalf("Render output does not end with a reset sequence: %q", out)
	}
}
