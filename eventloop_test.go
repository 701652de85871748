package tuicore

import (
	"testing"
	"time"
)

// TestFilterChainOrdersByDescendingPriority: filters run in descending
// priority order, ties broken by registration order.
func TestFilterChainOrdersByDescendingPriority(t *testing.T) {
	var order []string
	var chain filterChain

	record := func(name string) func(KeyEvent) FilterResult {
		return func(ev KeyEvent) FilterResult {
			order = append(order, name)
			return FilterResult{Action: FilterPass}
		}
	}

	chain.add(KeyFilter{Name: "low", Priority: 1, Fn: record("low")})
	chain.add(KeyFilter{Name: "high", Priority: 10, Fn: record("high")})
	chain.add(KeyFilter{Name: "mid-a", Priority: 5, Fn: record("mid-a")})
	chain.add(KeyFilter{Name: "mid-b", Priority: 5, Fn: record("mid-b")})

	chain.apply(KeyEvent{Rune: 'x'})

	want := []string{"high", "mid-a", "mid-b", "low"}
	if !equalStrSlices(order, want) {
		t.Fatalf("filter invocation order = %v, want %v", order, want)
	}
}

func TestFilterChainBlockStopsDispatch(t *testing.T) {
	var chain filterChain
	calledAfterBlock := false

	chain.add(KeyFilter{Name: "blocker", Priority: 10, Fn: func(KeyEvent) FilterResult {
		return FilterResult{Action: FilterBlock}
	}})
	chain.add(KeyFilter{Name: "never", Priority: 0, Fn: func(KeyEvent) FilterResult {
		calledAfterBlock = true
		return FilterResult{Action: FilterPass}
	}})

	_, dispatch := chain.apply(KeyEvent{Rune: 'x'})
	if dispatch {
		t.Fatal("blocked event should not be dispatched")
	}
	if calledAfterBlock {
		t.Fatal("filters after a block should not run")
	}
}

func TestFilterChainReplaceRewritesEvent(t *testing.T) {
	var chain filterChain
	chain.add(KeyFilter{Name: "remap", Priority: 0, Fn: func(ev KeyEvent) FilterResult {
		return FilterResult{Action: FilterReplace, Replace: KeyEvent{Rune: 'z'}}
	}})

	out, dispatch := chain.apply(KeyEvent{Rune: 'a'})
	if !dispatch {
		t.Fatal("replaced event should still dispatch")
	}
	if out.Rune != 'z' {
		t.Fatalf("replaced event rune = %q, want 'z'", out.Rune)
	}
}

// TestFramePacerSlowsDownUnderLoad: once a full window of renders exceeds
// 80% of the current budget, currentFPS drops.
func TestFramePacerSlowsDownUnderLoad(t *testing.T) {
	p := newFramePacer(60)
	budget := time.Duration(float64(time.Second) / p.currentFPS)

	for i := 0; i < 60; i++ {
		p.recordRender(2 * budget)
	}

	if p.currentFPS >= 60 {
		t.Fatalf("currentFPS = %v after a sustained overrun, want it reduced below targetFPS", p.currentFPS)
	}
}

// TestFramePacerSpeedsUpUnderLightLoad covers the recovery half of
// adaptive pacing, and that it never exceeds the configured ceiling.
func TestFramePacerSpeedsUpUnderLightLoad(t *testing.T) {
	p := newFramePacer(60)
	budget := time.Duration(float64(time.Second) / p.currentFPS)

	for i := 0; i < 60; i++ {
		p.recordRender(2 * budget)
	}
	slowed := p.currentFPS
	if slowed >= 60 {
		t.Fatalf("setup failed to slow the pacer down: currentFPS = %v", slowed)
	}

	for i := 0; i < 600; i++ {
		budget = time.Duration(float64(time.Second) / p.currentFPS)
		p.recordRender(budget / 10)
	}

	if p.currentFPS <= slowed {
		t.Fatalf("currentFPS = %v after sustained light load, want it to recover above %v", p.currentFPS, slowed)
	}
	if p.currentFPS > 60 {
		t.Fatalf("currentFPS = %v, must never exceed targetFPS (60)", p.currentFPS)
	}
}

func TestFramePacerCountsDroppedFrames(t *testing.T) {
	p := newFramePacer(60)
	budget := time.Duration(float64(time.Second) / p.currentFPS)

	p.recordRender(budget / 2)
	p.recordRender(2 * budget)

	stats := p.Stats()
	if stats.TotalFrames != 2 {
		t.Fatalf("TotalFrames = %d, want 2", stats.TotalFrames)
	}
	if stats.Dropped != 1 {
		t.Fatalf("Dropped = %d, want 1 (only the render exceeding 1.5x budget)", stats.Dropped)
	}
}

func TestNewFramePacerClampsTargetFPS(t *testing.T) {
	if p := newFramePacer(0); p.targetFPS != 1 {
		t.Fatalf("targetFPS = %d, want clamped to 1", p.targetFPS)
	}
	if p := newFramePacer(500); p.targetFPS != 120 {
		t.Fatalf("targetFPS = %d, want clamped to 120", p.targetFPS)
	}
}

func TestParseMouseEventDecodesSGRSequence(t *testing.T) {
	ev, ok := parseMouseEvent("\x1b[<0;10;5M")
	if !ok {
		t.Fatal("expected a recognised SGR mouse sequence")
	}
	if ev.X != 9 || ev.Y != 4 {
		t.Fatalf("position = (%d,%d), want (9,4) (1-indexed input converted to 0-indexed)", ev.X, ev.Y)
	}
	if !ev.Pressed {
		t.Fatal("'M' suffix should mean pressed")
	}

	release, ok := parseMouseEvent("\x1b[<0;10;5m")
	if !ok {
		t.Fatal("expected a recognised SGR release sequence")
	}
	if release.Pressed {
		t.Fatal("'m' suffix should mean released")
	}
}

func TestParseMouseEventRejectsNonMouseInput(t *testing.T) {
	if _, ok := parseMouseEvent("\x1b[A"); ok {
		t.Fatal("a plain arrow-key sequence should not parse as a mouse event")
	}
}

func TestSplitOnceDividesAtFirstOccurrence(t *testing.T) {
	before, after := splitOnce("abcXdefXghi", "X")
	if before != "abc" || after != "defXghi" {
		t.Fatalf("splitOnce = (%q, %q), want (\"abc\", \"defXghi\")", before, after)
	}

	before, after = splitOnce("no-sep-here", "X")
	if before != "no-sep-here" || after != "" {
		t.Fatalf("splitOnce without separator = (%q, %q), want (\"no-sep-here\", \"\")", before, after)
	}
}
