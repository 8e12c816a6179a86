package main

import (
	"path/filepath"
	"testing"
)

// newTestGame builds a game over a folder of three generated images.
func newTestGame(t *testing.T) *Game {
	t.Helper()

	dir := t.TempDir()
	// Names where natural and lexicographic order differ
	writeTestPNG(t, filepath.Join(dir, "1.png"), 2, 2)
	writeTestPNG(t, filepath.Join(dir, "2.png"), 2, 2)
	writeTestPNG(t, filepath.Join(dir, "10.png"), 2, 2)

	status := ConfigLoadResult{Config: defaultConfig(), Status: "Default"}
	g, err := NewGame(status, dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		g.loader.Stop()
		g.strip.Stop()
	})
	return g
}

func TestNewGameOpensPath(t *testing.T) {
	g := newTestGame(t)

	if g.GetTotalCount() != 3 {
		t.Fatalf("expected 3 entries, got %d", g.GetTotalCount())
	}
	if g.GetCurrentIndex() != 0 {
		t.Errorf("expected start at index 0, got %d", g.GetCurrentIndex())
	}
	if !g.IsLoading() {
		t.Error("the current image should be loading after open")
	}
}

func TestNewGameBadPath(t *testing.T) {
	status := ConfigLoadResult{Config: defaultConfig(), Status: "Default"}
	if _, err := NewGame(status, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestOpenPathEmptyFolder(t *testing.T) {
	g := newTestGame(t)

	if err := g.OpenPath(t.TempDir()); err == nil {
		t.Error("expected error for a folder with no images")
	}
	if g.GetTotalCount() != 3 {
		t.Error("a failed open must not clobber the current listing")
	}
}

func TestNavigationWrapsAround(t *testing.T) {
	g := newTestGame(t)

	g.NavigateNext()
	g.NavigateNext()
	if g.GetCurrentIndex() != 2 {
		t.Fatalf("expected index 2, got %d", g.GetCurrentIndex())
	}

	g.NavigateNext()
	if g.GetCurrentIndex() != 0 {
		t.Errorf("next past the end should wrap to 0, got %d", g.GetCurrentIndex())
	}

	g.NavigatePrevious()
	if g.GetCurrentIndex() != 2 {
		t.Errorf("previous before the start should wrap to the end, got %d", g.GetCurrentIndex())
	}
}

func TestNavigationPreservesView(t *testing.T) {
	g := newTestGame(t)

	g.resetViewOnLoad = false
	g.view.Zoom = 3.0
	g.view.TargetZoom = 3.0
	g.view.PanX, g.view.TargetPanX = 50, 50

	g.NavigateNext()

	if g.view.Zoom != 3.0 || g.view.PanX != 50 {
		t.Error("navigating must keep the current zoom and pan")
	}
	if g.resetViewOnLoad {
		t.Error("navigating must not schedule a view reset")
	}
}

func TestOpenPathSchedulesViewReset(t *testing.T) {
	g := newTestGame(t)
	g.resetViewOnLoad = false

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "other.png"), 2, 2)
	if err := g.OpenPath(dir); err != nil {
		t.Fatal(err)
	}

	if !g.resetViewOnLoad {
		t.Error("opening a new path should reset the view when the image arrives")
	}
}

func TestJumpToImage(t *testing.T) {
	g := newTestGame(t)

	g.JumpToImage(2)
	if g.GetCurrentIndex() != 2 {
		t.Errorf("expected index 2, got %d", g.GetCurrentIndex())
	}

	// Out-of-range jumps clamp
	g.JumpToImage(99)
	if g.GetCurrentIndex() != 2 {
		t.Errorf("expected clamp to last index, got %d", g.GetCurrentIndex())
	}
	g.JumpToImage(-5)
	if g.GetCurrentIndex() != 0 {
		t.Errorf("expected clamp to 0, got %d", g.GetCurrentIndex())
	}
}

func TestCycleSortMethodKeepsSelection(t *testing.T) {
	g := newTestGame(t)

	g.JumpToImage(1)
	selected, _ := g.GetCurrentPath()

	g.CycleSortMethod()

	if g.cfg.SortMethod != SortSimple {
		t.Errorf("expected SortSimple after one cycle, got %d", g.cfg.SortMethod)
	}
	after, _ := g.GetCurrentPath()
	if after.Path != selected.Path {
		t.Errorf("selection changed across re-sort: %s -> %s", selected.Path, after.Path)
	}
	if g.GetOverlayMessage() == "" {
		t.Error("expected a sort overlay message")
	}

	// Full cycle returns to natural
	g.CycleSortMethod()
	g.CycleSortMethod()
	if g.cfg.SortMethod != SortNatural {
		t.Errorf("three cycles should return to SortNatural, got %d", g.cfg.SortMethod)
	}
}

func TestPanByMovesTargets(t *testing.T) {
	g := newTestGame(t)

	g.PanBy(keyPanStep, 0)
	g.PanBy(0, -keyPanStep)

	if g.view.TargetPanX != keyPanStep || g.view.TargetPanY != -keyPanStep {
		t.Errorf("unexpected pan targets: (%v,%v)", g.view.TargetPanX, g.view.TargetPanY)
	}
	if g.view.PanX != 0 || g.view.PanY != 0 {
		t.Error("key panning should ease, not snap")
	}
}

func TestZoomResetRetargets(t *testing.T) {
	g := newTestGame(t)

	g.view.Zoom = 4.0
	g.view.TargetZoom = 4.0
	g.ZoomReset()

	if g.view.TargetZoom != 1.0 {
		t.Errorf("expected target zoom 1.0, got %v", g.view.TargetZoom)
	}
	if g.view.Zoom != 4.0 {
		t.Error("reset should animate, not snap")
	}
}

func TestToggleStateFlags(t *testing.T) {
	g := newTestGame(t)

	g.ToggleHelp()
	if !g.IsShowingHelp() {
		t.Error("help should be visible after toggle")
	}
	g.ToggleHelp()
	if g.IsShowingHelp() {
		t.Error("help should hide after second toggle")
	}

	g.ToggleInfo()
	if !g.IsShowingInfo() {
		t.Error("info should be visible after toggle")
	}
}

func TestExitFlag(t *testing.T) {
	g := newTestGame(t)

	g.Exit()
	if !g.shouldExit {
		t.Error("Exit should mark the game for shutdown")
	}
}

func TestRequestLoadDeduplicates(t *testing.T) {
	g := newTestGame(t)

	p := g.entries[0]
	g.loading[p.Path] = true
	before := len(g.loader.requests)

	g.requestLoad(p)

	if len(g.loader.requests) != before {
		t.Error("an in-flight path must not be requested again")
	}
}
