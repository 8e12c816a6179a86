package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	lru "github.com/hashicorp/golang-lru/v2"
)

const doubleClickWindow = 300 * time.Millisecond

// Game owns all viewer state and implements ebiten.Game. Per frame it
// drains worker results, runs input, steps animations, and keeps the
// neighbor preload pipeline warm.
type Game struct {
	cfg          Config
	configStatus ConfigLoadResult

	entries []ImagePath
	index   int

	loader   *ImageLoader
	textures *lru.Cache[string, *ebiten.Image]
	loading  map[string]bool

	strip *ThumbnailStrip

	view            *ViewState
	resetViewOnLoad bool

	errMsg string

	showHelp   bool
	showInfo   bool
	fullscreen bool
	savedWinW  int
	savedWinH  int

	overlayMessage     string
	overlayMessageTime time.Time

	keybindingManager *KeybindingManager
	inputHandler      *InputHandler
	renderer          *Renderer

	panDragging   bool
	lastMouseX    int
	lastMouseY    int
	lastClickTime time.Time

	spinnerPhase float64

	shouldExit bool
}

// NewGame wires up the viewer from a loaded config and an optional
// initial path. An empty path starts with the empty-state hint.
func NewGame(status ConfigLoadResult, initialPath string) (*Game, error) {
	cfg := status.Config

	textures, err := lru.NewWithEvict[string, *ebiten.Image](cfg.CacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating texture cache: %w", err)
	}

	g := &Game{
		cfg:             cfg,
		configStatus:    status,
		loader:          NewImageLoader(),
		textures:        textures,
		loading:         make(map[string]bool),
		strip:           NewThumbnailStrip(cfg),
		view:            NewViewState(cfg.AnimationSpeed),
		resetViewOnLoad: true,
		fullscreen:      cfg.Fullscreen,
	}
	g.keybindingManager = NewKeybindingManager(cfg.Keybindings)
	g.inputHandler = NewInputHandler(g, g.keybindingManager)
	g.renderer = NewRenderer(g)

	if initialPath != "" {
		if err := g.OpenPath(initialPath); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// OpenPath replaces the listing with the expansion of path and starts
// loading the selected image.
func (g *Game) OpenPath(path string) error {
	entries, index, err := expandPath(path, g.cfg.SortMethod)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no images found in %s", path)
	}

	logger.Info().Str("path", path).Int("images", len(entries)).Msg("opened")

	g.entries = entries
	g.strip.Reset()
	g.setIndex(index, true)
	return nil
}

// setIndex selects a listing entry, requests its load and neighbor
// preloads. resetView defers the view reset until the image arrives so a
// slow decode does not snap the previous image around.
func (g *Game) setIndex(index int, resetView bool) {
	if len(g.entries) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(g.entries) {
		index = len(g.entries) - 1
	}

	g.index = index
	g.errMsg = ""
	if resetView {
		g.resetViewOnLoad = true
	}

	g.requestLoad(g.entries[index])
	g.preloadNeighbors()
	g.strip.RequestNearest(g.entries, g.index)
}

// requestLoad submits a decode unless the texture is cached or already in
// flight. A full queue clears the in-flight mark so a later frame retries.
func (g *Game) requestLoad(p ImagePath) {
	if g.textures.Contains(p.Path) || g.loading[p.Path] {
		return
	}
	g.loading[p.Path] = true
	if !g.loader.Request(p) {
		delete(g.loading, p.Path)
	}
}

// preloadNeighbors requests the next and previous images, wrapping,
// up to the configured distance in each direction.
func (g *Game) preloadNeighbors() {
	n := len(g.entries)
	if n <= 1 {
		return
	}
	for d := 1; d <= g.cfg.PreloadCount; d++ {
		next := (g.index + d) % n
		prev := ((g.index-d)%n + n) % n
		g.requestLoad(g.entries[next])
		if prev != next {
			g.requestLoad(g.entries[prev])
		}
	}
}

func (g *Game) currentPath() (ImagePath, bool) {
	if len(g.entries) == 0 {
		return ImagePath{}, false
	}
	return g.entries[g.index], true
}

// pumpLoader turns completed decode results into textures on the UI thread.
func (g *Game) pumpLoader() {
	for {
		res, ok := g.loader.Poll()
		if !ok {
			return
		}
		delete(g.loading, res.Path.Path)

		cur, hasCur := g.currentPath()
		isCurrent := hasCur && cur.Path == res.Path.Path

		if res.Err != "" {
			// Cache an error placeholder so navigation back to the bad
			// file is instant, and surface the message if it is showing.
			g.textures.Add(res.Path.Path, CreateErrorImage(400, 300, res.Path.Path, res.Err))
			if isCurrent {
				g.errMsg = res.Err
			}
			continue
		}

		g.textures.Add(res.Path.Path, ebiten.NewImageFromImage(res.Image))

		if isCurrent && g.resetViewOnLoad {
			g.view.Reset()
			g.resetViewOnLoad = false
		}
	}
}

// handlePointer feeds wheel, drag, and double-click into the view state.
// Skipped when the thumbnail strip owns the pointer.
func (g *Game) handlePointer(screenW, screenH float64) {
	mx, my := ebiten.CursorPosition()

	// Wheel zoom centered on the cursor
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		g.view.ApplyZoomSteps(wheelY, float64(mx), float64(my), screenW, screenH)
	}

	// Double-click resets the view
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		now := time.Now()
		if now.Sub(g.lastClickTime) <= doubleClickWindow {
			g.view.ResetAnimated()
			g.lastClickTime = time.Time{}
		} else {
			g.lastClickTime = now
		}
	}

	// Drag pan: instant response, momentum handled by the view easing
	dragging := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if dragging {
		if g.panDragging {
			g.view.ApplyDrag(float64(mx-g.lastMouseX), float64(my-g.lastMouseY))
		}
		g.panDragging = true
		g.lastMouseX, g.lastMouseY = mx, my
	} else {
		g.panDragging = false
	}
}

// trackWindowGeometry mirrors the live window position and size into the
// config so exit can persist them.
func (g *Game) trackWindowGeometry() {
	if g.fullscreen {
		return
	}
	w, h := ebiten.WindowSize()
	x, y := ebiten.WindowPosition()
	if w > 0 && h > 0 {
		g.cfg.WindowWidth = w
		g.cfg.WindowHeight = h
	}
	g.cfg.WindowX = x
	g.cfg.WindowY = y
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	g.pumpLoader()
	g.strip.ProcessResults(g.entries, g.index)

	g.inputHandler.HandleInput()

	screenW := float64(g.renderer.lastWidth)
	screenH := float64(g.renderer.lastHeight)

	selected, stripHasPointer := g.strip.Update(dt, g.entries, g.index, screenW, screenH)
	if selected >= 0 {
		g.JumpToImage(selected)
	}

	if !stripHasPointer && len(g.entries) > 0 {
		g.handlePointer(screenW, screenH)
	}

	g.view.Step(dt)
	g.spinnerPhase += dt * 4

	g.trackWindowGeometry()

	if g.shouldExit {
		g.cfg.Fullscreen = g.fullscreen
		saveConfig(g.cfg)
		g.loader.Stop()
		g.strip.Stop()
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.spinnerPhase)
	g.strip.Draw(screen, g.entries, g.index)
	g.renderer.DrawOverlays(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.lastWidth = outsideWidth
	g.renderer.lastHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (g *Game) Exit() {
	g.shouldExit = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleThumbnails() {
	g.strip.Toggle()
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
}

func (g *Game) NavigateNext() {
	if len(g.entries) == 0 {
		return
	}
	g.setIndex((g.index+1)%len(g.entries), false)
}

func (g *Game) NavigatePrevious() {
	if len(g.entries) == 0 {
		return
	}
	g.setIndex((g.index-1+len(g.entries))%len(g.entries), false)
}

func (g *Game) JumpToImage(index int) {
	if len(g.entries) == 0 || index == g.index {
		return
	}
	g.setIndex(index, false)
}

func (g *Game) CycleSortMethod() {
	if len(g.entries) == 0 {
		return
	}
	cur := g.entries[g.index]

	g.cfg.SortMethod = (g.cfg.SortMethod + 1) % 3
	g.entries = sortImagePaths(g.entries, g.cfg.SortMethod)

	for i, p := range g.entries {
		if p.Path == cur.Path {
			g.index = i
			break
		}
	}

	g.ShowOverlayMessage(fmt.Sprintf("Sort: %s", getSortMethodName(g.cfg.SortMethod)))
}

func (g *Game) ZoomIn() {
	w, h := float64(g.renderer.lastWidth), float64(g.renderer.lastHeight)
	g.view.ApplyZoomSteps(1, w/2, h/2, w, h)
}

func (g *Game) ZoomOut() {
	w, h := float64(g.renderer.lastWidth), float64(g.renderer.lastHeight)
	g.view.ApplyZoomSteps(-1, w/2, h/2, w, h)
}

func (g *Game) ZoomReset() {
	g.view.ResetAnimated()
}

func (g *Game) PanBy(dx, dy float64) {
	g.view.TargetPanX += dx
	g.view.TargetPanY += dy
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

// RenderState implementation

func (g *Game) GetCurrentTexture() *ebiten.Image {
	cur, ok := g.currentPath()
	if !ok {
		return nil
	}
	if tex, ok := g.textures.Get(cur.Path); ok {
		return tex
	}
	return nil
}

func (g *Game) GetCurrentPath() (ImagePath, bool) {
	return g.currentPath()
}

func (g *Game) IsLoading() bool {
	cur, ok := g.currentPath()
	if !ok {
		return false
	}
	return g.loading[cur.Path] && !g.textures.Contains(cur.Path)
}

func (g *Game) GetErrorMessage() string {
	return g.errMsg
}

func (g *Game) GetViewZoom() float64 {
	return g.view.Zoom
}

func (g *Game) GetViewPan() (float64, float64) {
	return g.view.PanX, g.view.PanY
}

func (g *Game) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Game) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Game) GetOverlayMessageTime() time.Time {
	return g.overlayMessageTime
}

func (g *Game) GetCurrentIndex() int {
	return g.index
}

func (g *Game) GetTotalCount() int {
	return len(g.entries)
}

func (g *Game) GetFontSize() float64 {
	return g.cfg.HelpFontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Game) GetKeybindings() map[string][]string {
	return g.keybindingManager.GetKeybindings()
}
