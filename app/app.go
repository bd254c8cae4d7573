package app

import (
	"image/color"
	"time"

	"iconstudio/iconpack"

	"github.com/hajimehoshi/ebiten/v2"
)

// State holds everything the update and draw loops touch.
type State struct {
	panel        *PackSettingsPanel
	screenWidth  int
	screenHeight int
	lastUpdate   time.Time
}

// Game implements ebiten.Game around a State.
type Game struct {
	state *State
}

// New creates a new Game instance over the given pack registry.
func New(manager *iconpack.Manager) *Game {
	game := &Game{
		state: &State{
			panel:        NewPackSettingsPanel(manager),
			screenWidth:  1280,
			screenHeight: 800,
			lastUpdate:   time.Now(),
		},
	}
	game.state.panel.Show()
	return game
}

// Panel exposes the settings panel, mainly for startup wiring.
func (g *Game) Panel() *PackSettingsPanel {
	return g.state.panel
}

// Update updates the game state
func (g *Game) Update() error {
	return g.state.Update()
}

// Draw draws the game state to the screen
func (g *Game) Draw(screen *ebiten.Image) {
	g.state.Draw(screen)
}

// Layout returns the layout of the game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 800 {
		outsideWidth = 800
	}
	if outsideHeight < 600 {
		outsideHeight = 600
	}
	g.state.screenWidth = outsideWidth
	g.state.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

func (s *State) Update() error {
	defer HandlePanic()

	now := time.Now()
	deltaTime := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now
	if deltaTime > 0.25 {
		deltaTime = 0.25
	}

	// The panic dialog consumes all input while visible
	panicNotifier := GetPanicNotifier()
	if panicNotifier.IsVisible() {
		if panicNotifier.Update() {
			return nil
		}
	}

	GetToastManager().Update()

	s.panel.Update(s.screenWidth, s.screenHeight, deltaTime)

	return nil
}

func (s *State) Draw(screen *ebiten.Image) {
	defer HandlePanic()

	screen.Fill(color.RGBA{18, 18, 26, 255})

	s.panel.Draw(screen)
	GetToastManager().Draw(screen)

	panicNotifier := GetPanicNotifier()
	if panicNotifier.IsVisible() {
		panicNotifier.Draw(screen)
	}
}
