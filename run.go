package cubetower

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// ShowFPS prints FPS and TPS plus the tower size in the top-left corner.
	ShowFPS bool
	// Script, if set, drives the board instead of the real pointer.
	Script *TestRunner
	// ExitWhenScriptDone closes the window once Script has finished, every
	// animation has settled and queued screenshots are written. Run then
	// returns the script's failed expectations, if any.
	ExitWhenScriptDone bool
}

// errScriptDone ends the game loop without reporting a failure.
var errScriptDone = errors.New("cubetower: script done")

// game adapts a Board to ebiten.Game.
type game struct {
	board *Board
	cfg   RunConfig
}

func (g *game) Update() error {
	g.board.Update(float32(1 / float64(ebiten.TPS())))
	if r := g.cfg.Script; r != nil && g.cfg.ExitWhenScriptDone && r.Done() &&
		g.board.Tweener().Running() == 0 && g.board.Scene().PendingInjections() == 0 &&
		g.board.Scene().PendingScreenshots() == 0 {
		return errScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTower: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.board.Tower().Count()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	c := g.board.Config()
	return c.Screen.Width, c.Screen.Height
}

// Run opens a window and plays the board until it is closed.
func Run(b *Board, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Cube Tower"
	}
	c := b.Config()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(c.Screen.Width, c.Screen.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.Script != nil {
		b.SetScript(cfg.Script)
	} else {
		b.Scene().SetLiveInput(true)
	}
	err := ebiten.RunGame(&game{board: b, cfg: cfg})
	if errors.Is(err, errScriptDone) {
		return cfg.Script.Err()
	}
	return err
}
