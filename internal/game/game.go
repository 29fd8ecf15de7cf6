package game

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
)

const (
	borderWidth = 12
	hudScale    = 2
	reportEvery = 60 // ticks between reporter samples
)

// simSpeeds are the selectable tick multipliers; 0 is paused.
var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// Game drives a board from ebiten's update loop and renders it.
type Game struct {
	cfg   *config.Config
	board *board.Board
	log   *slog.Logger

	width  int // window width in logical pixels
	height int
	boardW int // board area on screen, after scaling
	boardH int
	offX   int
	offY   int
	scale  float64

	// boardBuf holds the board at native block pixels; blitting it at the
	// board offset also clips blocks still above the top edge.
	boardBuf *ebiten.Image
	hudBuf   *ebiten.Image
	inspBuf  *ebiten.Image

	feed     *EventFeed
	reporter *board.Reporter

	showHUD  bool
	prevKeys map[ebiten.Key]bool
	status   string

	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	dragging      bool
	touching      bool
	touchID       ebiten.TouchID
	touchIDs      []ebiten.TouchID
	lastInspected int
}

// New builds the board described by cfg and wraps it for display.
func New(cfg *config.Config, log *slog.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	b, err := board.New(cfg, board.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return newGame(cfg, b, log), nil
}

func newGame(cfg *config.Config, b *board.Board, log *slog.Logger) *Game {
	scale := cfg.Display.Scale
	bw := int(float64(b.Width()) * b.BlockSize() * scale)
	bh := int(float64(b.Height()) * b.BlockSize() * scale)
	g := &Game{
		cfg:      cfg,
		board:    b,
		log:      log,
		width:    borderWidth + bw + borderWidth + feedPanelWidth,
		height:   borderWidth + bh + borderWidth,
		boardW:   bw,
		boardH:   bh,
		offX:     borderWidth,
		offY:     borderWidth,
		scale:    scale,
		feed:     NewEventFeed(cfg.Display.FeedLines),
		reporter: board.NewReporter(0, false),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: cfg.Display.SimSpeed,
	}
	g.feed.Pull(b.Events())
	log.Info("board ready",
		"width", b.Width(), "height", b.Height(), "types", b.Types(),
		"seed", cfg.Seed, "spawner", b.Spawner() != nil)
	return g
}

// Board exposes the simulated board.
func (g *Game) Board() *board.Board { return g.board }

// WindowSize is the outer window size matching Layout.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick advances the board one tick and drains its new events.
func (g *Game) simTick() {
	g.board.AdvanceTick()
	g.feed.Pull(g.board.Events())
	if g.board.CurrentTick()%reportEvery == 0 {
		g.reporter.Collect(g.board)
	}
}

// slowerSpeed returns the next lower entry in simSpeeds.
func slowerSpeed(cur float64) float64 {
	for i, s := range simSpeeds {
		if s >= cur && i > 0 {
			return simSpeeds[i-1]
		}
	}
	if cur > simSpeeds[len(simSpeeds)-1] {
		return simSpeeds[len(simSpeeds)-1]
	}
	return cur
}

// fasterSpeed returns the next higher entry in simSpeeds.
func fasterSpeed(cur float64) float64 {
	for _, s := range simSpeeds {
		if s > cur {
			return s
		}
	}
	return cur
}

func speedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 1, 2, 4:
		return fmt.Sprintf("%.0fx", s)
	}
	return fmt.Sprintf("%.1fx", s)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 16, A: 255})

	if g.boardBuf == nil {
		px := int(float64(g.board.Width()) * g.board.BlockSize())
		py := int(float64(g.board.Height()) * g.board.BlockSize())
		g.boardBuf = ebiten.NewImage(px, py)
	}
	g.boardBuf.Fill(color.RGBA{R: 22, G: 22, B: 30, A: 255})
	g.drawBlocks(g.boardBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Scale(g.scale, g.scale)
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.boardBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.boardW)+2, float32(g.boardH)+2, 2.0, color.RGBA{R: 70, G: 70, B: 100, A: 255}, false)

	g.feed.Draw(screen, g.offX+g.boardW+borderWidth, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawBlocks paints every block at board-pixel coordinates.
func (g *Game) drawBlocks(dst *ebiten.Image) {
	size := float32(g.board.BlockSize())
	for _, v := range g.board.Projection() {
		x, y := float32(v.X), float32(v.Y)
		if y+size <= 0 {
			continue
		}
		vector.FillRect(dst, x+1, y+1, size-2, size-2, blockColor(v), false)
		if v.State == board.StateLaunching {
			vector.StrokeLine(dst, x+2, y+2, x+size-2, y+2, 1.0, color.RGBA{R: 255, G: 255, B: 255, A: 90}, false)
		}
		if v.Selected {
			vector.StrokeRect(dst, x+1, y+1, size-2, size-2, 2.0, color.White, false)
		}
	}
}

// hudLines is the text shown in the bottom-left HUD box.
func (g *Game) hudLines() []string {
	c := g.board.Count()
	lines := []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedLabel(g.simSpeed)),
		fmt.Sprintf("T=%d launched=%d groups=%d", g.board.CurrentTick(), g.board.TotalLaunched(), len(g.board.Groups())),
		fmt.Sprintf("fall=%d launch=%d rest=%d dead=%d", c.Falling, c.Launching, c.Resting, c.Dead),
		"drag=swap  C=copy report  H=HUD",
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

// drawHUD renders into hudBuf at 1x and blits it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	}
	lines := g.hudLines()

	face := basicfont.Face7x13
	const lineH = 13
	const charW = 7
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.offX/hudScale + 2)
	by := float32(g.height/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 6, B: 12, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 70, G: 70, B: 110, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 100, G: 100, B: 160, A: 80}, false)

	for i, line := range lines {
		tx := int(bx) + padX
		ty := int(by) + padY + i*lineH + face.Ascent
		text.Draw(g.hudBuf, line, face, tx, ty, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
