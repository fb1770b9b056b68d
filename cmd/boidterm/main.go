// Command boidterm runs the flock in a terminal: one arrow per boid, pointing
// along its heading. Keys: q/esc quit, space pause, +/- speed, i index cells.
// A left click spawns a boid.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/snapshot"
)

type Game struct {
	screen        tcell.Screen
	sim           *simulation.Simulation
	width, height int
	paused        bool
	showCells     bool
	dt            float64
	frame         *snapshot.Frame
	status        string
}

func NewGame(sim *simulation.Simulation) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	cfg := sim.Config()
	g := &Game{
		screen:    screen,
		sim:       sim,
		dt:        1 / float64(cfg.TickRate),
		showCells: cfg.DisplayIndex,
	}
	g.width, g.height = screen.Size()
	return g, nil
}

// toCell maps world coordinates to a terminal cell; the last row holds the status line.
func (g *Game) toCell(x, y float64) (int, int) {
	b := g.sim.Bounds()
	rows := max(g.height-1, 1)
	cx := int((x - b.MinX) / b.Width() * float64(g.width))
	cy := int((b.MaxY - y) / b.Height() * float64(rows))
	return min(max(cx, 0), g.width-1), min(max(cy, 0), rows-1)
}

func (g *Game) toWorld(cx, cy int) (float64, float64) {
	b := g.sim.Bounds()
	rows := max(g.height-1, 1)
	return b.MinX + (float64(cx)+0.5)/float64(g.width)*b.Width(),
		b.MaxY - (float64(cy)+0.5)/float64(rows)*b.Height()
}

func (g *Game) draw() {
	g.screen.Clear()

	if g.showCells {
		for _, c := range g.frame.Cells {
			g.drawCell(c)
		}
	}

	for _, a := range g.frame.Agents {
		x, y := g.toCell(a.Position.X, a.Position.Y)
		style := tcell.StyleDefault.Foreground(sizeColor(a.Size))
		g.screen.SetContent(x, y, headingGlyph(a.Heading), nil, style)
	}

	st := g.sim.Stats()
	p := g.sim.Params()
	g.status = fmt.Sprintf(" tick %d | boids %d | speed %.1f | %v depth %d overflows %d | tick %v ",
		g.frame.Tick, len(g.frame.Agents), p.Speed, st.Step.Index.Strategy, st.Step.Index.Depth,
		st.Step.Index.Overflows, st.Duration.Round(time.Microsecond))
	if g.paused {
		g.status += "| PAUSED "
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for i, r := range []rune(g.status) {
		if i >= g.width {
			break
		}
		g.screen.SetContent(i, g.height-1, r, nil, statusStyle)
	}

	g.screen.Show()
}

// drawCell tints the background of the terminal cells covered by an index cell.
func (g *Game) drawCell(c snapshot.Cell) {
	x0, y0 := g.toCell(c.MinX, c.MaxY)
	x1, y1 := g.toCell(c.MaxX, c.MinY)
	shade := int32(min(20+8*c.Items, 90))
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(0, shade, shade/2))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			g.paused = !g.paused
		case 'i':
			g.showCells = !g.showCells
		case '+', '=':
			g.changeSpeed(1.25)
		case '-':
			g.changeSpeed(0.8)
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			cx, cy := ev.Position()
			if cy < g.height-1 {
				x, y := g.toWorld(cx, cy)
				g.spawn(x, y)
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) changeSpeed(factor float64) {
	p := g.sim.Params()
	p.Speed *= factor
	if err := g.sim.SetConfig(p); err != nil {
		g.status = err.Error()
	}
}

func (g *Game) spawn(x, y float64) {
	g.sim.Spawn(geometry.Vector2D{X: x, Y: y}, math.NaN())
}

func (g *Game) run() {
	ticker := time.NewTicker(time.Duration(g.dt * float64(time.Second)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.frame = g.sim.Frame(g.showCells)
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !g.paused {
				g.sim.Tick(g.dt)
			}
			g.frame = g.sim.Frame(g.showCells)
			g.draw()
		}
	}
}

func main() {
	configFile := flag.String("config", "", "JSON or TOML config file, defaults are used when empty")
	strategy := flag.String("index", "", "override indexStrategy: quadtree, grid or linear")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, ""); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *strategy != "" {
		cfg.IndexStrategy = *strategy
	}

	// the terminal is the display, keep the log quiet
	sim, err := simulation.New(cfg, log.DiscardLogger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g, err := NewGame(sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open the terminal: %v\n", err)
		os.Exit(1)
	}
	g.run()
	g.screen.Fini()
}
