// Command sandterm runs the sand simulation in a terminal. Each character
// cell shows two grid cells stacked with a half-block glyph, and the mouse
// pours sand.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/sandfall/config"
	"github.com/pthm-cable/sandfall/palette"
	"github.com/pthm-cable/sandfall/systems"
)

// termResolution is large enough that Configure always falls back to
// one-pixel cells, so every half-block maps to exactly one grid cell.
const termResolution = 1 << 16

// statusRows is reserved at the bottom of the screen for the status line.
const statusRows = 1

// maxRadius caps the brush radius keys.
const maxRadius = 30

type app struct {
	screen  tcell.Screen
	sim     *systems.Simulation
	palette *palette.Palette
	sound   *clicker

	cols, rows int
	tick       int
	paused     bool

	pointer systems.Pointer
}

func newApp(cfg *config.Config, seed int64, sound bool) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	params := cfg.SimParams()
	params.Resolution = termResolution

	a := &app{
		screen:  screen,
		palette: palette.NewPalette(cfg.Derived.Background),
	}
	a.cols, a.rows = screen.Size()
	vw, vh := a.viewport()
	a.sim = systems.NewSimulation(vw, vh, params, rand.New(rand.NewSource(seed)))

	if sound {
		c, err := newClicker()
		if err != nil {
			// Non-fatal, the simulation runs without sound
			slog.Warn("audio initialization failed", "error", err)
		} else {
			a.sound = c
		}
	}

	return a, nil
}

// viewport returns the simulation viewport in grid cells: one column per
// terminal column and two rows per terminal row.
func (a *app) viewport() (int, int) {
	rows := a.rows - statusRows
	if rows < 1 {
		rows = 1
	}
	return a.cols, rows * 2
}

func (a *app) handleResize() {
	cols, rows := a.screen.Size()
	if cols == a.cols && rows == a.rows {
		return
	}
	a.cols, a.rows = cols, rows
	vw, vh := a.viewport()
	a.sim.Resize(vw, vh)
	a.screen.Sync()
	slog.Info("layout reconfigured", "grid_w", a.sim.Layout().W, "grid_h", a.sim.Layout().H)
}

// handleEvent applies one terminal event. Returns false to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0 && y < a.rows-statusRows
		// Aim at the lower half of the character cell under the pointer
		px, py := float64(x)+0.5, float64(y*2)+1.5
		if a.pointer.Update(down, px, py) {
			a.pour(px, py)
		}

	case *tcell.EventResize:
		a.handleResize()
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	params := a.sim.SpawnParams()
	switch r {
	case 'q':
		return false
	case ' ':
		a.paused = !a.paused
	case 'n':
		if a.paused {
			a.step()
		}
	case 'c':
		a.sim.Clear()
	case 'p':
		params.Policy = params.Policy.Next()
		a.sim.SetSpawnParams(params)
	case '[':
		if params.Radius > 0 {
			params.Radius--
			a.sim.SetSpawnParams(params)
		}
	case ']':
		if params.Radius < maxRadius {
			params.Radius++
			a.sim.SetSpawnParams(params)
		}
	}
	return true
}

// pour spawns at viewport position (px, py), one press or drag event.
func (a *app) pour(px, py float64) {
	filled := a.sim.SpawnAt(px, py)
	if filled > 0 && a.sound != nil {
		a.sound.Click(a.sim.Hue())
	}
}

// update advances one tick unless paused.
func (a *app) update() {
	if !a.paused {
		a.step()
	}
}

func (a *app) step() {
	a.sim.Step()
	a.tick++
}

func (a *app) draw() {
	g := a.sim.Grid()
	bg := toTcell(a.palette.Background)

	for ty := 0; ty < a.rows-statusRows; ty++ {
		for x := 0; x < a.cols; x++ {
			top, bottom := bg, bg
			if g.Exists(x, ty*2) {
				top = toTcell(a.palette.Cell(g.At(x, ty*2)))
			}
			if g.Exists(x, ty*2+1) {
				bottom = toTcell(a.palette.Cell(g.At(x, ty*2+1)))
			}
			a.screen.SetContent(x, ty, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}

	params := a.sim.SpawnParams()
	state := "running"
	if a.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s | tick %d | grains %d | %s r=%d | hue %.1f | q quit, space pause, c clear, p shape, [ ] radius",
		state, a.tick, g.Occupied(), params.Policy, params.Radius, a.sim.Hue())
	style := tcell.StyleDefault.Foreground(tcell.ColorLightGray).Background(tcell.ColorBlack)
	for x := 0; x < a.cols; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		a.screen.SetContent(x, a.rows-1, ch, nil, style)
	}

	a.screen.Show()
}

func (a *app) run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !a.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			a.update()
			a.draw()
		}
	}
}

func (a *app) cleanup() {
	if a.sound != nil {
		a.sound.Close()
	}
	a.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	sound := flag.Bool("sound", false, "Play a tone whenever sand is poured")
	fps := flag.Int("fps", 30, "Ticks per second")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is busy drawing)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	if *fps < 1 {
		*fps = 1
	}

	a, err := newApp(config.Cfg(), rngSeed, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	slog.Info("starting terminal simulation", "seed", rngSeed, "grid_w", a.sim.Layout().W, "grid_h", a.sim.Layout().H)
	a.run(*fps)
}
