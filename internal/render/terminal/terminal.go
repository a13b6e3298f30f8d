// Package terminal is the text-mode presentation backend. It runs the game
// loop on a tcell screen and presents each frame with the upper-half-block
// glyph, packing two vertical pixels into every terminal cell: the glyph
// foreground carries the upper pixel, the cell background the lower.
package terminal

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/undercroft/internal/render"
)

// halfBlock is the glyph every cell is drawn with.
const halfBlock = '▀'

const tickRate = time.Second / 60

// keyHoldTicks is how many ticks a key counts as held after its event.
// Terminals report presses (and autorepeats), never releases, so held
// state has to decay on its own. 15 ticks bridges the usual autorepeat
// delay without making single taps feel sticky.
const keyHoldTicks = 15

// TerminalInputManager tracks key state assembled from the tcell event
// stream. The engine feeds it events and ages it once per tick.
type TerminalInputManager struct {
	held map[render.Key]int
	just map[render.Key]bool
}

// NewInputManager creates an input manager for a terminal engine.
func NewInputManager() *TerminalInputManager {
	return &TerminalInputManager{
		held: make(map[render.Key]int),
		just: make(map[render.Key]bool),
	}
}

// IsKeyPressed returns whether the key is currently counted as held.
func (m *TerminalInputManager) IsKeyPressed(key render.Key) bool {
	return m.held[key] > 0
}

// IsKeyJustPressed returns whether the key transitioned to held this tick.
func (m *TerminalInputManager) IsKeyJustPressed(key render.Key) bool {
	return m.just[key]
}

// press records a key event. Autorepeat events refresh the hold window
// without retriggering the just-pressed edge.
func (m *TerminalInputManager) press(key render.Key) {
	if m.held[key] == 0 {
		m.just[key] = true
	}
	m.held[key] = keyHoldTicks
}

// tick ages the key state after a game update has consumed it.
func (m *TerminalInputManager) tick() {
	for k := range m.just {
		delete(m.just, k)
	}
	for k, n := range m.held {
		if n <= 1 {
			delete(m.held, k)
		} else {
			m.held[k] = n - 1
		}
	}
}

// TerminalEngine implements the Engine interface on a tcell screen.
type TerminalEngine struct {
	screen tcell.Screen
	input  *TerminalInputManager
	title  string
}

// NewEngine creates a terminal engine that opens the process's terminal
// when RunGame is called.
func NewEngine() *TerminalEngine {
	return &TerminalEngine{input: NewInputManager()}
}

// NewEngineWithScreen creates a terminal engine on a caller-provided
// screen. Tests use it with tcell's simulation screen.
func NewEngineWithScreen(s tcell.Screen) *TerminalEngine {
	return &TerminalEngine{screen: s, input: NewInputManager()}
}

// Input returns the engine's input manager for wiring into the game.
func (e *TerminalEngine) Input() render.InputManager {
	return e.input
}

// SetWindowSize is ignored; the terminal decides its own size.
func (e *TerminalEngine) SetWindowSize(width, height int) {}

// SetWindowTitle records the title; RunGame applies it to terminals that
// support title setting.
func (e *TerminalEngine) SetWindowTitle(title string) {
	e.title = title
}

// SetWindowResizable is ignored; terminals are always resizable.
func (e *TerminalEngine) SetWindowResizable(resizable bool) {}

// RunGame runs the game loop until the game returns render.Termination,
// the user hits Ctrl+C, or an update fails.
func (e *TerminalEngine) RunGame(game render.Game) error {
	s := e.screen
	if s == nil {
		var err error
		s, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	defer s.Fini()
	s.HideCursor()
	if e.title != "" {
		s.SetTitle(e.title)
	}

	// Poll terminal events on their own goroutine; the tick loop drains
	// them between updates. Fini makes PollEvent return nil, and quit
	// unblocks a sender stuck on a full channel.
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	frame := render.NewFrame(1, 1)
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		for drained := false; !drained; {
			select {
			case ev := <-events:
				switch tev := ev.(type) {
				case *tcell.EventKey:
					if tev.Key() == tcell.KeyCtrlC {
						return nil
					}
					if key, ok := eventKey(tev); ok {
						e.input.press(key)
					}
				case *tcell.EventResize:
					s.Sync()
				}
			default:
				drained = true
			}
		}

		if err := game.Update(); err != nil {
			if errors.Is(err, render.Termination) {
				return nil
			}
			return err
		}
		e.input.tick()

		cols, rows := s.Size()
		fw, fh := game.Layout(cols, rows*2)
		frame.Resize(fw, fh)
		game.Draw(frame)
		e.present(s, frame, game)
		s.Show()

		<-ticker.C
	}
}

// present writes the frame into the screen cells and overlays status text.
func (e *TerminalEngine) present(s tcell.Screen, f *render.Frame, game render.Game) {
	cols, rows := s.Size()
	if cols > f.Width {
		cols = f.Width
	}
	if rows*2 > f.Height {
		rows = f.Height / 2
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			up := f.At(cx, cy*2)
			lo := f.At(cx, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(up.R), int32(up.G), int32(up.B))).
				Background(tcell.NewRGBColor(int32(lo.R), int32(lo.G), int32(lo.B)))
			s.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if sp, ok := game.(render.StatusProvider); ok {
		for i, line := range sp.StatusLines() {
			drawText(s, 1, 1+i, line)
		}
	}
}

// drawText writes a line of status text over the frame cells.
func drawText(s tcell.Screen, x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// eventKey maps a tcell key event onto the game's key space.
func eventKey(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyTab:
		return render.KeyTab, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyW, true
		case 'a', 'A':
			return render.KeyA, true
		case 's', 'S':
			return render.KeyS, true
		case 'd', 'D':
			return render.KeyD, true
		case 'e', 'E':
			return render.KeyE, true
		case ' ':
			return render.KeySpace, true
		}
	}
	return 0, false
}
