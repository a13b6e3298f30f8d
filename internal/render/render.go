// Package render declares the backend-neutral surface the game draws
// through: a CPU-side RGBA frame filled with vertical spans, plus the input,
// game-loop, and window interfaces each backend implements. Keeping game
// logic behind these interfaces allows swapping presentation backends
// without changing the renderer or the world.
package render

import "errors"

// Termination is returned from Game.Update to request a clean shutdown of
// the engine loop. Engines translate it into their own exit path and
// RunGame returns nil.
var Termination = errors.New("game terminated")

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds.
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // interact
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace // fire
	KeyTab   // minimap toggle
	KeyEscape
)

// InputManager reports keyboard state, sampled once per tick.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Game is implemented by the top-level game struct and driven by an Engine.
type Game interface {
	// Update advances the game logic one tick (typically 60 per second).
	Update() error

	// Draw fills the frame for the current tick. The frame size is the
	// backend's choice; Draw adapts to whatever it is handed.
	Draw(frame *Frame)

	// Layout accepts the outside size (e.g. the window size) and returns
	// the logical frame size the game wants rendered.
	Layout(outsideWidth, outsideHeight int) (frameWidth, frameHeight int)
}

// StatusProvider is implemented by games that expose HUD text for the
// backend to overlay on the presented frame.
type StatusProvider interface {
	StatusLines() []string
}

// Engine manages the window (or terminal) and runs the game loop.
type Engine interface {
	// SetWindowSize sets the window size in pixels. Terminal backends
	// ignore it; the terminal decides.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game. It blocks until
	// the game ends or the backend quits (window close, Escape, Ctrl+C).
	RunGame(game Game) error
}
