// Package game ties the pieces together: it reads input, advances the
// viewer through the world, renders the first-person view, and exposes
// status lines for the backend overlay. It implements render.Game and runs
// unchanged under both engines.
package game

import (
	"fmt"
	"log"

	"chosenoffset.com/undercroft/internal/render"
	"chosenoffset.com/undercroft/internal/render/portal"
	"chosenoffset.com/undercroft/internal/ui/hud"
	"chosenoffset.com/undercroft/internal/ui/minimap"
	"chosenoffset.com/undercroft/internal/viewer"
	"chosenoffset.com/undercroft/internal/world"
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	// Scale divides the outside size to get the logical frame size, so a
	// doubled window still renders chunky pixels. Terminal runs use 1.
	Scale int

	World    *world.World
	Viewer   *viewer.Viewer
	Renderer *portal.Renderer
	InputMgr render.InputManager

	GameHUD *hud.HUD
	Minimap *minimap.Minimap
	ShowMap bool

	// UI state
	Messages []Message

	FrameCount int
}

// New creates a game over a validated world, spawning the viewer at the
// world's spawn point.
func New(w *world.World, input render.InputManager, width, height int, opts portal.Options) *Game {
	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Scale:        1,
		World:        w,
		Viewer:       viewer.New(w),
		Renderer:     portal.New(width, height, opts),
		InputMgr:     input,
		GameHUD:      hud.New(hud.DefaultConfig()),
		Minimap:      minimap.New(minimap.DefaultConfig()),
	}
	log.Printf("Entering %q: %d sectors, spawn in sector %d", w.Name, len(w.Sectors), g.Viewer.Sector)
	return g
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for movement (fixed 60 Hz tick)
	dt := 1.0 / 60.0

	if g.InputMgr.IsKeyPressed(render.KeyEscape) {
		return render.Termination
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		g.ShowMap = !g.ShowMap
	}

	in := viewer.Intents{
		TurnLeft:    g.InputMgr.IsKeyPressed(render.KeyA) || g.InputMgr.IsKeyPressed(render.KeyLeft),
		TurnRight:   g.InputMgr.IsKeyPressed(render.KeyD) || g.InputMgr.IsKeyPressed(render.KeyRight),
		MoveForward: g.InputMgr.IsKeyPressed(render.KeyW) || g.InputMgr.IsKeyPressed(render.KeyUp),
		MoveBack:    g.InputMgr.IsKeyPressed(render.KeyS) || g.InputMgr.IsKeyPressed(render.KeyDown),
		Interact:    g.InputMgr.IsKeyJustPressed(render.KeyE),
		Fire:        g.InputMgr.IsKeyJustPressed(render.KeySpace),
	}

	before := g.Viewer.Sector
	g.Viewer.Advance(g.World, in, dt)
	if g.Viewer.Sector != before {
		g.ShowMessage(fmt.Sprintf("Crossed into sector %d", g.Viewer.Sector))
	}

	if in.Interact {
		g.ShowMessage("Nothing here to interact with")
	}

	g.updateMessages(dt)
	g.FrameCount++
	return nil
}

// Draw renders the first-person view and the minimap overlay when toggled.
func (g *Game) Draw(frame *render.Frame) {
	g.Renderer.Render(g.Viewer, g.World, frame)
	if g.ShowMap {
		g.Minimap.Draw(frame, g.World, g.Viewer)
	}
}

// Layout reports the logical frame size: the outside size divided by the
// pixel scale. Both engines call it every tick, so window and terminal
// resizes flow through here.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := g.Scale
	if scale < 1 {
		scale = 1
	}
	w, h := outsideWidth/scale, outsideHeight/scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.ScreenWidth, g.ScreenHeight = w, h
	return w, h
}

// StatusLines formats the HUD overlay for the backend to draw.
func (g *Game) StatusLines() []string {
	msgs := make([]string, len(g.Messages))
	for i, m := range g.Messages {
		msgs[i] = m.Text
	}
	return g.GameHUD.Lines(g.Viewer, g.World, g.Renderer.LastStats(), msgs)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	log.Printf("Message: %s", text)
}
