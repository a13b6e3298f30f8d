package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"chosenoffset.com/undercroft/internal/game"
	ebitenrender "chosenoffset.com/undercroft/internal/render/ebiten"
	"chosenoffset.com/undercroft/internal/render/portal"
	"chosenoffset.com/undercroft/internal/render/terminal"
	"chosenoffset.com/undercroft/internal/world"
)

func main() {
	// Command-line flags
	worldFile := flag.String("world", "", "World file to load (JSON); empty runs the built-in demo")
	worldsDir := flag.String("worlds", "data/worlds", "Directory scanned by -list")
	list := flag.Bool("list", false, "List worlds in the worlds directory and exit")
	backend := flag.String("backend", "ebiten", "Presentation backend: ebiten or terminal")
	width := flag.Int("width", 1280, "Window width in pixels (ebiten backend)")
	height := flag.Int("height", 800, "Window height in pixels (ebiten backend)")
	scale := flag.Int("scale", 2, "Pixel scale for the window backend")
	hfov := flag.Float64("hfov", 90, "Horizontal field of view in degrees")
	vfov := flag.Float64("vfov", 64, "Vertical field of view in degrees")
	flag.Parse()

	if *list {
		infos, err := world.ScanWorlds(*worldsDir)
		if err != nil {
			log.Fatalf("Failed to scan %s: %v", *worldsDir, err)
		}
		if len(infos) == 0 {
			fmt.Printf("No worlds found in %s\n", *worldsDir)
			return
		}
		for _, info := range infos {
			fmt.Printf("%-24s %2d sectors  %s\n", info.Name, info.Sectors, info.Path)
		}
		return
	}

	var w *world.World
	if *worldFile == "" {
		w = world.Demo()
		log.Printf("No world file given, running the built-in demo")
	} else {
		var err error
		w, err = world.Load(*worldFile)
		if err != nil {
			log.Fatalf("Failed to load world: %v", err)
		}
		log.Printf("Loaded world: %s (%d sectors)", w.Name, len(w.Sectors))
	}

	opts := portal.DefaultOptions()
	opts.HFOVDeg = *hfov
	opts.VFOVDeg = *vfov

	if *scale < 1 {
		*scale = 1
	}

	title := fmt.Sprintf("Undercroft [%s] - WASD to move, Tab for map", w.Name)

	switch *backend {
	case "ebiten":
		inputMgr := ebitenrender.NewInputManager()
		g := game.New(w, inputMgr, *width / *scale, *height / *scale, opts)
		g.Scale = *scale

		engine := ebitenrender.NewEngine()
		engine.SetWindowSize(*width, *height)
		engine.SetWindowTitle(title)
		engine.SetWindowResizable(true)

		log.Println("Starting game...")
		if err := engine.RunGame(g); err != nil {
			log.Fatal(err)
		}

	case "terminal":
		engine := terminal.NewEngine()
		g := game.New(w, engine.Input(), 80, 48, opts)
		engine.SetWindowTitle(title)

		// tcell owns the terminal from here; logging to stderr would
		// scribble over the frame.
		logOut := log.Writer()
		log.SetOutput(io.Discard)
		if err := engine.RunGame(g); err != nil {
			log.SetOutput(logOut)
			log.Fatal(err)
		}

	default:
		log.Fatalf("Unknown backend %q (want ebiten or terminal)", *backend)
	}
}
