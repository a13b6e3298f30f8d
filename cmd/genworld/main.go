package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/undercroft/internal/world"
)

func main() {
	out := flag.String("out", "data/worlds/undercroft.json", "Output path for the world file")
	flag.Parse()

	fmt.Println("Undercroft World Generator")
	fmt.Println("==========================")
	fmt.Println()

	w := world.Demo()
	if err := world.Save(w, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %q (%d sectors) to %s\n", w.Name, len(w.Sectors), *out)
	fmt.Println("Edit the JSON by hand and run the game with -world to explore it.")
}
