package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Info describes a loadable world file found by ScanWorlds.
type Info struct {
	Name    string // display name from the file
	Path    string
	Sectors int
}

// ScanWorlds lists the world files in a directory that load and validate
// cleanly. Files that fail to load are skipped, not reported; the scan is a
// discovery pass, not a validation pass.
func ScanWorlds(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read worlds directory %s: %w", dir, err)
	}

	var worlds []Info
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		w, err := Load(path)
		if err != nil {
			continue
		}
		worlds = append(worlds, Info{Name: w.Name, Path: path, Sectors: len(w.Sectors)})
	}

	return worlds, nil
}
