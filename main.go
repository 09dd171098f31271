package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "portfolio.json", "Path to the portfolio manifest")
		importPath   = flag.String("import", "", "Import projects from a CSV file into the manifest and exit")
		fullscreen   = flag.Bool("fullscreen", false, "Start in fullscreen mode")
		debugMode    = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	debugEnabled = *debugMode

	store, err := LoadStore(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest %s: %v", *manifestPath, err)
	}

	if *importPath != "" {
		count, err := store.ImportCSV(*importPath)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d projects into %s\n", count, *manifestPath)
		os.Exit(0)
	}

	result := loadConfig()
	if *fullscreen {
		result.Config.Fullscreen = true
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}

	watcher, err := NewManifestWatcher(*manifestPath)
	if err != nil {
		// The viewer still works without live reload
		log.Printf("Warning: manifest watching disabled: %v", err)
		watcher = nil
	} else if err := watcher.Start(); err != nil {
		log.Printf("Warning: manifest watching disabled: %v", err)
		watcher = nil
	}

	app, err := NewApp(store, watcher, result)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ebiten.SetWindowTitle("folio")
	ebiten.SetWindowSize(result.Config.WindowWidth, result.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(result.Config.Fullscreen)

	if err := ebiten.RunGame(app); err != nil && err != ebiten.Termination {
		log.Fatalf("Application error: %v", err)
	}
	app.Shutdown()
}
