package main

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestApp(t *testing.T, path string) (*App, *Store) {
	t.Helper()
	store, err := LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	watcher, err := NewManifestWatcher(path)
	if err != nil {
		t.Fatalf("NewManifestWatcher: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))
	app, err := NewApp(store, watcher, result)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(watcher.Stop)
	return app, store
}

// drainFor pumps pending watcher signals through the app for about three
// debounce windows, the way the update loop would.
func drainFor(app *App) {
	deadline := time.Now().Add(3 * watchDebounce)
	for time.Now().Before(deadline) {
		app.drainWatcher()
		time.Sleep(20 * time.Millisecond)
	}
}

func TestAppIgnoresOwnSaves(t *testing.T) {
	path := writeManifest(t, t.TempDir(), testManifest())
	app, store := newTestApp(t, path)

	if err := store.SetCaption("p1", "d1", "demo day"); err != nil {
		t.Fatalf("SetCaption: %v", err)
	}
	drainFor(app)

	// The save's watcher signal must not reload the store out from under the
	// edit: the undo log survives.
	if undone, err := store.Undo(); err != nil || !undone {
		t.Fatalf("Undo after a watched save = (%v, %v)", undone, err)
	}
}

func TestAppReloadsOnExternalEdit(t *testing.T) {
	path := writeManifest(t, t.TempDir(), testManifest())
	app, store := newTestApp(t, path)

	m := testManifest()
	m.Projects[0].Title = "Maple Street Kitchen Redux"
	if err := (&Store{path: path, projects: m.Projects}).Save(); err != nil {
		t.Fatal(err)
	}
	drainFor(app)

	p, ok := store.Project("p1")
	if !ok {
		t.Fatal("project p1 missing after external edit")
	}
	if p.Title != "Maple Street Kitchen Redux" {
		t.Errorf("title = %q, external edit not reloaded", p.Title)
	}
}
