// Package app provides application lifecycle management, state, and events.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"
	"collage-maker/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventSceneLoaded EventType = iota
	EventSceneSaved
	EventSceneCleared
	EventCatalogLoaded
	EventItemsChanged
	EventSelectionChanged
	EventCanvasResized
	EventAdjustmentChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// CatalogFetcher retrieves the remote furniture catalog. *catalog.Client
// satisfies it.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]*catalog.FurnitureRecord, error)
}

// State holds the application state: the open scene, its transform engine,
// the furniture catalog, and the event listeners that keep the UI in sync.
type State struct {
	mu sync.RWMutex

	Scene   *scene.Scene
	Engine  *scene.Engine
	Catalog *catalog.Catalog

	ProjectPath string
	Modified    bool

	fetcher CatalogFetcher
	logger  *slog.Logger

	listeners map[EventType][]EventListener
}

// NewState creates application state with an empty default scene. fetcher
// and logger may be nil.
func NewState(fetcher CatalogFetcher, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := scene.NewScene(scene.DefaultCanvasWidth, scene.DefaultCanvasHeight)
	return &State{
		Scene:     s,
		Engine:    scene.NewEngine(s),
		Catalog:   catalog.NewCatalog(),
		fetcher:   fetcher,
		logger:    logger,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the scene as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// RefreshCatalog fetches the remote catalog and replaces the local copy.
func (s *State) RefreshCatalog(ctx context.Context) error {
	if s.fetcher == nil {
		return fmt.Errorf("no catalog source configured")
	}
	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}
	s.Catalog.Replace(records)
	s.logger.Info("catalog refreshed", "records", len(records))
	s.Emit(EventCatalogLoaded, len(records))
	return nil
}

// PlaceFurniture adds a catalog item to the scene at the drop position and
// selects it.
func (s *State) PlaceFurniture(furnitureID string, drop geometry.Point2D) (*scene.PlacedItem, error) {
	rec := s.Catalog.Get(furnitureID)
	if rec == nil {
		return nil, fmt.Errorf("furniture %q: %w", furnitureID, scene.ErrNotFound)
	}
	it, err := s.Scene.AddItem(rec, drop)
	if err != nil {
		return nil, err
	}
	s.Scene.Selection().SetSingle(it)
	s.SetModified(true)
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, nil)
	return it, nil
}

// DeleteSelection removes every selected item.
func (s *State) DeleteSelection() (int, error) {
	n, err := s.Engine.DeleteSelected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.SetModified(true)
		s.Emit(EventItemsChanged, nil)
		s.Emit(EventSelectionChanged, nil)
	}
	return n, nil
}

// ResizeCanvas changes the canvas size, reclamping placed items.
func (s *State) ResizeCanvas(width, height float64) error {
	if err := s.Scene.Resize(width, height); err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventCanvasResized, nil)
	s.Emit(EventItemsChanged, nil)
	return nil
}

// ApplyAdjustment changes one adjustment value on an item.
func (s *State) ApplyAdjustment(id string, field scene.AdjustmentField, value int) error {
	if err := s.Scene.ApplyAdjustment(id, field, value); err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventAdjustmentChanged, id)
	return nil
}

// SetBackground sets or clears the canvas background image path.
func (s *State) SetBackground(path string) {
	s.Scene.Background = path
	s.SetModified(true)
	s.Emit(EventCanvasResized, nil)
}

// NewScene replaces the open scene with an empty one.
func (s *State) NewScene() {
	sc := scene.NewScene(scene.DefaultCanvasWidth, scene.DefaultCanvasHeight)
	s.mu.Lock()
	s.Scene = sc
	s.Engine = scene.NewEngine(sc)
	s.ProjectPath = ""
	s.mu.Unlock()
	s.SetModified(false)
	s.Emit(EventSceneCleared, nil)
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, nil)
}

// SaveScene writes the scene snapshot to the given path.
func (s *State) SaveScene(path string) error {
	data, err := scene.MarshalState(s.Scene.ToCanvasState())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSceneSaved, path)
	return nil
}

// LoadScene replaces the open scene with one read from path. The file is
// validated before the current scene is touched: on any error the open scene
// is left as it was.
func (s *State) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	st, err := scene.UnmarshalState(data)
	if err != nil {
		return err
	}
	loaded, err := scene.FromCanvasState(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Scene = loaded
	s.Engine = scene.NewEngine(loaded)
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.logger.Info("scene loaded", "path", path, "items", loaded.Len())
	s.Emit(EventSceneLoaded, path)
	s.Emit(EventItemsChanged, nil)
	s.Emit(EventSelectionChanged, nil)
	return nil
}
