package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"
	"collage-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	records []*catalog.FurnitureRecord
	err     error
}

func (f *fakeFetcher) Fetch(context.Context) ([]*catalog.FurnitureRecord, error) {
	return f.records, f.err
}

func chairRecord() *catalog.FurnitureRecord {
	return &catalog.FurnitureRecord{
		ID: "chair-1", Brand: "Vitra", Name: "Eames Chair", Type: "chair",
		ImageFilename: "chair-1.png", Price: 900, Width: 500, Height: 500,
	}
}

func newTestState(t *testing.T) *State {
	t.Helper()
	st := NewState(&fakeFetcher{records: []*catalog.FurnitureRecord{chairRecord()}}, nil)
	require.NoError(t, st.RefreshCatalog(context.Background()))
	return st
}

func TestRefreshCatalog(t *testing.T) {
	st := NewState(&fakeFetcher{records: []*catalog.FurnitureRecord{chairRecord()}}, nil)

	var got int
	st.On(EventCatalogLoaded, func(data interface{}) { got = data.(int) })
	require.NoError(t, st.RefreshCatalog(context.Background()))
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, st.Catalog.Len())
}

func TestRefreshCatalogErrors(t *testing.T) {
	st := NewState(&fakeFetcher{err: errors.New("offline")}, nil)
	assert.Error(t, st.RefreshCatalog(context.Background()))

	st = NewState(nil, nil)
	assert.Error(t, st.RefreshCatalog(context.Background()))
}

func TestPlaceFurniture(t *testing.T) {
	st := newTestState(t)

	var itemsChanged, selectionChanged, modified bool
	st.On(EventItemsChanged, func(interface{}) { itemsChanged = true })
	st.On(EventSelectionChanged, func(interface{}) { selectionChanged = true })
	st.On(EventModified, func(interface{}) { modified = true })

	it, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)
	assert.Equal(t, "chair-1", it.FurnitureID)
	assert.True(t, st.Scene.Selection().Contains(it))
	assert.True(t, itemsChanged)
	assert.True(t, selectionChanged)
	assert.True(t, modified)
	assert.True(t, st.Modified)

	_, err = st.PlaceFurniture("unknown", geometry.NewPoint2D(0, 0))
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestDeleteSelection(t *testing.T) {
	st := newTestState(t)
	_, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)

	n, err := st.DeleteSelection()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, st.Scene.Len())

	n, err = st.DeleteSelection()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSaveAndLoadScene(t *testing.T) {
	st := newTestState(t)
	_, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)
	st.Scene.Title = "draft"

	path := filepath.Join(t.TempDir(), "living-room.json")
	var saved, loaded string
	st.On(EventSceneSaved, func(data interface{}) { saved = data.(string) })
	st.On(EventSceneLoaded, func(data interface{}) { loaded = data.(string) })

	require.NoError(t, st.SaveScene(path))
	assert.Equal(t, path, saved)
	assert.Equal(t, path, st.ProjectPath)
	assert.False(t, st.Modified)

	other := NewState(nil, nil)
	other.On(EventSceneLoaded, func(data interface{}) { loaded = data.(string) })
	require.NoError(t, other.LoadScene(path))
	assert.Equal(t, path, loaded)
	assert.Equal(t, 1, other.Scene.Len())
	assert.Equal(t, "draft", other.Scene.Title)
}

func TestLoadSceneKeepsCurrentOnError(t *testing.T) {
	st := newTestState(t)
	_, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)
	before := st.Scene

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	assert.Error(t, st.LoadScene(path))
	assert.Same(t, before, st.Scene)
	assert.Equal(t, 1, st.Scene.Len())
}

func TestResizeCanvas(t *testing.T) {
	st := newTestState(t)
	var resized bool
	st.On(EventCanvasResized, func(interface{}) { resized = true })

	require.NoError(t, st.ResizeCanvas(1200, 900))
	assert.Equal(t, 1200.0, st.Scene.Width())
	assert.True(t, resized)

	var verr *scene.ValidationError
	err := st.ResizeCanvas(10, 10)
	assert.True(t, errors.As(err, &verr))
}

func TestNewSceneResets(t *testing.T) {
	st := newTestState(t)
	_, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)

	st.NewScene()
	assert.Equal(t, 0, st.Scene.Len())
	assert.Empty(t, st.ProjectPath)
	assert.False(t, st.Modified)
}

func TestSetBackground(t *testing.T) {
	st := newTestState(t)
	var redrawn bool
	st.On(EventCanvasResized, func(interface{}) { redrawn = true })

	st.SetBackground("/tmp/room.png")
	assert.Equal(t, "/tmp/room.png", st.Scene.Background)
	assert.True(t, st.Modified)
	assert.True(t, redrawn)

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, st.SaveScene(path))
	other := NewState(nil, nil)
	require.NoError(t, other.LoadScene(path))
	assert.Equal(t, "/tmp/room.png", other.Scene.Background)
}

func TestSessionRoundTrip(t *testing.T) {
	st := newTestState(t)
	_, err := st.PlaceFurniture("chair-1", geometry.NewPoint2D(400, 300))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, st.SaveSession(path, SessionFile{
		WindowWidth: 1280, WindowHeight: 860, PanelVisible: true, SplitOffset: 0.3,
	}))

	other := NewState(nil, nil)
	session := other.RestoreSession(path)
	assert.Equal(t, float32(1280), session.WindowWidth)
	assert.True(t, session.PanelVisible)
	assert.Equal(t, 0.3, session.SplitOffset)
	assert.Equal(t, 1, other.Scene.Len())
}

func TestRestoreSessionMissingFile(t *testing.T) {
	st := NewState(nil, nil)
	session := st.RestoreSession(filepath.Join(t.TempDir(), "none.json"))
	assert.True(t, session.PanelVisible)
	assert.Equal(t, 0, st.Scene.Len())
}

func TestRestoreSessionCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	st := NewState(nil, nil)
	st.RestoreSession(path)
	assert.Equal(t, 0, st.Scene.Len(), "corrupt session must yield a fresh scene")
}

func TestRestoreSessionInvalidSceneFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := `{"version": 1, "panel_visible": true,
		"canvas": {"version": "9.9", "width": 800, "height": 600}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	st := NewState(nil, nil)
	st.RestoreSession(path)
	assert.Equal(t, 0, st.Scene.Len())
}
