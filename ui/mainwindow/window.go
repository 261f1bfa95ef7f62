// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"collage-maker/internal/app"
	"collage-maker/internal/export"
	"collage-maker/internal/version"
	"collage-maker/ui/canvas"
	"collage-maker/ui/dialogs"
	"collage-maker/ui/panels"
	"collage-maker/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir     = "lastDirectory"
	prefKeyPanel       = "panelVisible"
	sceneFileExtension = ".collage"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	prefs    *prefs.Prefs
	exporter *export.Exporter
	logger   *slog.Logger

	canvas       *canvas.CollageCanvas
	catalogPanel *panels.CatalogPanel
	itemsPanel   *panels.ItemsPanel
	statusBar    *widget.Label

	split *container.Split

	aspectItem   *fyne.MenuItem
	aspectLocked bool

	panelItem    *fyne.MenuItem
	panelVisible bool
}

// New creates the main window wired to the application state.
func New(fyneApp fyne.App, state *app.State, images canvas.ImageSource,
	exporter *export.Exporter, appPrefs *prefs.Prefs, logger *slog.Logger) *MainWindow {
	if logger == nil {
		logger = slog.Default()
	}
	win := fyneApp.NewWindow("Collage Maker")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		prefs:    appPrefs,
		exporter: exporter,
		logger:   logger,
	}

	mw.setupUI(images)
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupShortcuts()

	return mw
}

func (mw *MainWindow) setupUI(images canvas.ImageSource) {
	mw.canvas = canvas.New(mw.state, images, mw.logger)
	mw.catalogPanel = panels.NewCatalogPanel(mw.state, images, mw.logger)
	mw.itemsPanel = panels.NewItemsPanel(mw.state, mw.logger)
	mw.statusBar = widget.NewLabel("Ready")

	mw.catalogPanel.OnPlace = mw.onPlaceFurniture

	canvasArea := container.NewBorder(
		nil,
		mw.itemsPanel.Container(),
		nil, nil,
		mw.canvas,
	)

	mw.split = container.NewHSplit(
		mw.catalogPanel.Container(),
		canvasArea,
	)
	mw.split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		mw.split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Collage", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Image...", mw.onExportPNG),
		fyne.NewMenuItem("Export Shopping List...", mw.onExportHTML),
		fyne.NewMenuItem("Export PDF...", mw.onExportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.aspectItem = fyne.NewMenuItem("✓ Keep Aspect Ratio", mw.onToggleAspect)
	mw.aspectLocked = true
	mw.canvas.SetAspectLocked(true)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Delete Selection", mw.onDeleteSelection),
		fyne.NewMenuItem("Flip Horizontal", mw.onFlip),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Bring to Front", func() { mw.onRestack(true) }),
		fyne.NewMenuItem("Send to Back", func() { mw.onRestack(false) }),
		fyne.NewMenuItemSeparator(),
		mw.aspectItem,
		fyne.NewMenuItem("Canvas Size...", mw.onCanvasSize),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Set Background Image...", mw.onSetBackground),
		fyne.NewMenuItem("Clear Background", func() { mw.state.SetBackground("") }),
	)

	mw.panelItem = fyne.NewMenuItem("✓ Catalog Panel", mw.onTogglePanel)
	mw.panelVisible = true

	viewMenu := fyne.NewMenu("View",
		mw.panelItem,
	)

	catalogMenu := fyne.NewMenu("Catalog",
		fyne.NewMenuItem("Refresh Catalog", mw.onRefreshCatalog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, catalogMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSceneLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle("Collage Maker - " + filepath.Base(path))
			mw.updateStatus("Opened " + path)
		}
	})

	mw.state.On(app.EventSceneSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Collage Maker - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventCatalogLoaded, func(data interface{}) {
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Catalog loaded: %d items", n))
		}
	})
}

func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDeleteSelection()
		case fyne.KeyEscape:
			mw.canvas.CancelGesture()
			mw.state.Scene.ClearSelection()
			mw.state.Emit(app.EventSelectionChanged, nil)
		}
	})

	mw.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) { mw.onSave() })
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		mw.logger.Warn("failed to save preferences", "error", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onNew() {
	mw.state.NewScene()
	mw.SetTitle("Collage Maker")
	mw.updateStatus("New collage")
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadScene(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{sceneFileExtension, ".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSave() {
	if mw.state.ProjectPath == "" {
		mw.onSaveAs()
		return
	}
	if err := mw.state.SaveScene(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += sceneFileExtension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveScene(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("collage" + sceneFileExtension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := mw.exporter.WritePNG(context.Background(), mw.state.Scene, path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("collage.png")
	fd.Show()
}

func (mw *MainWindow) onExportHTML() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".html"
		}
		mw.saveLastDir(path)
		if err := mw.exporter.WriteHTML(context.Background(), mw.state.Scene, path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("shopping-list.html")
	fd.Show()
}

func (mw *MainWindow) onExportPDF() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".pdf"
		}
		mw.saveLastDir(path)
		if err := mw.exporter.WritePDF(context.Background(), mw.state.Scene, path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("collage.pdf")
	fd.Show()
}

func (mw *MainWindow) onPlaceFurniture(furnitureID string) {
	center := mw.state.Scene.CanvasBounds().Center()
	if _, err := mw.state.PlaceFurniture(furnitureID, center); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Added " + furnitureID)
}

func (mw *MainWindow) onDeleteSelection() {
	n, err := mw.state.DeleteSelection()
	if err != nil {
		mw.logger.Warn("delete failed", "error", err)
		return
	}
	if n > 0 {
		mw.updateStatus(fmt.Sprintf("Deleted %d item(s)", n))
	}
}

func (mw *MainWindow) onFlip() {
	anchor := mw.state.Scene.Selection().Anchor()
	if anchor == nil {
		return
	}
	if err := mw.state.Scene.ToggleFlip(anchor.ID); err != nil {
		mw.logger.Warn("flip failed", "error", err)
		return
	}
	mw.state.SetModified(true)
	mw.state.Emit(app.EventAdjustmentChanged, anchor.ID)
}

func (mw *MainWindow) onRestack(front bool) {
	anchor := mw.state.Scene.Selection().Anchor()
	if anchor == nil {
		return
	}
	var err error
	if front {
		err = mw.state.Scene.BringToFront(anchor.ID)
	} else {
		err = mw.state.Scene.SendToBack(anchor.ID)
	}
	if err != nil {
		mw.logger.Warn("restack failed", "error", err)
		return
	}
	mw.state.SetModified(true)
	mw.state.Emit(app.EventItemsChanged, nil)
}

func (mw *MainWindow) onToggleAspect() {
	mw.aspectLocked = !mw.aspectLocked
	if mw.aspectLocked {
		mw.aspectItem.Label = "✓ Keep Aspect Ratio"
	} else {
		mw.aspectItem.Label = "  Keep Aspect Ratio"
	}
	mw.canvas.SetAspectLocked(mw.aspectLocked)
}

func (mw *MainWindow) onTogglePanel() {
	mw.SetPanelVisible(!mw.panelVisible)
	mw.prefs.SetBool(prefKeyPanel, mw.panelVisible)
	if err := mw.prefs.Save(); err != nil {
		mw.logger.Warn("failed to save preferences", "error", err)
	}
}

// SplitOffset returns the catalog/canvas splitter position.
func (mw *MainWindow) SplitOffset() float64 {
	return mw.split.Offset
}

// SetSplitOffset moves the catalog/canvas splitter.
func (mw *MainWindow) SetSplitOffset(offset float64) {
	if offset > 0 && offset < 1 {
		mw.split.SetOffset(offset)
	}
}

// PanelVisible reports whether the catalog panel is shown.
func (mw *MainWindow) PanelVisible() bool {
	return mw.panelVisible
}

// SetPanelVisible shows or hides the catalog side panel.
func (mw *MainWindow) SetPanelVisible(visible bool) {
	mw.panelVisible = visible
	if visible {
		mw.catalogPanel.Container().Show()
		mw.split.SetOffset(0.25)
		mw.panelItem.Label = "✓ Catalog Panel"
	} else {
		mw.catalogPanel.Container().Hide()
		mw.split.SetOffset(0)
		mw.panelItem.Label = "  Catalog Panel"
	}
	mw.split.Refresh()
}

func (mw *MainWindow) onCanvasSize() {
	dialogs.ShowCanvasSize(mw.Window, mw.state.Scene.Width(), mw.state.Scene.Height(),
		mw.state.ResizeCanvas)
}

func (mw *MainWindow) onSetBackground() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.state.SetBackground(path)
		mw.updateStatus("Background set")
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onRefreshCatalog() {
	mw.updateStatus("Refreshing catalog...")
	go func() {
		if err := mw.state.RefreshCatalog(context.Background()); err != nil {
			mw.logger.Error("catalog refresh failed", "error", err)
		}
	}()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Collage Maker",
		fmt.Sprintf("Collage Maker v%s\n\n"+
			"Arrange furniture from the catalog into room collages.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
