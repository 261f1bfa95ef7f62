// Package main provides the entry point for the Collage Maker application.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"collage-maker/internal/app"
	"collage-maker/internal/catalog"
	"collage-maker/internal/config"
	"collage-maker/internal/export"
	"collage-maker/internal/imagecache"
	"collage-maker/internal/logging"
	"collage-maker/ui/mainwindow"
	"collage-maker/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	var client *catalog.Client
	if cfg.HasRemoteCatalog() {
		client = catalog.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	} else {
		logger.Warn("SUPABASE_URL/SUPABASE_KEY not set, running with local catalog only")
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir, err = imagecache.DefaultDir()
		if err != nil {
			logger.Error("failed to resolve cache directory", "error", err)
			return
		}
	}
	var downloader imagecache.Downloader
	if client != nil {
		downloader = client
	}
	images, err := imagecache.New(cacheDir, downloader, logger)
	if err != nil {
		logger.Error("failed to initialize image cache", "error", err)
		return
	}

	var fetcher app.CatalogFetcher
	if client != nil {
		fetcher = client
	}
	state := app.NewState(fetcher, logger)
	exporter := export.NewExporter(state.Catalog, images, logger)

	if cfg.CatalogFile != "" {
		if err := state.Catalog.LoadFile(cfg.CatalogFile); err != nil {
			logger.Error("failed to load catalog file", "path", cfg.CatalogFile, "error", err)
		}
	}

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.CollageTheme{})
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, images, exporter, appPrefs, logger)

	sessionPath, err := app.DefaultSessionPath()
	if err != nil {
		logger.Warn("failed to resolve session path", "error", err)
	}
	session := app.SessionFile{WindowWidth: 1280, WindowHeight: 860, PanelVisible: true}
	if sessionPath != "" {
		session = state.RestoreSession(sessionPath)
		if session.WindowWidth < 640 || session.WindowHeight < 480 {
			session.WindowWidth, session.WindowHeight = 1280, 860
		}
	}
	win.Resize(fyne.NewSize(session.WindowWidth, session.WindowHeight))
	win.SetPanelVisible(session.PanelVisible)
	if session.PanelVisible {
		win.SetSplitOffset(session.SplitOffset)
	}

	// A command line argument opens a saved collage directly, overriding the
	// autosaved session scene.
	if len(os.Args) > 1 {
		if err := state.LoadScene(os.Args[1]); err != nil {
			logger.Error("failed to open collage", "path", os.Args[1], "error", err)
		}
	}

	if client != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := state.RefreshCatalog(ctx); err != nil {
				logger.Error("initial catalog refresh failed", "error", err)
			}
		}()
	}

	if cfg.DevMode {
		setupHotReload(logger)
	}

	win.SetCloseIntercept(func() {
		if sessionPath != "" {
			size := win.Canvas().Size()
			err := state.SaveSession(sessionPath, app.SessionFile{
				WindowWidth:  size.Width,
				WindowHeight: size.Height,
				PanelVisible: win.PanelVisible(),
				SplitOffset:  win.SplitOffset(),
			})
			if err != nil {
				logger.Warn("failed to save session", "error", err)
			}
		}
		win.Close()
	})

	win.ShowAndRun()
}

// setupHotReload restarts the app when a newer binary appears, for tight
// edit-compile-run loops during development.
func setupHotReload(logger *slog.Logger) {
	hr := app.NewHotReloader(2 * time.Second)
	if hr == nil {
		return
	}
	hr.OnNewBinary(func() {
		logger.Info("newer binary detected, restarting")
		if err := hr.Restart(); err != nil {
			logger.Error("restart failed", "error", err)
		}
	})
	hr.Start()
}
