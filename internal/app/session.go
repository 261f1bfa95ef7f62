package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"collage-maker/internal/scene"
)

// SessionFile is the JSON structure persisted between runs: window geometry,
// panel visibility, and an autosaved snapshot of the open scene.
type SessionFile struct {
	Version      int     `json:"version"`
	WindowWidth  float32 `json:"window_width,omitempty"`
	WindowHeight float32 `json:"window_height,omitempty"`
	PanelVisible bool    `json:"panel_visible"`
	SplitOffset  float64 `json:"split_offset,omitempty"`
	ProjectPath  string  `json:"project_path,omitempty"`

	Canvas *scene.CanvasState `json:"canvas,omitempty"`
}

const sessionVersion = 1

// DefaultSessionPath returns the per-user session file location.
func DefaultSessionPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(base, "collage-maker", "session.json"), nil
}

// SaveSession writes the session, including the open scene, to path.
func (s *State) SaveSession(path string, window SessionFile) error {
	st := s.Scene.ToCanvasState()
	session := SessionFile{
		Version:      sessionVersion,
		WindowWidth:  window.WindowWidth,
		WindowHeight: window.WindowHeight,
		PanelVisible: window.PanelVisible,
		SplitOffset:  window.SplitOffset,
		ProjectPath:  s.ProjectPath,
		Canvas:       &st,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// RestoreSession loads the session from path and restores the autosaved
// scene. A missing, corrupt, or invalid session never fails startup: the
// state keeps its fresh scene and the problem is logged.
func (s *State) RestoreSession(path string) SessionFile {
	session := SessionFile{Version: sessionVersion, PanelVisible: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read session", "path", path, "error", err)
		}
		return session
	}
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("discarding corrupt session", "path", path, "error", err)
		return SessionFile{Version: sessionVersion, PanelVisible: true}
	}

	if session.Canvas != nil {
		restored, err := scene.FromCanvasState(*session.Canvas)
		if err != nil {
			s.logger.Warn("discarding invalid autosaved scene", "path", path, "error", err)
		} else {
			s.mu.Lock()
			s.Scene = restored
			s.Engine = scene.NewEngine(restored)
			s.ProjectPath = session.ProjectPath
			s.mu.Unlock()
			s.Emit(EventSceneLoaded, session.ProjectPath)
			s.Emit(EventItemsChanged, nil)
		}
	}
	return session
}
