package scene

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"collage-maker/pkg/geometry"
)

// StateVersion is the canvas state schema version this package reads and
// writes. Loading rejects any other version.
const StateVersion = "1.0"

// ItemState is the serialized snapshot of one placed item.
type ItemState struct {
	ID          string  `json:"id,omitempty"`
	FurnitureID string  `json:"furniture_id"`
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ZOrder      int     `json:"z_order"`
	IsFlipped   bool    `json:"is_flipped"`

	ColorTemperature int `json:"color_temperature"`
	Brightness       int `json:"brightness"`
	Saturation       int `json:"saturation"`
}

// UnmarshalJSON fills defaults before decoding, so states saved by older
// versions that lack the adjustment fields load with the documented defaults
// rather than zero values.
func (st *ItemState) UnmarshalJSON(data []byte) error {
	type alias ItemState
	a := alias{
		ColorTemperature: DefaultColorTemperature,
		Brightness:       DefaultBrightness,
		Saturation:       DefaultSaturation,
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*st = ItemState(a)
	return nil
}

// CanvasState is the versioned, flattened snapshot of a scene: the contract
// consumed by the persistence and export collaborators.
type CanvasState struct {
	Version     string      `json:"version"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Background  string      `json:"background,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ModifiedAt  time.Time   `json:"modified_at"`
	Items       []ItemState `json:"furniture_items"`
}

// ToCanvasState returns a snapshot of the scene. Items are emitted in
// insertion order; z-order is carried per item.
func (s *Scene) ToCanvasState() CanvasState {
	st := CanvasState{
		Version:     StateVersion,
		Width:       s.width,
		Height:      s.height,
		Background:  s.Background,
		Title:       s.Title,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		ModifiedAt:  s.ModifiedAt,
		Items:       make([]ItemState, 0, len(s.items)),
	}
	for _, it := range s.items {
		st.Items = append(st.Items, ItemState{
			ID:               it.ID,
			FurnitureID:      it.FurnitureID,
			PositionX:        it.Bounds.X,
			PositionY:        it.Bounds.Y,
			Width:            it.Bounds.Width,
			Height:           it.Bounds.Height,
			ZOrder:           it.ZOrder,
			IsFlipped:        it.IsFlipped,
			ColorTemperature: it.ColorTemperature,
			Brightness:       it.Brightness,
			Saturation:       it.Saturation,
		})
	}
	return st
}

// FromCanvasState reconstructs a scene from a snapshot. The state is
// validated before any scene is built (validate-then-commit): an unrecognized
// version or an out-of-range field yields a ValidationError and no scene.
// Missing optional fields have already received defaults during decoding.
func FromCanvasState(st CanvasState) (*Scene, error) {
	if err := validateState(st); err != nil {
		return nil, err
	}

	s := NewScene(st.Width, st.Height)
	s.Background = st.Background
	s.Title = st.Title
	s.Description = st.Description
	if !st.CreatedAt.IsZero() {
		s.CreatedAt = st.CreatedAt
	}
	if !st.ModifiedAt.IsZero() {
		s.ModifiedAt = st.ModifiedAt
	}

	canvas := s.CanvasBounds()
	maxSeq := 0
	for i, is := range st.Items {
		id := is.ID
		if id == "" {
			// States saved before item IDs existed: assign fresh ones.
			id = fmt.Sprintf("item-%d", len(st.Items)+i+1)
		}
		if n, ok := itemSeq(id); ok && n > maxSeq {
			maxSeq = n
		}
		bounds := geometry.NewRect(is.PositionX, is.PositionY, is.Width, is.Height)
		// Geometry never raises: items drifting outside the canvas (saved
		// by a larger canvas, say) are clamped back in, keeping the
		// minimum-size invariant.
		bounds = clampItemBounds(bounds, canvas)

		s.items = append(s.items, &PlacedItem{
			ID:               id,
			FurnitureID:      is.FurnitureID,
			Bounds:           bounds,
			ZOrder:           is.ZOrder,
			IsFlipped:        is.IsFlipped,
			ColorTemperature: is.ColorTemperature,
			Brightness:       is.Brightness,
			Saturation:       is.Saturation,
		})
	}
	s.nextID = maxSeq + 1
	return s, nil
}

// MarshalState encodes the snapshot as indented JSON.
func MarshalState(st CanvasState) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// UnmarshalState decodes a snapshot. Decoding errors are ValidationErrors:
// a malformed document is a bad state, not an internal failure.
func UnmarshalState(data []byte) (CanvasState, error) {
	var st CanvasState
	if err := json.Unmarshal(data, &st); err != nil {
		return CanvasState{}, &ValidationError{Reason: err.Error()}
	}
	return st, nil
}

func validateState(st CanvasState) error {
	if st.Version != StateVersion {
		return validationErrorf("version", "unrecognized version %q", st.Version)
	}
	if st.Width < MinItemSize || st.Height < MinItemSize {
		return validationErrorf("canvas", "size %gx%g below minimum %g", st.Width, st.Height, MinItemSize)
	}
	for i, is := range st.Items {
		field := func(name string) string { return fmt.Sprintf("furniture_items[%d].%s", i, name) }
		if is.FurnitureID == "" {
			return validationErrorf(field("furniture_id"), "missing")
		}
		if is.Width < MinItemSize || is.Height < MinItemSize {
			return validationErrorf(field("size"), "%gx%g below minimum %g", is.Width, is.Height, MinItemSize)
		}
		if is.ColorTemperature < MinColorTemperature || is.ColorTemperature > MaxColorTemperature {
			return validationErrorf(field("color_temperature"), "%d outside [%d, %d]",
				is.ColorTemperature, MinColorTemperature, MaxColorTemperature)
		}
		if is.Brightness < MinAdjustPercent || is.Brightness > MaxAdjustPercent {
			return validationErrorf(field("brightness"), "%d outside [%d, %d]",
				is.Brightness, MinAdjustPercent, MaxAdjustPercent)
		}
		if is.Saturation < MinAdjustPercent || is.Saturation > MaxAdjustPercent {
			return validationErrorf(field("saturation"), "%d outside [%d, %d]",
				is.Saturation, MinAdjustPercent, MaxAdjustPercent)
		}
	}
	return nil
}

// itemSeq extracts N from an "item-N" identifier.
func itemSeq(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "item-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
