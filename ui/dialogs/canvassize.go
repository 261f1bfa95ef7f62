// Package dialogs provides the application's modal dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"collage-maker/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowCanvasSize opens the canvas size dialog pre-filled with the current
// dimensions and calls apply with the validated new size.
func ShowCanvasSize(parent fyne.Window, width, height float64, apply func(w, h float64) error) {
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(int(width)))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.Itoa(int(height)))

	items := []*widget.FormItem{
		widget.NewFormItem("Width (px)", widthEntry),
		widget.NewFormItem("Height (px)", heightEntry),
	}

	dialog.ShowForm("Canvas Size", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		w, errW := strconv.ParseFloat(widthEntry.Text, 64)
		h, errH := strconv.ParseFloat(heightEntry.Text, 64)
		if errW != nil || errH != nil {
			dialog.ShowError(fmt.Errorf("canvas size must be numeric"), parent)
			return
		}
		if w < scene.MinItemSize || h < scene.MinItemSize {
			dialog.ShowError(fmt.Errorf("canvas must be at least %gx%g",
				scene.MinItemSize, scene.MinItemSize), parent)
			return
		}
		if err := apply(w, h); err != nil {
			dialog.ShowError(err, parent)
		}
	}, parent)
}
