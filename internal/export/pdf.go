package export

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"collage-maker/internal/scene"

	"github.com/go-pdf/fpdf"
)

// WritePDF exports the scene as a PDF document: the composited collage image
// followed by the shopping list table, matching the HTML export's layout.
func (e *Exporter) WritePDF(ctx context.Context, s *scene.Scene, path string) error {
	img, err := e.RenderPNG(ctx, s)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode collage: %w", err)
	}

	data := e.buildListData(s)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, data.Title, "", 1, "L", false, 0, "")
	if data.Description != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, data.Description, "", "L", false)
	}
	pdf.Ln(2)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("collage", opts, &buf)
	pdf.ImageOptions("collage", left, pdf.GetY(), contentW, 0, true, opts, 0, "")
	pdf.Ln(4)

	const priceW = 25.0
	cols := []struct {
		name  string
		width float64
		align string
	}{
		{"Brand", 35, "L"},
		{"Item", 60, "L"},
		{"Type", 25, "L"},
		{"Size", contentW - 120 - priceW, "L"},
		{"Price", priceW, "R"},
	}

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.name, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range data.Entries {
		cells := []string{entry.Brand, entry.Name, entry.Type, entry.Size, entry.PriceText}
		for i, c := range cols {
			link := ""
			if c.name == "Item" {
				link = entry.Link
			}
			pdf.CellFormat(c.width, 6, cells[i], "", 0, c.align, false, 0, link)
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-priceW, 7,
		fmt.Sprintf("Total (%d items)", len(data.Entries)), "T", 0, "L", false, 0, "")
	pdf.CellFormat(priceW, 7, data.TotalText, "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
