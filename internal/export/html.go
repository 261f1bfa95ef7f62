package export

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"
)

const shoppingListTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
img.collage { max-width: 100%; border: 1px solid #ccc; margin-bottom: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
td.price { text-align: right; white-space: nowrap; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .ImageFile}}<img class="collage" src="{{.ImageFile}}" alt="{{.Title}}">{{end}}
<table>
<thead>
<tr><th>Brand</th><th>Item</th><th>Type</th><th>Size</th><th class="price">Price</th></tr>
</thead>
<tbody>
{{range .Entries}}<tr>
<td>{{.Brand}}</td>
<td>{{if .Link}}<a href="{{.Link}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
<td>{{.Type}}</td>
<td>{{.Size}}</td>
<td class="price">{{.PriceText}}</td>
</tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Total ({{len .Entries}} items)</td><td class="price">{{.TotalText}}</td></tr>
</tfoot>
</table>
</body>
</html>
`

var shoppingListTmpl = template.Must(template.New("shoppinglist").Parse(shoppingListTemplate))

type listEntry struct {
	Brand     string
	Name      string
	Type      string
	Size      string
	Link      string
	PriceText string
}

type listData struct {
	Title       string
	Description string
	ImageFile   string
	Entries     []listEntry
	TotalText   string
}

// WriteHTML exports the scene as an HTML page: the composited collage image
// is written next to path and embedded above a shopping list of the
// furniture. Items appear in z-order; placed items with no catalog record are
// skipped.
func (e *Exporter) WriteHTML(ctx context.Context, s *scene.Scene, path string) error {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	imageName := base + ".png"
	if err := e.WritePNG(ctx, s, filepath.Join(filepath.Dir(path), imageName)); err != nil {
		return err
	}

	data := e.buildListData(s)
	data.ImageFile = imageName

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := shoppingListTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render shopping list: %w", err)
	}
	return nil
}

func (e *Exporter) buildListData(s *scene.Scene) listData {
	title := s.Title
	if title == "" {
		title = "Furniture Collage"
	}
	data := listData{Title: title, Description: s.Description}

	total := 0
	for _, it := range s.ItemsByZ() {
		rec := e.catalog.Get(it.FurnitureID)
		if rec == nil {
			e.logger.Warn("skipping item without catalog record",
				"item", it.ID, "furniture", it.FurnitureID)
			continue
		}
		total += rec.Price
		data.Entries = append(data.Entries, listEntry{
			Brand:     rec.Brand,
			Name:      rec.Name,
			Type:      rec.Type,
			Size:      formatSize(rec),
			Link:      rec.Link,
			PriceText: formatPrice(rec.Price),
		})
	}
	data.TotalText = formatPrice(total)
	return data
}

// formatSize renders the physical dimensions present on the record, in mm.
func formatSize(rec *catalog.FurnitureRecord) string {
	var parts []string
	if rec.Width > 0 {
		parts = append(parts, fmt.Sprintf("W %dmm", rec.Width))
	}
	if rec.Depth > 0 {
		parts = append(parts, fmt.Sprintf("D %dmm", rec.Depth))
	}
	if rec.Height > 0 {
		parts = append(parts, fmt.Sprintf("H %dmm", rec.Height))
	}
	return strings.Join(parts, " x ")
}

func formatPrice(price int) string {
	return fmt.Sprintf("$%d", price)
}
