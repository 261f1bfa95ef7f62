package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*FurnitureRecord {
	return []*FurnitureRecord{
		{ID: "c1", Brand: "Vitra", Name: "Eames Chair", Type: "chair", Width: 600, Height: 800},
		{ID: "t1", Brand: "Artek", Name: "Table 90A", Type: "table", Width: 900, Height: 720},
		{ID: "s1", Brand: "Artek", Name: "Stool 60", Type: "stool", Width: 380, Height: 440},
	}
}

func TestCatalogListSorted(t *testing.T) {
	c := NewCatalog()
	c.Replace(sampleRecords())

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Stool 60", list[0].Name)
	assert.Equal(t, "Table 90A", list[1].Name)
	assert.Equal(t, "Eames Chair", list[2].Name)
}

func TestCatalogGetAndReplace(t *testing.T) {
	c := NewCatalog()
	c.Replace(sampleRecords())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "Vitra", c.Get("c1").Brand)
	assert.Nil(t, c.Get("missing"))

	c.Replace(nil)
	assert.Equal(t, 0, c.Len())
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()
	c.Replace(sampleRecords())

	assert.Len(t, c.Search("artek"), 2)
	assert.Len(t, c.Search("CHAIR"), 1)
	assert.Len(t, c.Search(""), 3)
	assert.Empty(t, c.Search("sofa"))
}

func TestAspectRatio(t *testing.T) {
	r := &FurnitureRecord{Width: 600, Height: 300}
	assert.InDelta(t, 2.0, r.AspectRatio(), 1e-9)
	assert.Zero(t, (&FurnitureRecord{}).AspectRatio())
	var nilRec *FurnitureRecord
	assert.Zero(t, nilRec.AspectRatio())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id": "c1", "brand": "Vitra", "name": "Eames Chair", "type": "chair",
		"image_filename": "c1.png", "price": 1200, "width": 600, "depth": 500, "height": 800}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c := NewCatalog()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1200, c.Get("c1").Price)

	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/furniture", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "c1", "brand": "Vitra", "name": "Eames Chair"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Vitra", records[0].Brand)
}

func TestClientFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").Fetch(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestClientDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/public/furniture-images/c1.png", r.URL.Path)
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL, "k").DownloadImage(context.Background(), "c1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}
