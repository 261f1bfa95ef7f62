// Package catalog provides the furniture catalog: the read-only furniture
// record model and a client for the remote catalog service.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// FurnitureRecord describes one catalog entry. Records are reference data:
// the scene model looks them up by ID and never mutates them.
type FurnitureRecord struct {
	ID            string   `json:"id"`
	Brand         string   `json:"brand"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ImageFilename string   `json:"image_filename"`
	Link          string   `json:"link,omitempty"`
	Price         int      `json:"price"`
	Type          string   `json:"type"`
	Color         string   `json:"color,omitempty"`
	Locations     []string `json:"locations,omitempty"`
	Styles        []string `json:"styles,omitempty"`
	Width         int      `json:"width"`  // Physical width in mm
	Depth         int      `json:"depth"`  // Physical depth in mm
	Height        int      `json:"height"` // Physical height in mm
	SeatHeight    *int     `json:"seat_height,omitempty"`
	Author        string   `json:"author,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// AspectRatio returns the face aspect ratio (width/height) of the furniture,
// or 0 if the physical dimensions are unknown.
func (r *FurnitureRecord) AspectRatio() float64 {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// Catalog is an in-memory collection of furniture records indexed by ID.
type Catalog struct {
	mu      sync.RWMutex
	records map[string]*FurnitureRecord
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		records: make(map[string]*FurnitureRecord),
	}
}

// Replace swaps the catalog contents for the given records.
func (c *Catalog) Replace(records []*FurnitureRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]*FurnitureRecord, len(records))
	for _, r := range records {
		if r != nil && r.ID != "" {
			c.records[r.ID] = r
		}
	}
}

// Get returns the record with the given ID, or nil if unknown.
func (c *Catalog) Get(id string) *FurnitureRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records[id]
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// List returns all records sorted by brand, then name.
func (c *Catalog) List() []*FurnitureRecord {
	c.mu.RLock()
	records := make([]*FurnitureRecord, 0, len(c.records))
	for _, r := range c.records {
		records = append(records, r)
	}
	c.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].Brand != records[j].Brand {
			return records[i].Brand < records[j].Brand
		}
		return records[i].Name < records[j].Name
	})
	return records
}

// Search returns records whose brand, name, or type contains the query,
// case-insensitively. An empty query returns all records.
func (c *Catalog) Search(query string) []*FurnitureRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	all := c.List()
	if query == "" {
		return all
	}
	var out []*FurnitureRecord
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Brand), query) ||
			strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Type), query) {
			out = append(out, r)
		}
	}
	return out
}

// LoadFile loads records from a local JSON file, replacing the contents.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []*FurnitureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.Replace(records)
	return nil
}
