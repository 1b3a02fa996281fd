// Package menu keeps the restaurant's menu catalog: category name to an
// ordered list of serialized entries, written back to the document store
// after every change.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/storage"
)

// Menu maps a category name to its entries in insertion order.
type Menu map[string][]models.Record

// Catalog is the in-memory menu synchronized with one document in a store.
// Names are not unique within a category.
type Catalog struct {
	mu       sync.Mutex
	location string
	store    storage.DocumentStore
	logger   *logger.Logger
	menu     Menu
}

// NewCatalog loads the document at location. A missing document yields an
// empty catalog; an unreadable or corrupt one is returned as an error.
func NewCatalog(ctx context.Context, store storage.DocumentStore, location string, log *logger.Logger) (*Catalog, error) {
	c := &Catalog{
		location: location,
		store:    store,
		logger:   log,
	}

	m, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.menu = m

	log.Info("catalog_loaded", "Menu catalog loaded", "startup", map[string]interface{}{
		"location":   location,
		"categories": len(m),
	})
	return c, nil
}

func (c *Catalog) Location() string {
	return c.location
}

// Load reads and decodes the stored document without touching the in-memory menu.
func (c *Catalog) Load(ctx context.Context) (Menu, error) {
	data, err := c.store.Read(ctx, c.location)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Menu{}, nil
		}
		return nil, &StorageError{Op: OpRead, Location: c.location, Err: err}
	}

	var m Menu
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &StorageError{Op: OpDecode, Location: c.location, Err: err}
	}
	if m == nil {
		// the document was JSON null
		m = Menu{}
	}
	return m, nil
}

// Save writes the whole in-memory menu back to the store.
func (c *Catalog) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.encode()
	if err != nil {
		return err
	}
	return c.write(ctx, data)
}

func (c *Catalog) encode() ([]byte, error) {
	data, err := json.MarshalIndent(c.menu, "", "    ")
	if err != nil {
		catalogSaves.WithLabelValues("error").Inc()
		return nil, &StorageError{Op: OpEncode, Location: c.location, Err: err}
	}
	return data, nil
}

func (c *Catalog) write(ctx context.Context, data []byte) error {
	if err := c.store.Write(ctx, c.location, data); err != nil {
		catalogSaves.WithLabelValues("error").Inc()
		c.logger.Error("catalog_save_failed", "Failed to save menu catalog; in-memory catalog now diverges from storage",
			"", err, map[string]interface{}{"location": c.location})
		return &StorageError{Op: OpWrite, Location: c.location, Err: err}
	}

	catalogSaves.WithLabelValues("ok").Inc()
	c.logger.Debug("catalog_saved", "Menu catalog saved", "", map[string]interface{}{
		"location": c.location,
		"bytes":    len(data),
	})
	return nil
}

// commit replaces the entries of category and saves. A menu that cannot be
// encoded is rolled back; a failed write leaves the change applied.
func (c *Catalog) commit(ctx context.Context, category string, items []models.Record) error {
	prev, had := c.menu[category]
	c.menu[category] = items

	data, err := c.encode()
	if err != nil {
		if had {
			c.menu[category] = prev
		} else {
			delete(c.menu, category)
		}
		return err
	}
	return c.write(ctx, data)
}

// AddItem appends the entry to category, creating the category if needed, and saves.
func (c *Catalog) AddItem(ctx context.Context, entry models.MenuEntry, category string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := append(slices.Clone(c.menu[category]), entry.Serialize())
	if err := c.commit(ctx, category, items); err != nil {
		return fmt.Errorf("add %q to %q: %w", entry.Details().Name, category, err)
	}
	catalogMutations.WithLabelValues("add").Inc()
	return nil
}

// UpdateItem merges patch into the first entry of category named itemName
// and saves. It reports false, without saving, when there is no such entry.
// The merge is shallow: keys in patch overwrite or extend, none are removed.
func (c *Catalog) UpdateItem(ctx context.Context, category, itemName string, patch models.Record) (bool, error) {
	_, found, err := c.PatchItem(ctx, category, itemName, patch)
	return found, err
}

// PatchItem is UpdateItem returning a copy of the merged entry.
func (c *Catalog) PatchItem(ctx context.Context, category, itemName string, patch models.Record) (models.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.menu[category]
	if !ok {
		return nil, false, nil
	}

	idx := slices.IndexFunc(items, func(r models.Record) bool { return r != nil && r.Name() == itemName })
	if idx < 0 {
		return nil, false, nil
	}

	merged := items[idx].Clone()
	maps.Copy(merged, patch)
	updated := slices.Clone(items)
	updated[idx] = merged

	if err := c.commit(ctx, category, updated); err != nil {
		var storageErr *StorageError
		if errors.As(err, &storageErr) && storageErr.Op == OpEncode {
			// rolled back
			return nil, true, fmt.Errorf("update %q in %q: %w", itemName, category, err)
		}
		return merged.Clone(), true, fmt.Errorf("update %q in %q: %w", itemName, category, err)
	}
	catalogMutations.WithLabelValues("update").Inc()
	return merged.Clone(), true, nil
}

// DeleteItem removes every entry of category named itemName and saves, even
// when nothing matched. An unknown category is left alone and nothing is saved.
// The category stays present with an empty list when its last entry goes.
func (c *Catalog) DeleteItem(ctx context.Context, category, itemName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.menu[category]
	if !ok {
		return nil
	}

	kept := make([]models.Record, 0, len(items))
	for _, r := range items {
		if r.Name() != itemName {
			kept = append(kept, r)
		}
	}

	if err := c.commit(ctx, category, kept); err != nil {
		return fmt.Errorf("delete %q from %q: %w", itemName, category, err)
	}
	catalogMutations.WithLabelValues("delete").Inc()
	return nil
}

// Categories returns the category names in sorted order.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.menu))
}

// Items returns copies of the entries in category, or nil for an unknown category.
func (c *Catalog) Items(category string) []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.menu[category]
	if !ok {
		return nil
	}
	return cloneRecords(items)
}

// Lookup returns a copy of the first entry in category named itemName.
func (c *Catalog) Lookup(category, itemName string) (models.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.menu[category] {
		if r.Name() == itemName {
			return r.Clone(), true
		}
	}
	return nil, false
}

// Snapshot returns a deep copy of the whole menu.
func (c *Catalog) Snapshot() Menu {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(Menu, len(c.menu))
	for category, items := range c.menu {
		out[category] = cloneRecords(items)
	}
	return out
}

func cloneRecords(items []models.Record) []models.Record {
	out := make([]models.Record, len(items))
	for i, r := range items {
		out[i] = r.Clone()
	}
	return out
}
