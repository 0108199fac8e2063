// Package catalog pairs the in-memory plant index with the external plant table. Reads are
// served from the index; insert and delete go to the table first and patch the index only after
// the table acknowledged the change.
package catalog

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"sync"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/avl"
	"github.com/herbverse/plantdb/cel"
)

// Order selects the direction of List.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseOrder maps "asc"/"desc" (any case, blank means asc) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, plantdb.NewError(plantdb.InvalidRecord, fmt.Errorf("unknown order %q, want asc or desc", s), s)
}

// Options tunes a Catalog.
type Options struct {
	// NoLoadRetry makes Load give up after the first failed snapshot read.
	NoLoadRetry bool
}

// SearchResult is the outcome of a key search.
type SearchResult struct {
	// Entry is nil on a miss.
	Entry *plantdb.Entry `json:"entry"`
	// Comparisons is the number of nodes visited, absent children included.
	Comparisons int `json:"comparisons"`
}

// Stats summarizes the index.
type Stats struct {
	Total int `json:"total"`
	// Height counts levels: 0 for an empty index, 1 for a single plant.
	Height          int `json:"height"`
	LastComparisons int `json:"last_comparisons"`
}

// Catalog is safe for concurrent use.
type Catalog struct {
	store plantdb.PlantStore
	opts  Options
	tree  *avl.Tree
	mux   sync.RWMutex
}

// New returns an empty catalog over store. Call Load to fill the index.
func New(store plantdb.PlantStore, opts Options) (*Catalog, error) {
	if store == nil {
		return nil, fmt.Errorf("store parameter can't be nil")
	}
	return &Catalog{
		store: store,
		opts:  opts,
		tree:  avl.New(),
	}, nil
}

// Load reads the store's snapshot and rebuilds the index from it. On failure the index keeps
// its previous contents. Returns the number of indexed plants.
func (c *Catalog) Load(ctx context.Context) (int, error) {
	var records []*plantdb.PlantRecord
	load := func(ctx context.Context) error {
		r, err := c.store.LoadSnapshot(ctx)
		if err != nil {
			log.Debug("plant snapshot read failed", "error", err)
			return err
		}
		records = r
		return nil
	}
	var err error
	if c.opts.NoLoadRetry {
		err = load(ctx)
	} else {
		err = plantdb.Retry(ctx, func(ctx context.Context) error {
			return plantdb.RetryableError(load(ctx))
		}, nil)
	}
	if err != nil {
		return 0, plantdb.NewError(plantdb.StoreFailure, fmt.Errorf("loading plant snapshot failed: %w", err), nil)
	}

	valid := make([]*plantdb.PlantRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			log.Warn("skipping empty plant row")
			continue
		}
		if err := rec.Validate(); err != nil {
			log.Warn("skipping plant without common name", "id", rec.ID.String())
			continue
		}
		valid = append(valid, rec)
	}

	c.mux.Lock()
	defer c.mux.Unlock()
	n := c.tree.Rebuild(valid)
	if dropped := len(valid) - n; dropped > 0 {
		log.Warn("dropped plants with duplicate common names", "count", dropped)
	}
	log.Info("plant index loaded", "plants", n, "height", c.tree.Height()+1)
	return n, nil
}

// List returns every plant in the given order.
func (c *Catalog) List(order Order) []plantdb.Entry {
	c.mux.RLock()
	defer c.mux.RUnlock()
	if order == Descending {
		return c.tree.Descending()
	}
	return c.tree.Ascending()
}

// Records returns the indexed records in ascending order.
func (c *Catalog) Records() []*plantdb.PlantRecord {
	entries := c.List(Ascending)
	r := make([]*plantdb.PlantRecord, len(entries))
	for i := range entries {
		r[i] = entries[i].Value
	}
	return r
}

// Get returns the plant whose common name equals name, ignoring case.
func (c *Catalog) Get(name string) (*plantdb.PlantRecord, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.tree.Get(name)
}

// Search runs the index's key search for query.
func (c *Catalog) Search(query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, plantdb.NewError(plantdb.EmptyQuery, fmt.Errorf("please enter a search term"), nil)
	}
	// Find resets and updates the tree's comparison counter.
	c.mux.Lock()
	defer c.mux.Unlock()
	rec, ok := c.tree.Find(query)
	r := SearchResult{Comparisons: c.tree.Comparisons()}
	if ok {
		r.Entry = &plantdb.Entry{Key: rec.CommonName, Value: rec}
	}
	log.Debug("plant key search", "query", query, "found", ok, "comparisons", r.Comparisons)
	return r, nil
}

// SearchAll returns every plant with a text or list field containing needle, ignoring case.
func (c *Catalog) SearchAll(needle string) ([]plantdb.Entry, error) {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return nil, plantdb.NewError(plantdb.EmptyQuery, fmt.Errorf("please enter a search term"), nil)
	}
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.tree.SubstringSearch(needle), nil
}

// Filter returns the plants, in ascending order, for which the CEL expression is true.
func (c *Catalog) Filter(expression string) ([]plantdb.Entry, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, plantdb.NewError(plantdb.InvalidFilter, fmt.Errorf("filter expression can't be empty"), nil)
	}
	ev, err := cel.NewEvaluator("filter", expression)
	if err != nil {
		return nil, plantdb.NewError(plantdb.InvalidFilter, err, expression)
	}

	c.mux.RLock()
	defer c.mux.RUnlock()
	var evalErr error
	r := c.tree.Where(func(rec *plantdb.PlantRecord) bool {
		if evalErr != nil {
			return false
		}
		ok, err := ev.EvaluateRecord(rec)
		if err != nil {
			evalErr = fmt.Errorf("plant %q: %w", rec.CommonName, err)
			return false
		}
		return ok
	})
	if evalErr != nil {
		return nil, plantdb.NewError(plantdb.InvalidFilter, evalErr, expression)
	}
	return r, nil
}

// Insert adds a new plant. The caller must be an admin. The record is normalized, validated and
// checked for a duplicate common or botanical name, then written to the store; the index is
// updated only if the store accepted it.
func (c *Catalog) Insert(ctx context.Context, role Role, rec *plantdb.PlantRecord) (avl.InsertResult, error) {
	if err := requireAdmin(role, "insert"); err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, plantdb.NewError(plantdb.InvalidRecord, fmt.Errorf("plant record is nil"), nil)
	}
	rec.Normalize()
	if err := rec.ValidateForInsert(); err != nil {
		return 0, err
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	if c.tree.Contains(rec.CommonName) {
		log.Debug("rejected duplicate common name", "common_name", rec.CommonName)
		return avl.DuplicateIgnored, plantdb.NewError(plantdb.DuplicateKey,
			fmt.Errorf("a plant with this common name already exists"), rec.CommonName)
	}
	if dup := c.tree.Where(func(r *plantdb.PlantRecord) bool {
		return strings.EqualFold(r.BotanicalName, rec.BotanicalName)
	}); len(dup) > 0 {
		log.Debug("rejected duplicate botanical name", "botanical_name", rec.BotanicalName)
		return avl.DuplicateIgnored, plantdb.NewError(plantdb.DuplicateKey,
			fmt.Errorf("a plant with this botanical name already exists"), rec.BotanicalName)
	}

	if rec.ID.IsNil() {
		rec.ID = plantdb.NewUUID()
	}
	if err := c.store.Insert(ctx, rec); err != nil {
		log.Warn("store rejected plant insert", "common_name", rec.CommonName, "error", err)
		return 0, plantdb.NewError(plantdb.StoreFailure, fmt.Errorf("inserting plant failed: %w", err), rec.CommonName)
	}
	r := c.tree.Insert(rec)
	log.Info("plant inserted", "common_name", rec.CommonName, "id", rec.ID.String())
	return r, nil
}

// Delete removes the plant whose common name equals commonName, ignoring case. The caller must be
// an admin. A missing plant yields avl.NotFound without touching the store.
func (c *Catalog) Delete(ctx context.Context, role Role, commonName string) (avl.DeleteResult, error) {
	if err := requireAdmin(role, "delete"); err != nil {
		return 0, err
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	rec, ok := c.tree.Get(commonName)
	if !ok {
		return avl.NotFound, nil
	}
	if rec.ID.IsNil() {
		return 0, plantdb.NewError(plantdb.InvalidRecord, fmt.Errorf("plant has no id in the store"), rec.CommonName)
	}
	if err := c.store.Delete(ctx, rec.ID); err != nil {
		log.Warn("store rejected plant delete", "common_name", rec.CommonName, "error", err)
		return 0, plantdb.NewError(plantdb.StoreFailure, fmt.Errorf("deleting plant failed: %w", err), rec.CommonName)
	}
	r := c.tree.Delete(rec.CommonName)
	log.Info("plant deleted", "common_name", rec.CommonName, "id", rec.ID.String())
	return r, nil
}

// Stats returns the index size, its number of levels and the last key search's comparisons.
func (c *Catalog) Stats() Stats {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return Stats{
		Total:           c.tree.Len(),
		Height:          c.tree.Height() + 1,
		LastComparisons: c.tree.Comparisons(),
	}
}
