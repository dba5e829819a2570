package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shopzone/internal/models"
	"shopzone/internal/storage"
)

// ItemsPerPage is the fixed page size of the catalog grid.
const ItemsPerPage = 12

const persistTimeout = 5 * time.Second

// ErrProductNotFound is returned by UpdateProduct and DeleteProduct when
// no product with the given id exists.
var ErrProductNotFound = errors.New("product not found")

// Engine owns the product collection and the active filter, sort and
// pagination state. Every collaborator (grid, filter panel, pagination
// controls, admin forms) goes through its methods; none of them compute
// filtering on their own.
//
// All state transitions run under a single mutex, so the engine is safe
// for concurrent callers.
type Engine struct {
	mu       sync.RWMutex
	store    storage.Store
	log      *logrus.Logger
	collator *collate.Collator

	products []models.Product
	filtered []models.Product
	filters  FilterState
	sortMode SortMode
	page     int
}

// NewEngine loads the collection from the store, falling back to the
// seed catalog when the store is empty or holds malformed data. The seed
// is persisted immediately so the store and memory agree from the start.
func NewEngine(store storage.Store, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := &Engine{
		store:    store,
		log:      log,
		collator: collate.New(language.English),
		filters:  DefaultFilterState(),
		sortMode: SortDefault,
		page:     1,
	}

	e.products = e.loadProducts()
	e.rebuildLocked()
	return e
}

func (e *Engine) loadProducts() []models.Product {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, ok, err := e.store.Get(ctx, storage.KeyProducts)
	if err != nil {
		e.log.WithError(err).Warn("could not read stored products, using seed catalog")
	} else if ok {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			e.log.WithError(err).Warn("stored products are malformed, using seed catalog")
		} else {
			return products
		}
	}

	seed := SeedProducts(time.Now().UTC())
	e.persist(seed)
	return seed
}

// persist writes the full collection through to the store. Failures are
// logged and swallowed: the in-memory collection stays authoritative for
// the session even when durability is lost.
func (e *Engine) persist(products []models.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := json.Marshal(products)
	if err != nil {
		e.log.WithError(err).Warn("could not encode products for storage")
		return
	}
	if err := e.store.Put(ctx, storage.KeyProducts, data); err != nil {
		e.log.WithError(err).Warn("could not save products to storage")
	}
}

// UpdateFilters merges the provided fields into the active filter state,
// recomputes the filtered view and resets pagination to the first page.
func (e *Engine) UpdateFilters(update FilterUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if update.Categories != nil {
		e.filters.Categories = append([]string{}, (*update.Categories)...)
	}
	if update.Brands != nil {
		e.filters.Brands = append([]string{}, (*update.Brands)...)
	}
	if update.Ratings != nil {
		e.filters.Ratings = append([]float64{}, (*update.Ratings)...)
	}
	if update.PriceMin != nil {
		e.filters.PriceMin = *update.PriceMin
	}
	if update.PriceMax != nil {
		e.filters.PriceMax = *update.PriceMax
	}
	if update.Search != nil {
		e.filters.Search = *update.Search
	}

	e.rebuildLocked()
	e.page = 1
}

// ClearFilters resets the filter state to its defaults and returns to
// the first page.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters = DefaultFilterState()
	e.rebuildLocked()
	e.page = 1
}

// SetSorting re-sorts the current filtered view. Sorting never changes
// membership, so the current page is kept.
func (e *Engine) SetSorting(mode SortMode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sortMode = mode.normalize()
	e.sortLocked()
}

// SetPage moves to the given 1-based page. It reports whether the page
// was in range; out-of-range requests leave the state unchanged.
func (e *Engine) SetPage(page int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if page < 1 || page > e.totalPagesLocked() {
		return false
	}
	e.page = page
	return true
}

// VisibleProducts returns the slice of the filtered view for the current
// page. An empty filtered view yields an empty slice, never an error.
func (e *Engine) VisibleProducts() []models.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	start := (e.page - 1) * ItemsPerPage
	if start >= len(e.filtered) {
		return []models.Product{}
	}
	end := start + ItemsPerPage
	if end > len(e.filtered) {
		end = len(e.filtered)
	}
	out := make([]models.Product, end-start)
	copy(out, e.filtered[start:end])
	return out
}

// FeaturedProducts returns up to limit featured products from the full
// collection, in insertion order. A non-positive limit uses the default
// of 6.
func (e *Engine) FeaturedProducts(limit int) []models.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if limit <= 0 {
		limit = 6
	}
	out := make([]models.Product, 0, limit)
	for _, p := range e.products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// ProductByID looks up a product in the full collection.
func (e *Engine) ProductByID(id string) (models.Product, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Filters returns a copy of the active filter state.
func (e *Engine) Filters() FilterState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	f := e.filters
	f.Categories = append([]string{}, e.filters.Categories...)
	f.Brands = append([]string{}, e.filters.Brands...)
	f.Ratings = append([]float64{}, e.filters.Ratings...)
	return f
}

// Sorting returns the active sort mode.
func (e *Engine) Sorting() SortMode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortMode
}

// Stats reports the counters consumed by pagination controls.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Stats{
		Total:        len(e.products),
		Filtered:     len(e.filtered),
		CurrentPage:  e.page,
		TotalPages:   e.totalPagesLocked(),
		ItemsPerPage: ItemsPerPage,
	}
}

// AddProduct assigns a fresh id and timestamps, appends the product,
// persists the collection and recomputes the filtered view so the new
// product is visible immediately when it matches the active filters.
func (e *Engine) AddProduct(draft models.ProductDraft) models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	product := models.Product{
		ID:          e.nextIDLocked(),
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Brand:       draft.Brand,
		Price:       draft.Price,
		OldPrice:    draft.OldPrice,
		Rating:      draft.Rating,
		ReviewCount: draft.ReviewCount,
		Features:    draft.Features,
		Image:       draft.Image,
		InStock:     draft.InStock,
		Featured:    draft.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e.products = append(e.products, product)
	e.persist(e.products)
	e.rebuildLocked()
	e.clampPageLocked()
	return product
}

// UpdateProduct merges the non-nil fields of update over the stored
// record, stamps UpdatedAt, persists and recomputes.
func (e *Engine) UpdateProduct(id string, update models.ProductUpdate) (models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfLocked(id)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	p := &e.products[idx]
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Brand != nil {
		p.Brand = *update.Brand
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.OldPrice != nil {
		p.OldPrice = update.OldPrice
	}
	if update.Rating != nil {
		p.Rating = *update.Rating
	}
	if update.ReviewCount != nil {
		p.ReviewCount = *update.ReviewCount
	}
	if update.Features != nil {
		p.Features = *update.Features
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	if update.InStock != nil {
		p.InStock = *update.InStock
	}
	if update.Featured != nil {
		p.Featured = *update.Featured
	}
	p.UpdatedAt = time.Now().UTC()

	e.persist(e.products)
	e.rebuildLocked()
	e.clampPageLocked()
	return *p, nil
}

// DeleteProduct removes the product with the given id. The current page
// is clamped so the view never lands past the last remaining page.
func (e *Engine) DeleteProduct(id string) (models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfLocked(id)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	removed := e.products[idx]
	e.products = append(e.products[:idx], e.products[idx+1:]...)

	e.persist(e.products)
	e.rebuildLocked()
	e.clampPageLocked()
	return removed, nil
}

// --- internal, caller holds e.mu ---

func (e *Engine) indexOfLocked(id string) int {
	for i, p := range e.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked assigns max(existing numeric ids, 0) + 1, stringified.
// Ids are never reused after deletion because the max only grows.
func (e *Engine) nextIDLocked() string {
	maxID := 0
	for _, p := range e.products {
		if n, err := strconv.Atoi(p.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}

func (e *Engine) totalPagesLocked() int {
	return (len(e.filtered) + ItemsPerPage - 1) / ItemsPerPage
}

func (e *Engine) clampPageLocked() {
	if total := e.totalPagesLocked(); e.page > total {
		e.page = total
	}
	if e.page < 1 {
		e.page = 1
	}
}

// rebuildLocked recomputes the filtered view from scratch and re-sorts
// it. At this catalog scale a full scan beats maintaining indices.
func (e *Engine) rebuildLocked() {
	e.filtered = e.filtered[:0]
	for _, p := range e.products {
		if e.matchesLocked(p) {
			e.filtered = append(e.filtered, p)
		}
	}
	e.sortLocked()
}

// matchesLocked applies AND semantics across dimensions and OR semantics
// within the ratings set.
func (e *Engine) matchesLocked(p models.Product) bool {
	if len(e.filters.Categories) > 0 && !containsString(e.filters.Categories, p.Category) {
		return false
	}
	if len(e.filters.Brands) > 0 && !containsString(e.filters.Brands, p.Brand) {
		return false
	}
	if len(e.filters.Ratings) > 0 {
		matched := false
		for _, threshold := range e.filters.Ratings {
			if p.Rating >= threshold {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if p.Price < e.filters.PriceMin || p.Price > e.filters.PriceMax {
		return false
	}
	if e.filters.Search != "" {
		needle := strings.ToLower(e.filters.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

func (e *Engine) sortLocked() {
	items := e.filtered
	switch e.sortMode {
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return e.collator.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return e.collator.CompareString(items[j].Name, items[i].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[j].Price < items[i].Price
		})
	case SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[j].Rating < items[i].Rating
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return numericID(items[j].ID) < numericID(items[i].ID)
		})
	default:
		// Stable partition: featured first, insertion order within each
		// group.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Featured && !items[j].Featured
		})
	}
}

func numericID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
