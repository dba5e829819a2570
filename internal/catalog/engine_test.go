package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopzone/internal/models"
	"shopzone/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewEngine(store, log), store
}

func visibleIDs(e *Engine) []string {
	products := e.VisibleProducts()
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestSeedCatalogLoads(t *testing.T) {
	engine, store := newTestEngine(t)

	stats := engine.Stats()
	assert.Equal(t, 16, stats.Total)
	assert.Equal(t, 16, stats.Filtered)
	assert.Equal(t, 1, stats.CurrentPage)
	assert.Equal(t, 2, stats.TotalPages)
	assert.Equal(t, 12, stats.ItemsPerPage)

	// Seeding writes through immediately so store and memory agree.
	data, ok, err := store.Get(context.Background(), storage.KeyProducts)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []models.Product
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 16)
}

func TestMalformedStoredDataFallsBackToSeed(t *testing.T) {
	store := storage.NewMemStore()
	require.NoError(t, store.Put(context.Background(), storage.KeyProducts, []byte("{not json")))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	engine := NewEngine(store, log)

	assert.Equal(t, 16, engine.Stats().Total)
}

func TestExistingCollectionWinsOverSeed(t *testing.T) {
	store := storage.NewMemStore()
	stored := []models.Product{{ID: "42", Name: "Lone Product", Price: 5, InStock: true}}
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), storage.KeyProducts, data))

	engine := NewEngine(store, nil)

	assert.Equal(t, 1, engine.Stats().Total)
	p, ok := engine.ProductByID("42")
	require.True(t, ok)
	assert.Equal(t, "Lone Product", p.Name)
}

func TestFilterByPriceRangeInclusive(t *testing.T) {
	engine, _ := newTestEngine(t)

	min, max := 100.0, 200.0
	engine.UpdateFilters(FilterUpdate{PriceMin: &min, PriceMax: &max})

	for _, p := range engine.VisibleProducts() {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}

	ids := visibleIDs(engine)
	// 199.99 sits exactly inside the inclusive upper bound.
	assert.Contains(t, ids, "2")
	// 299.99 is out of range.
	assert.NotContains(t, ids, "1")
	assert.ElementsMatch(t, []string{"2", "3", "11", "13"}, ids)
}

func TestFilterBySearchIsCaseInsensitive(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, query := range []string{"shoes", "SHOES", "ShOeS"} {
		engine.UpdateFilters(FilterUpdate{Search: &query})
		products := engine.VisibleProducts()
		require.Len(t, products, 1, "query %q", query)
		assert.Equal(t, "Professional Running Shoes", products[0].Name)
	}
}

func TestSearchMatchesDescriptionToo(t *testing.T) {
	engine, _ := newTestEngine(t)

	query := "ceramic"
	engine.UpdateFilters(FilterUpdate{Search: &query})

	products := engine.VisibleProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "Indoor Plant Pot Set", products[0].Name)
}

func TestFilterDimensionsCombineWithAnd(t *testing.T) {
	engine, _ := newTestEngine(t)

	categories := []string{"electronics"}
	brands := []string{"samsung"}
	engine.UpdateFilters(FilterUpdate{Categories: &categories, Brands: &brands})

	products := engine.VisibleProducts()
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "electronics", p.Category)
		assert.Equal(t, "samsung", p.Brand)
	}
	assert.Equal(t, 3, engine.Stats().Filtered)
}

func TestRatingThresholdsCombineWithOr(t *testing.T) {
	engine, _ := newTestEngine(t)

	// 4.9 alone matches nothing; adding 4.5 lets anything rated >= 4.5
	// through, OR semantics across the selected thresholds.
	ratings := []float64{4.9}
	engine.UpdateFilters(FilterUpdate{Ratings: &ratings})
	assert.Equal(t, 0, engine.Stats().Filtered)

	ratings = []float64{4.9, 4.5}
	engine.UpdateFilters(FilterUpdate{Ratings: &ratings})
	for _, p := range engine.VisibleProducts() {
		assert.GreaterOrEqual(t, p.Rating, 4.5)
	}
	assert.Equal(t, 5, engine.Stats().Filtered)
}

func TestUpdateFiltersResetsPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.True(t, engine.SetPage(2))
	categories := []string{"electronics", "fashion", "home", "sports"}
	engine.UpdateFilters(FilterUpdate{Categories: &categories})

	assert.Equal(t, 1, engine.Stats().CurrentPage)
}

func TestSetSortingKeepsPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.True(t, engine.SetPage(2))
	engine.SetSorting(SortPriceAsc)
	assert.Equal(t, 2, engine.Stats().CurrentPage)
}

func TestSetPageRefusesOutOfRange(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.False(t, engine.SetPage(0))
	assert.False(t, engine.SetPage(-1))
	assert.False(t, engine.SetPage(3))
	assert.Equal(t, 1, engine.Stats().CurrentPage)

	assert.True(t, engine.SetPage(2))
	assert.Equal(t, 2, engine.Stats().CurrentPage)
	assert.Len(t, engine.VisibleProducts(), 4)
}

func TestDefaultSortPartitionsFeaturedFirst(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.SetSorting(SortDefault)
	require.True(t, engine.SetPage(1))
	first := engine.VisibleProducts()

	// Featured block first, insertion order preserved inside each group.
	assert.Equal(t, []string{"1", "2", "3", "5", "11"}, visibleIDs(engine)[:5])
	for i, p := range first {
		if i < 5 {
			assert.True(t, p.Featured, "position %d", i)
		} else {
			assert.False(t, p.Featured, "position %d", i)
		}
	}
	assert.Equal(t, []string{"4", "6", "7", "8", "9", "10", "12"}, visibleIDs(engine)[5:])
}

func TestUnknownSortModeBehavesAsDefault(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.SetSorting(SortMode("price-sideways"))
	assert.Equal(t, SortDefault, engine.Sorting())
	assert.Equal(t, []string{"1", "2", "3", "5", "11"}, visibleIDs(engine)[:5])
}

func TestSortModes(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.SetSorting(SortPriceAsc)
	products := engine.VisibleProducts()
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}

	engine.SetSorting(SortPriceDesc)
	products = engine.VisibleProducts()
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Price, products[i].Price)
	}

	engine.SetSorting(SortRatingDesc)
	products = engine.VisibleProducts()
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Rating, products[i].Rating)
	}

	engine.SetSorting(SortNameAsc)
	products = engine.VisibleProducts()
	assert.Equal(t, "Bluetooth Speaker", products[0].Name)

	engine.SetSorting(SortNewest)
	assert.Equal(t, []string{"16", "15", "14", "13", "12", "11", "10", "9", "8", "7", "6", "5"}, visibleIDs(engine))
}

func TestSortPriceAscIsStableOnTies(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.SetSorting(SortPriceAsc)
	var tied []string
	for _, p := range engine.VisibleProducts() {
		if p.Price == 79.99 {
			tied = append(tied, p.ID)
		}
	}
	// 9 and 12 share a price and must keep insertion order.
	assert.Equal(t, []string{"9", "12"}, tied)
}

func TestFeaturedProducts(t *testing.T) {
	engine, _ := newTestEngine(t)

	featured := engine.FeaturedProducts(6)
	require.Len(t, featured, 5)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}

	assert.Len(t, engine.FeaturedProducts(2), 2)
	// Non-positive limit falls back to the default of 6.
	assert.Len(t, engine.FeaturedProducts(0), 5)
}

func TestClearFiltersIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)

	search := "shoes"
	min := 50.0
	engine.UpdateFilters(FilterUpdate{Search: &search, PriceMin: &min})

	engine.ClearFilters()
	once := engine.Filters()
	engine.ClearFilters()
	twice := engine.Filters()

	assert.Equal(t, once, twice)
	assert.Equal(t, DefaultFilterState(), twice)
	assert.Equal(t, 16, engine.Stats().Filtered)
}

func TestAddProduct(t *testing.T) {
	engine, store := newTestEngine(t)

	draft := models.ProductDraft{
		Name:        "Trail Hiking Boots",
		Description: "Rugged boots for mountain trails.",
		Category:    "sports",
		Brand:       "adidas",
		Price:       119.99,
		Rating:      4.8,
		ReviewCount: 12,
		Features:    []string{"Waterproof", "Ankle Support"},
		InStock:     true,
		Featured:    true,
	}
	created := engine.AddProduct(draft)

	// Fresh monotonic id plus both timestamps.
	assert.Equal(t, "17", created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, ok := engine.ProductByID("17")
	require.True(t, ok)
	assert.Equal(t, created, fetched)
	assert.Equal(t, draft.Name, fetched.Name)
	assert.Equal(t, draft.Features, fetched.Features)

	// Write-through happened before AddProduct returned.
	data, ok, err := store.Get(context.Background(), storage.KeyProducts)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []models.Product
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 17)
}

func TestAddProductVisibleWhenMatchingFilters(t *testing.T) {
	engine, _ := newTestEngine(t)

	search := "violin"
	engine.UpdateFilters(FilterUpdate{Search: &search})
	assert.Equal(t, 0, engine.Stats().Filtered)

	engine.AddProduct(models.ProductDraft{
		Name:     "Student Violin",
		Category: "music",
		Price:    249.99,
		InStock:  true,
	})

	products := engine.VisibleProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "Student Violin", products[0].Name)
}

func TestIDAssignmentIsMaxPlusOne(t *testing.T) {
	engine, _ := newTestEngine(t)

	created := engine.AddProduct(models.ProductDraft{Name: "Ephemeral", Category: "home", Price: 1})
	require.Equal(t, "17", created.ID)

	// Deleting a middle product never frees its id for reuse: the max
	// of the live collection keeps the ceiling.
	_, err := engine.DeleteProduct("9")
	require.NoError(t, err)
	next := engine.AddProduct(models.ProductDraft{Name: "Next", Category: "home", Price: 1})
	assert.Equal(t, "18", next.ID)
}

func TestUpdateProduct(t *testing.T) {
	engine, _ := newTestEngine(t)

	before, ok := engine.ProductByID("4")
	require.True(t, ok)

	name := "Organic Bamboo T-Shirt"
	price := 34.99
	updated, err := engine.UpdateProduct("4", models.ProductUpdate{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, before.Category, updated.Category)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt) || updated.UpdatedAt.Equal(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestUpdateProductNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	name := "Ghost"
	_, err := engine.UpdateProduct("999", models.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 16, engine.Stats().Total)
}

func TestDeleteProduct(t *testing.T) {
	engine, _ := newTestEngine(t)

	removed, err := engine.DeleteProduct("7")
	require.NoError(t, err)
	assert.Equal(t, "Yoga Exercise Mat", removed.Name)

	_, ok := engine.ProductByID("7")
	assert.False(t, ok)
	assert.Equal(t, 15, engine.Stats().Total)
}

func TestDeleteProductNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.DeleteProduct("999")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 16, engine.Stats().Total)
}

func TestDeleteClampsPageWhenLastPageEmpties(t *testing.T) {
	engine, _ := newTestEngine(t)

	require.True(t, engine.SetPage(2))
	require.Len(t, engine.VisibleProducts(), 4)

	// Empty out the final page one deletion at a time. The view must
	// never show an empty page while earlier pages exist.
	for _, id := range []string{"13", "14", "15", "16"} {
		_, err := engine.DeleteProduct(id)
		require.NoError(t, err)
		assert.NotEmpty(t, engine.VisibleProducts())
	}

	stats := engine.Stats()
	assert.Equal(t, 1, stats.TotalPages)
	assert.Equal(t, 1, stats.CurrentPage)
	assert.Len(t, engine.VisibleProducts(), 12)
}

type failingStore struct {
	*storage.MemStore
	failPuts bool
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failPuts {
		return errors.New("quota exceeded")
	}
	return s.MemStore.Put(ctx, key, value)
}

func TestPersistenceFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := &failingStore{MemStore: storage.NewMemStore()}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	engine := NewEngine(store, log)

	store.failPuts = true
	created := engine.AddProduct(models.ProductDraft{Name: "Volatile", Category: "home", Price: 9.99})

	// The mutation survives in memory even though the write was refused.
	_, ok := engine.ProductByID(created.ID)
	assert.True(t, ok)
	assert.Equal(t, 17, engine.Stats().Total)
}

func TestVisibleProductsEmptyWhenNothingMatches(t *testing.T) {
	engine, _ := newTestEngine(t)

	search := "no such product anywhere"
	engine.UpdateFilters(FilterUpdate{Search: &search})

	assert.Empty(t, engine.VisibleProducts())
	stats := engine.Stats()
	assert.Equal(t, 0, stats.Filtered)
	assert.Equal(t, 0, stats.TotalPages)
}

func TestCategoryIcon(t *testing.T) {
	assert.Equal(t, "laptop", CategoryIcon("electronics"))
	assert.Equal(t, "tshirt", CategoryIcon("fashion"))
	assert.Equal(t, "box", CategoryIcon("garden"))
}
