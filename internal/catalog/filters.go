package catalog

// Default inclusive price bounds. URLs omit the bounds at these values
// to stay canonical.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

// FilterState holds every active restriction on the catalog. An empty
// set or empty search string means no restriction on that dimension.
type FilterState struct {
	Categories []string  `json:"categories"`
	Brands     []string  `json:"brands"`
	Ratings    []float64 `json:"ratings"`
	PriceMin   float64   `json:"priceMin"`
	PriceMax   float64   `json:"priceMax"`
	Search     string    `json:"search"`
}

// DefaultFilterState returns the neutral filter: no sets selected, full
// price range, empty search.
func DefaultFilterState() FilterState {
	return FilterState{
		Categories: []string{},
		Brands:     []string{},
		Ratings:    []float64{},
		PriceMin:   DefaultPriceMin,
		PriceMax:   DefaultPriceMax,
	}
}

// FilterUpdate is a partial FilterState. Nil fields keep the current
// value; set fields replace it wholesale.
type FilterUpdate struct {
	Categories *[]string  `json:"categories,omitempty"`
	Brands     *[]string  `json:"brands,omitempty"`
	Ratings    *[]float64 `json:"ratings,omitempty"`
	PriceMin   *float64   `json:"priceMin,omitempty"`
	PriceMax   *float64   `json:"priceMax,omitempty"`
	Search     *string    `json:"search,omitempty"`
}

// SortMode selects the ordering of the filtered view.
type SortMode string

const (
	SortDefault    SortMode = "default"
	SortNameAsc    SortMode = "name-asc"
	SortNameDesc   SortMode = "name-desc"
	SortPriceAsc   SortMode = "price-asc"
	SortPriceDesc  SortMode = "price-desc"
	SortRatingDesc SortMode = "rating-desc"
	SortNewest     SortMode = "newest"
)

// normalize coerces unrecognized modes to the default ordering.
func (m SortMode) normalize() SortMode {
	switch m {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest:
		return m
	default:
		return SortDefault
	}
}

// Stats summarizes the engine state for pagination controls and results
// counters.
type Stats struct {
	Total        int `json:"total"`
	Filtered     int `json:"filtered"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
}
