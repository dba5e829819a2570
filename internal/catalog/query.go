package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names recognized on the products page URL.
const (
	paramSearch     = "search"
	paramCategories = "categories"
	paramBrands     = "brands"
	paramMinPrice   = "minPrice"
	paramMaxPrice   = "maxPrice"
)

// ParseFilterQuery reads the recognized filter parameters into a partial
// update. Absent parameters stay nil so they leave the corresponding
// dimension untouched when the update is applied.
func ParseFilterQuery(values url.Values) FilterUpdate {
	var update FilterUpdate

	if values.Has(paramSearch) {
		search := values.Get(paramSearch)
		update.Search = &search
	}
	if raw := values.Get(paramCategories); raw != "" {
		categories := strings.Split(raw, ",")
		update.Categories = &categories
	}
	if raw := values.Get(paramBrands); raw != "" {
		brands := strings.Split(raw, ",")
		update.Brands = &brands
	}
	if raw := values.Get(paramMinPrice); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			min := float64(n)
			update.PriceMin = &min
		}
	}
	if raw := values.Get(paramMaxPrice); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			max := float64(n)
			update.PriceMax = &max
		}
	}
	return update
}

// EncodeFilterQuery writes the filter state as canonical URL parameters.
// Default-valued price bounds and empty dimensions are omitted to keep
// URLs short and shareable.
func EncodeFilterQuery(f FilterState) url.Values {
	values := url.Values{}

	if f.Search != "" {
		values.Set(paramSearch, f.Search)
	}
	if len(f.Categories) > 0 {
		values.Set(paramCategories, strings.Join(f.Categories, ","))
	}
	if len(f.Brands) > 0 {
		values.Set(paramBrands, strings.Join(f.Brands, ","))
	}
	if f.PriceMin > DefaultPriceMin {
		values.Set(paramMinPrice, strconv.Itoa(int(f.PriceMin)))
	}
	if f.PriceMax < DefaultPriceMax {
		values.Set(paramMaxPrice, strconv.Itoa(int(f.PriceMax)))
	}
	return values
}
