package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"shopzone/internal/cache"
)

const cacheKey = "gallery:items"

// Published items only, ordered items first. Items that predate the
// published flag count as published.
const itemsQuery = `*[_type == "galleryItem" && (published == true || !defined(published))]{
  _id,
  title,
  description,
  alt,
  order,
  tags,
  "imageUrl": image.asset->url
}`

// Item is one gallery entry from the CMS.
type Item struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Alt         string   `json:"alt,omitempty"`
	Order       *int     `json:"order,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

type queryResponse struct {
	Result []Item `json:"result"`
}

// Client fetches gallery items from a Sanity-compatible query endpoint
// and caches the result between requests.
type Client struct {
	httpClient *http.Client
	queryURL   string
	cache      *cache.Cache
}

// NewClient takes the full query URL of the dataset, e.g.
// https://<project>.api.sanity.io/v2023-10-01/data/query/<dataset>.
func NewClient(queryURL string, c *cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		queryURL:   queryURL,
		cache:      c,
	}
}

// Items returns the published gallery items sorted by display order
// then title. Results are cached; transport errors are returned to the
// caller and never fatal.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	if c.cache != nil {
		if cached, ok := c.cache.GetValue(cacheKey); ok {
			return cached.([]Item), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.queryURL+"?query="+url.QueryEscape(itemsQuery), nil)
	if err != nil {
		return nil, fmt.Errorf("build gallery request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gallery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch gallery: unexpected status %d", resp.StatusCode)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode gallery response: %w", err)
	}

	items := decoded.Result
	sortItems(items)

	if c.cache != nil {
		c.cache.Set(cacheKey, items)
	}
	return items, nil
}

// sortItems orders by the explicit display order when present (lower
// first, unordered items last), then by title.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Order != nil && b.Order != nil && *a.Order != *b.Order:
			return *a.Order < *b.Order
		case a.Order != nil && b.Order == nil:
			return true
		case a.Order == nil && b.Order != nil:
			return false
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// Tags collects the distinct tags across items, sorted, with the "All"
// pseudo-tag first.
func Tags(items []Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.Tags {
			if tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(seen)+1)
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return append([]string{"All"}, tags...)
}

// FilterByTag keeps the items carrying the tag. "All" or the empty
// string keeps everything.
func FilterByTag(items []Item, tag string) []Item {
	if tag == "" || tag == "All" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		for _, candidate := range item.Tags {
			if candidate == tag {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
