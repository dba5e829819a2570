package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"shopzone/internal/models"
	"shopzone/internal/storage"
)

const persistTimeout = 5 * time.Second

// Cart holds the shopping cart lines and writes every mutation through
// to the store, same best-effort policy as the catalog engine.
type Cart struct {
	mu    sync.Mutex
	store storage.Store
	log   *logrus.Logger
	items []models.CartItem
}

func New(store storage.Store, log *logrus.Logger) *Cart {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Cart{store: store, log: log}
	c.items = c.load()
	return c
}

func (c *Cart) load() []models.CartItem {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, ok, err := c.store.Get(ctx, storage.KeyCart)
	if err != nil {
		c.log.WithError(err).Warn("could not read stored cart, starting empty")
		return []models.CartItem{}
	}
	if !ok {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		c.log.WithError(err).Warn("stored cart is malformed, starting empty")
		return []models.CartItem{}
	}
	return items
}

func (c *Cart) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := json.Marshal(c.items)
	if err != nil {
		c.log.WithError(err).Warn("could not encode cart for storage")
		return
	}
	if err := c.store.Put(ctx, storage.KeyCart, data); err != nil {
		c.log.WithError(err).Warn("could not save cart to storage")
	}
}

// Add puts an item in the cart, merging quantities when the product is
// already present.
func (c *Cart) Add(item models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			c.persistLocked()
			return
		}
	}
	c.items = append(c.items, item)
	c.persistLocked()
}

// Remove drops the line with the given product id. Removing an absent
// id is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked()
			return
		}
	}
}

// SetQuantity updates a line's quantity; zero or negative removes the
// line. It reports whether the product was in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		c.persistLocked()
		return true
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []models.CartItem{}
	c.persistLocked()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of price * quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
