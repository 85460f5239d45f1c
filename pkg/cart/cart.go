// Package cart holds the shopping cart kept on the customer's device.
package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
)

// StorageKey is where the cart lives in local storage
const StorageKey = "cart"

// DefaultTaxRate is applied at checkout when no other rate is configured
const DefaultTaxRate = 0.10

// Item is one cart line. Prices are never stored; totals use the current product list.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Product is the part of a catalog product that pricing needs
type Product struct {
	ID            string
	Price         float64
	DiscountPrice *float64
}

// UnitPrice is the discount price when set, otherwise the list price
func (p Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Storage is the key/value store the cart persists into
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Cart is an ordered set of items keyed by product id. It is safe for concurrent use.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// Add adds qty of a product, merging with an existing line. Non-positive quantities are ignored.
func (c *Cart) Add(productID string, qty int) {
	if productID == "" || qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, Item{ProductID: productID, Quantity: qty})
}

// Remove drops a product's line
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity; zero or less removes it
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Item(nil), c.items...)
}

// Count is the total number of units in the cart
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Summary is the priced cart
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Totals prices the cart against products. Unknown products are skipped and
// negative contributions count as zero. Rounding follows the order the server
// uses at checkout: subtotal to cents first, then tax on the rounded subtotal.
func (c *Cart) Totals(products []Product, taxRate float64) Summary {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal float64
	for _, it := range c.Items() {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		subtotal += math.Max(0, p.UnitPrice()*float64(it.Quantity))
	}

	if taxRate < 0 {
		taxRate = 0
	}
	subtotal = RoundCents(subtotal)
	tax := RoundCents(subtotal * taxRate)
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    RoundCents(subtotal + tax),
	}
}

// RoundCents rounds half away from zero to two decimals
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatUSD renders an amount as "$93.48"
func FormatUSD(amount float64) string {
	amount = RoundCents(amount)
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// Save writes the cart as JSON under StorageKey
func (c *Cart) Save(storage Storage) error {
	data, err := json.Marshal(c.Items())
	if err != nil {
		return err
	}
	return storage.Set(StorageKey, string(data))
}

// Load reads the cart from storage. A missing or unreadable entry yields an empty cart.
func Load(storage Storage) *Cart {
	c := New()
	raw, ok := storage.Get(StorageKey)
	if !ok || raw == "" {
		return c
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return c
	}
	for _, it := range items {
		c.Add(it.ProductID, it.Quantity)
	}
	return c
}
