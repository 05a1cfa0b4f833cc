// Package cart holds the shopper's cart state: line items keyed by
// (product, size, color), a UI visibility flag and a selection subset used
// for partial checkout. The store performs no I/O.
package cart

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
)

// Store is the state container for a single shopper session. Commands are
// applied one at a time; each is fully committed before the next runs.
type Store struct {
	mu       sync.Mutex
	lines    []domain.LineItem
	selected map[domain.LineKey]struct{}
	open     bool
}

// New creates an empty, closed cart
func New() *Store {
	return &Store{
		selected: make(map[domain.LineKey]struct{}),
	}
}

// AddItem adds one unit of the product variant. An existing line with the
// same key is incremented; otherwise a new line is created with quantity 1.
func (s *Store) AddItem(product domain.Product, size, color string) domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(product, size, color)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown keys are ignored.
func (s *Store) UpdateQuantity(key domain.LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setQuantity(key, quantity)
}

// RemoveItem deletes the line if present
func (s *Store) RemoveItem(key domain.LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
}

// ClearCart removes every line and empties the selection
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLines()
}

// Open marks the cart surface as visible
func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// Close marks the cart surface as hidden
func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// IsOpen reports the visibility flag
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// ToggleSelection flips the key's membership in the selection set. Only keys
// of existing lines can be selected; others are ignored.
func (s *Store) ToggleSelection(key domain.LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggle(key)
}

// Command is a cart mutation run by Apply. It reports whether it touched an
// existing line or the cart's state.
type Command func(s *Store) bool

// Add is the Apply form of AddItem
func Add(product domain.Product, size, color string) Command {
	return func(s *Store) bool {
		s.add(product, size, color)
		return true
	}
}

// SetQuantity is the Apply form of UpdateQuantity. It reports false for
// unknown keys.
func SetQuantity(key domain.LineKey, quantity int) Command {
	return func(s *Store) bool { return s.setQuantity(key, quantity) }
}

// Remove is the Apply form of RemoveItem. It reports false for unknown keys.
func Remove(key domain.LineKey) Command {
	return func(s *Store) bool { return s.remove(key) }
}

// Clear is the Apply form of ClearCart. It reports false for an empty cart.
func Clear() Command {
	return func(s *Store) bool { return s.clearLines() }
}

// SetOpen is the Apply form of Open and Close
func SetOpen(open bool) Command {
	return func(s *Store) bool {
		changed := s.open != open
		s.open = open
		return changed
	}
}

// Toggle is the Apply form of ToggleSelection. It reports false for keys
// that are not in the cart.
func Toggle(key domain.LineKey) Command {
	return func(s *Store) bool { return s.toggle(key) }
}

// Apply runs cmd and captures the resulting snapshot under the same lock, so
// the snapshot reflects exactly this command and the ones before it.
func (s *Store) Apply(cmd Command) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := cmd(s)
	return s.snapshot(), changed
}

// IsSelected reports whether the key is in the selection set
func (s *Store) IsSelected(key domain.LineKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[key]
	return ok
}

// Items returns a copy of the lines in insertion order
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Len returns the number of distinct lines
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalItems is the sum of quantities across all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, _ := s.sum(nil)
	return count
}

// TotalPrice is the sum of price × quantity across all lines
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, total := s.sum(nil)
	return total
}

// SelectedCount is TotalItems restricted to selected lines
func (s *Store) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, _ := s.sum(s.isSelected)
	return count
}

// SelectedTotal is TotalPrice restricted to selected lines
func (s *Store) SelectedTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, total := s.sum(s.isSelected)
	return total
}

// LineSubtotal returns price × quantity for one line, and false when the key
// is not in the cart
func (s *Store) LineSubtotal(key domain.LineKey) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return decimal.Zero, false
	}
	return subtotal(s.lines[i]), true
}

// Snapshot captures lines and derived totals under a single lock
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	lines := make([]Line, len(s.lines))
	for i, item := range s.lines {
		lines[i] = Line{
			LineItem: item,
			Subtotal: subtotal(item),
			Selected: s.isSelected(item.LineKey),
		}
	}

	totalItems, totalPrice := s.sum(nil)
	selectedCount, selectedTotal := s.sum(s.isSelected)

	return Snapshot{
		Lines:         lines,
		IsOpen:        s.open,
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
		SelectedCount: selectedCount,
		SelectedTotal: selectedTotal,
	}
}

func (s *Store) indexOf(key domain.LineKey) int {
	return slices.IndexFunc(s.lines, func(l domain.LineItem) bool {
		return l.LineKey == key
	})
}

func (s *Store) add(product domain.Product, size, color string) domain.LineItem {
	key := domain.LineKey{ProductID: product.ID, Size: size, Color: color}
	if i := s.indexOf(key); i >= 0 {
		s.lines[i].Quantity++
		return s.lines[i]
	}

	line := domain.LineItem{
		LineKey:  key,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Quantity: 1,
	}
	s.lines = append(s.lines, line)
	return line
}

func (s *Store) setQuantity(key domain.LineKey, quantity int) bool {
	if quantity <= 0 {
		return s.remove(key)
	}
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = quantity
	return true
}

// remove drops the line and its selection entry
func (s *Store) remove(key domain.LineKey) bool {
	delete(s.selected, key)
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	return true
}

func (s *Store) clearLines() bool {
	had := len(s.lines) > 0
	s.lines = nil
	clear(s.selected)
	return had
}

func (s *Store) toggle(key domain.LineKey) bool {
	if _, ok := s.selected[key]; ok {
		delete(s.selected, key)
		return true
	}
	if s.indexOf(key) < 0 {
		return false
	}
	s.selected[key] = struct{}{}
	return true
}

func (s *Store) isSelected(key domain.LineKey) bool {
	_, ok := s.selected[key]
	return ok
}

// sum totals quantity and price over lines accepted by keep (all lines when nil)
func (s *Store) sum(keep func(domain.LineKey) bool) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, line := range s.lines {
		if keep != nil && !keep(line.LineKey) {
			continue
		}
		count += line.Quantity
		total = total.Add(subtotal(line))
	}
	return count, total
}

func subtotal(line domain.LineItem) decimal.Decimal {
	return decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
}
