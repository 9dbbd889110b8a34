package character

import (
	"fmt"

	"github.com/google/uuid"
)

// Item is the inventory footprint of a carried object.
//
// Invariant (after schema validation): Slots in [1,4], Width and Height in
// [1,2], Weight >= 0.
type Item struct {
	ID          string
	Name        string
	Description string // rich text, stored verbatim
	Slots       int
	Width       int
	Height      int
	Weight      float64
}

// Inventory is the ordered item collection owned by one character.
type Inventory struct {
	items []Item
}

// NewInventory returns an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add stores item under a freshly generated ID and returns the stored copy.
//
// Postcondition: the returned Item has a non-empty ID unique within inv.
func (inv *Inventory) Add(item Item) Item {
	item.ID = uuid.New().String()
	inv.items = append(inv.items, item)
	return item
}

// Put stores item keeping its ID, generating one when ID is empty.
//
// Postcondition: returns an error and leaves inv unchanged if the ID is
// malformed or already present.
func (inv *Inventory) Put(item Item) (Item, error) {
	if item.ID == "" {
		return inv.Add(item), nil
	}
	if _, err := uuid.Parse(item.ID); err != nil {
		return Item{}, fmt.Errorf("inventory: malformed item id %q: %w", item.ID, err)
	}
	if _, ok := inv.Get(item.ID); ok {
		return Item{}, fmt.Errorf("inventory: item id %q already present", item.ID)
	}
	inv.items = append(inv.items, item)
	return item, nil
}

// Get returns the item with the given ID.
func (inv *Inventory) Get(id string) (Item, bool) {
	for _, it := range inv.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Remove deletes the item with the given ID and reports whether it existed.
func (inv *Inventory) Remove(id string) bool {
	for i, it := range inv.items {
		if it.ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the stored items in insertion order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of stored items.
func (inv *Inventory) Len() int { return len(inv.items) }

// TotalSlots returns the sum of Slots over all items.
func (inv *Inventory) TotalSlots() int {
	total := 0
	for _, it := range inv.items {
		total += it.Slots
	}
	return total
}

// TotalWeight returns the sum of Weight over all items.
func (inv *Inventory) TotalWeight() float64 {
	total := 0.0
	for _, it := range inv.items {
		total += it.Weight
	}
	return total
}
