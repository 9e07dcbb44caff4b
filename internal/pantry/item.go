package pantry

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidItem is returned when a new item lacks a name or a quantity.
	ErrInvalidItem = errors.New("item name and quantity are required")
	// ErrItemNotFound is returned when removing an id that is not in the list.
	ErrItemNotFound = errors.New("item not found")
)

// Item is one pantry or shopping list entry. Name and quantity are free text.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// NewItem builds an item from user input, trimming both fields.
func NewItem(name, quantity string) (Item, error) {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	if name == "" || quantity == "" {
		return Item{}, ErrInvalidItem
	}
	return Item{ID: uuid.NewString(), Name: name, Quantity: quantity}, nil
}

// IsGhost reports whether the item has a blank name.
func (i Item) IsGhost() bool {
	return strings.TrimSpace(i.Name) == ""
}

// Visible drops ghost items and keeps the order of the rest.
func Visible(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.IsGhost() {
			out = append(out, item)
		}
	}
	return out
}

// Remove returns items without the entry carrying id.
func Remove(items []Item, id string) ([]Item, error) {
	for i, item := range items {
		if item.ID == id {
			out := make([]Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), nil
		}
	}
	return nil, ErrItemNotFound
}
