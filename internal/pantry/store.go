package pantry

import (
	"context"
	"errors"
	"fmt"

	"mealmind/internal/platform/docstore"
)

// Document fields and collection used for per-user lists.
const (
	UsersCollection   = "users"
	PantryField       = "pantry"
	ShoppingListField = "shoppingList"
)

// Documents is the part of the document store the list store needs.
type Documents interface {
	Get(ctx context.Context, collection, id string) (*docstore.Document, error)
	MergeField(ctx context.Context, collection, id, field string, value any) error
}

// Store keeps a user's pantry and shopping list as fields of their user
// document.
type Store struct {
	docs Documents
}

// NewStore creates a new Store.
func NewStore(docs Documents) *Store {
	return &Store{docs: docs}
}

// Pantry returns the user's pantry. Unknown users have an empty pantry.
func (s *Store) Pantry(ctx context.Context, userID string) ([]Item, error) {
	return s.list(ctx, userID, PantryField)
}

// SavePantry replaces the user's pantry.
func (s *Store) SavePantry(ctx context.Context, userID string, items []Item) error {
	return s.save(ctx, userID, PantryField, items)
}

// ShoppingList returns the user's shopping list.
func (s *Store) ShoppingList(ctx context.Context, userID string) ([]Item, error) {
	return s.list(ctx, userID, ShoppingListField)
}

// SaveShoppingList replaces the user's shopping list.
func (s *Store) SaveShoppingList(ctx context.Context, userID string, items []Item) error {
	return s.save(ctx, userID, ShoppingListField, items)
}

func (s *Store) list(ctx context.Context, userID, field string) ([]Item, error) {
	doc, err := s.docs.Get(ctx, UsersCollection, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", field, err)
	}

	items := []Item{}
	if _, err := doc.DecodeField(field, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, userID, field string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := s.docs.MergeField(ctx, UsersCollection, userID, field, items); err != nil {
		return fmt.Errorf("failed to save %s: %w", field, err)
	}
	return nil
}
