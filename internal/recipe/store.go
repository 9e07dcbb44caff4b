package recipe

import (
	"context"
	"errors"
	"fmt"

	"mealmind/internal/platform/docstore"
)

// Collection is the document collection holding the recipe catalog.
const Collection = "Recipes"

// ErrNotFound is returned when a recipe id is not in the catalog.
var ErrNotFound = errors.New("recipe not found")

// Documents is the part of the document store the catalog needs.
type Documents interface {
	FetchAll(ctx context.Context, collection string) ([]docstore.Document, error)
	Get(ctx context.Context, collection, id string) (*docstore.Document, error)
	MergeField(ctx context.Context, collection, id, field string, value any) error
}

// Catalog reads raw recipe documents and serves them normalized.
type Catalog struct {
	docs       Documents
	normalizer *Normalizer
}

// NewCatalog creates a new Catalog.
func NewCatalog(docs Documents, normalizer *Normalizer) *Catalog {
	return &Catalog{docs: docs, normalizer: normalizer}
}

// List returns every catalog recipe, normalized, in storage order.
func (c *Catalog) List(ctx context.Context) ([]Recipe, error) {
	docs, err := c.docs.FetchAll(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, c.normalizer.Normalize(doc.ID, doc.Data))
	}
	return recipes, nil
}

// Get returns one normalized recipe or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, id string) (*Recipe, error) {
	doc, err := c.docs.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}

	r := c.normalizer.Normalize(doc.ID, doc.Data)
	return &r, nil
}

// SetImagePath records where the photo of a recipe is served from.
func (c *Catalog) SetImagePath(ctx context.Context, id, path string) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	if err := c.docs.MergeField(ctx, Collection, id, "imagePath", path); err != nil {
		return fmt.Errorf("failed to save image path: %w", err)
	}
	return nil
}
