package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmind/internal/pantry"
	"mealmind/internal/profile"
	"mealmind/internal/recipe"
)

// storeTimeout bounds every document store round trip made by a handler.
const storeTimeout = 5 * time.Second

// Generator produces model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RecipeCatalog defines the recipe operations the handlers need.
type RecipeCatalog interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	SetImagePath(ctx context.Context, id, path string) error
}

// ListStore defines the per-user pantry and shopping list operations.
type ListStore interface {
	Pantry(ctx context.Context, userID string) ([]pantry.Item, error)
	SavePantry(ctx context.Context, userID string, items []pantry.Item) error
	ShoppingList(ctx context.Context, userID string) ([]pantry.Item, error)
	SaveShoppingList(ctx context.Context, userID string, items []pantry.Item) error
}

// ProfileStore defines the profile operations the handlers need.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
	Save(ctx context.Context, userID string, p *profile.Profile) error
}

// ImageOptions controls where recipe photos go and how large they may be.
type ImageOptions struct {
	Dir     string
	Width   uint
	MaxSize int64
}

// Dependencies are the collaborators a Handler is built from.
type Dependencies struct {
	Generator         Generator
	Recipes           RecipeCatalog
	Lists             ListStore
	Profiles          ProfileStore
	Normalizer        *recipe.Normalizer
	Images            ImageOptions
	GenerationTimeout time.Duration
	Logger            *zap.Logger
}

// Handler handles HTTP requests.
type Handler struct {
	Generator         Generator
	Recipes           RecipeCatalog
	Lists             ListStore
	Profiles          ProfileStore
	Normalizer        *recipe.Normalizer
	Images            ImageOptions
	GenerationTimeout time.Duration
	logger            *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(deps Dependencies) *Handler {
	h := &Handler{
		Generator:         deps.Generator,
		Recipes:           deps.Recipes,
		Lists:             deps.Lists,
		Profiles:          deps.Profiles,
		Normalizer:        deps.Normalizer,
		Images:            deps.Images,
		GenerationTimeout: deps.GenerationTimeout,
		logger:            deps.Logger,
	}
	if h.Normalizer == nil {
		h.Normalizer = recipe.NewNormalizer(nil)
	}
	if h.GenerationTimeout <= 0 {
		h.GenerationTimeout = 45 * time.Second
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// storeError writes the response for a failed store call.
func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": fmt.Sprintf("database query timed out after %s", storeTimeout)})
	case errors.Is(err, recipe.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, pantry.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	default:
		h.logger.Error("store call failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("database error: %s", err.Error())})
	}
}

// generationError writes the response for a failed model call.
func (h *Handler) generationError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusRequestTimeout, gin.H{"error": fmt.Sprintf("generation timed out after %s", h.GenerationTimeout)})
		return
	}
	h.logger.Error("generation failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("generation error: %s", err.Error())})
}
