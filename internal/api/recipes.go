package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mealmind/internal/auth"
	"mealmind/internal/pantry"
	"mealmind/internal/recipe"
)

// ListRecipes returns the normalized catalog narrowed by the search, cost,
// time and skill query parameters.
func (h *Handler) ListRecipes(c *gin.Context) {
	var filter recipe.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	recipes, err := h.Recipes.List(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, filter.Apply(recipes))
}

// GetRecipe returns a single normalized recipe.
func (h *Handler) GetRecipe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	r, err := h.Recipes.Get(ctx, c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// CookRecipe deducts the recipe's ingredients from the caller's pantry.
func (h *Handler) CookRecipe(c *gin.Context) {
	userID := auth.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	var (
		cooked *recipe.Recipe
		items  []pantry.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cooked, err = h.Recipes.Get(gctx, c.Param("id"))
		return err
	})
	g.Go(func() error {
		var err error
		items, err = h.Lists.Pantry(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.storeError(c, err)
		return
	}

	updated, changed := pantry.Deduct(cooked.Ingredients, items)
	if changed > 0 {
		if err := h.Lists.SavePantry(ctx, userID, updated); err != nil {
			h.storeError(c, err)
			return
		}
	}

	h.logger.Info("recipe cooked",
		zap.String("user_id", userID),
		zap.String("recipe_id", cooked.ID),
		zap.Int("changed", changed),
	)
	c.JSON(http.StatusOK, gin.H{"pantry": pantry.Visible(updated), "changed": changed})
}
