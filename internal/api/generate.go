package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mealmind/internal/auth"
	"mealmind/internal/mealplan"
	"mealmind/internal/pantry"
	"mealmind/internal/recipe"
)

// bindOptionalJSON decodes a JSON body into dst; an empty body keeps dst's
// zero value.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// GenerateRecipes asks the model for recipes built from the caller's pantry.
func (h *Handler) GenerateRecipes(c *gin.Context) {
	var req recipe.GenerateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeCtx, cancelStore := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancelStore()

	items, err := h.Lists.Pantry(storeCtx, auth.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GenerationTimeout)
	defer cancel()

	text, err := h.Generator.Generate(ctx, recipe.BuildGeneratePrompt(items, req))
	if err != nil {
		h.generationError(c, err)
		return
	}

	recipes, err := h.Normalizer.ParseGenerated(text)
	if err != nil {
		h.logger.Warn("generated recipes unreadable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// MealPlan asks the model for a weekday plan that uses catalog recipes.
func (h *Handler) MealPlan(c *gin.Context) {
	var prefs mealplan.Preferences
	if err := bindOptionalJSON(c, &prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeCtx, cancelStore := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancelStore()

	var (
		items   []pantry.Item
		recipes []recipe.Recipe
	)
	g, gctx := errgroup.WithContext(storeCtx)
	g.Go(func() error {
		var err error
		items, err = h.Lists.Pantry(gctx, auth.UserID(c))
		return err
	})
	g.Go(func() error {
		var err error
		recipes, err = h.Recipes.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.storeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GenerationTimeout)
	defer cancel()

	matching := recipe.Filter{Cost: prefs.Budget, Time: prefs.Time, Skill: prefs.Skill}.Apply(recipes)
	text, err := h.Generator.Generate(ctx, mealplan.BuildPrompt(items, recipe.Names(matching), prefs))
	if err != nil {
		h.generationError(c, err)
		return
	}

	result := mealplan.Parse(text)
	if !result.OK() {
		h.logger.Warn("meal plan unreadable", zap.Error(result.Err))
		c.JSON(http.StatusBadGateway, gin.H{"error": result.Message, "raw": text})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": result.Plan})
}

// RelayGenerate answers {"prompt"} with {"recipe"} so other services can use
// this API as their generation relay.
func (h *Handler) RelayGenerate(c *gin.Context) {
	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil || body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body missing or invalid JSON format."})
		return
	}

	prompt, _ := body["prompt"].(string)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No prompt provided"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GenerationTimeout)
	defer cancel()

	text, err := h.Generator.Generate(ctx, prompt)
	if err != nil {
		h.logger.Error("relay generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini API Error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": text})
}
