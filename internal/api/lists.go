package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mealmind/internal/auth"
	"mealmind/internal/pantry"
	"mealmind/internal/profile"
)

// itemList binds list handlers to either the pantry or the shopping list.
type itemList struct {
	load func(ctx context.Context, userID string) ([]pantry.Item, error)
	save func(ctx context.Context, userID string, items []pantry.Item) error
}

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

func (h *Handler) pantryList() itemList {
	return itemList{load: h.Lists.Pantry, save: h.Lists.SavePantry}
}

func (h *Handler) shoppingList() itemList {
	return itemList{load: h.Lists.ShoppingList, save: h.Lists.SaveShoppingList}
}

// ListPantry returns the caller's pantry without ghost items.
func (h *Handler) ListPantry(c *gin.Context) { h.listItems(c, h.pantryList()) }

// AddPantryItem appends a validated item to the caller's pantry.
func (h *Handler) AddPantryItem(c *gin.Context) { h.addItem(c, h.pantryList()) }

// RemovePantryItem deletes one item from the caller's pantry.
func (h *Handler) RemovePantryItem(c *gin.Context) { h.removeItem(c, h.pantryList()) }

// ListShoppingList returns the caller's shopping list without ghost items.
func (h *Handler) ListShoppingList(c *gin.Context) { h.listItems(c, h.shoppingList()) }

// AddShoppingItem appends a validated item to the caller's shopping list.
func (h *Handler) AddShoppingItem(c *gin.Context) { h.addItem(c, h.shoppingList()) }

// RemoveShoppingItem deletes one item from the caller's shopping list.
func (h *Handler) RemoveShoppingItem(c *gin.Context) { h.removeItem(c, h.shoppingList()) }

func (h *Handler) listItems(c *gin.Context, list itemList) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	items, err := list.load(ctx, auth.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pantry.Visible(items))
}

func (h *Handler) addItem(c *gin.Context, list itemList) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := pantry.NewItem(req.Name, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	userID := auth.UserID(c)
	items, err := list.load(ctx, userID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if err := list.save(ctx, userID, append(items, item)); err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) removeItem(c *gin.Context, list itemList) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	userID := auth.UserID(c)
	items, err := list.load(ctx, userID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	remaining, err := pantry.Remove(items, c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	if err := list.save(ctx, userID, remaining); err != nil {
		h.storeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	p, err := h.Profiles.Get(ctx, auth.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProfile merges the submitted profile into the caller's user document.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.Profiles.Save(ctx, auth.UserID(c), &p); err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
