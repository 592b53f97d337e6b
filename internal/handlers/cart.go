package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/cart"
	"afrieats_backend/internal/models"
)

// CartHandlers is the session-keyed HTTP surface over the cart store.
// The session id comes from the X-Session-ID header the storefront
// client generates on first load.
type CartHandlers struct {
	Carts *cart.Store
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return id, true
}

func cartJSON(basket models.Cart) gin.H {
	lines := basket.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return gin.H{
		"lines":                lines,
		"special_instructions": basket.SpecialInstructions,
		"total_price":          basket.TotalPrice(),
	}
}

func (h *CartHandlers) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartJSON(h.Carts.Get(c.Request.Context(), sid)))
}

func (h *CartHandlers) AddItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var input models.CartLine
	if err := c.ShouldBindJSON(&input); err != nil || input.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart line"})
		return
	}

	basket, err := h.Carts.AddItem(c.Request.Context(), sid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(basket))
}

func (h *CartHandlers) UpdateQuantity(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var input struct {
		ItemID       string `json:"item_id" binding:"required"`
		VariantLabel string `json:"variant_label"`
		Quantity     int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	basket, err := h.Carts.UpdateQuantity(c.Request.Context(), sid, input.ItemID, input.VariantLabel, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(basket))
}

func (h *CartHandlers) RemoveItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var input struct {
		ItemID       string `json:"item_id" binding:"required"`
		VariantLabel string `json:"variant_label"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	basket, err := h.Carts.RemoveItem(c.Request.Context(), sid, input.ItemID, input.VariantLabel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(basket))
}

func (h *CartHandlers) SetInstructions(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var input struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.Carts.SetInstructions(c.Request.Context(), sid, input.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save instructions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *CartHandlers) ClearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.Carts.Clear(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
