package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopzone/internal/cart"
	"shopzone/internal/catalog"
	"shopzone/internal/models"
)

type CartHandler struct {
	cart   *cart.Cart
	engine *catalog.Engine
}

func NewCartHandler(c *cart.Cart, engine *catalog.Engine) *CartHandler {
	return &CartHandler{cart: c, engine: engine}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) cartResponse() gin.H {
	return gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.Count(),
	}
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartResponse())
}

// POST /v1/cart/items
//
// The line is built from the catalog record, so price and name can't be
// forged by the client.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	product, ok := h.engine.ProductByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	if !product.InStock {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "product is out of stock"})
		return
	}

	h.cart.Add(models.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Quantity: req.Quantity,
	})
	c.JSON(http.StatusOK, h.cartResponse())
}

// PATCH /v1/cart/items/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !h.cart.SetQuantity(c.Param("id"), req.Quantity) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not in cart"})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse())
}

// DELETE /v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, h.cartResponse())
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.JSON(http.StatusOK, h.cartResponse())
}
