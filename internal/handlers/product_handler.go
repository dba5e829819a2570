package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopzone/internal/cache"
	"shopzone/internal/catalog"
	"shopzone/internal/models"
)

const featuredCachePrefix = "products:featured:"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ProductListResponse struct {
	Data  []models.Product    `json:"data"`
	Stats catalog.Stats       `json:"stats"`
	Sort  catalog.SortMode    `json:"sort"`
	Query catalog.FilterState `json:"query"`
}

type ProductHandler struct {
	engine *catalog.Engine
	cache  *cache.Cache
}

func NewProductHandler(engine *catalog.Engine, c *cache.Cache) *ProductHandler {
	return &ProductHandler{engine: engine, cache: c}
}

// GET /v1/products
//
// Applies the filter query params to the engine, then sort and page,
// and returns the visible slice with the pagination stats. This is the
// grid view: it moves the shared engine state, so it is never cached.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	h.engine.UpdateFilters(catalog.ParseFilterQuery(c.Request.URL.Query()))

	if mode := c.Query("sort"); mode != "" {
		h.engine.SetSorting(catalog.SortMode(mode))
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || !h.engine.SetPage(page) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page out of range"})
			return
		}
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Data:  h.engine.VisibleProducts(),
		Stats: h.engine.Stats(),
		Sort:  h.engine.Sorting(),
		Query: h.engine.Filters(),
	})
}

// GET /v1/products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	cacheKey := fmt.Sprintf("%s%d", featuredCachePrefix, limit)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	response := gin.H{"data": h.engine.FeaturedProducts(limit)}
	h.cache.Set(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// GET /v1/products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, ok := h.engine.ProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":      product,
		"categoryIcon": catalog.CategoryIcon(product.Category),
		"discount":     product.DiscountPercentage(),
	})
}

// POST /v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	product := h.engine.AddProduct(draft)
	h.cache.DeleteByPrefix(featuredCachePrefix)
	c.JSON(http.StatusCreated, product)
}

// PATCH /v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	product, err := h.engine.UpdateProduct(c.Param("id"), update)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update product"})
		return
	}

	h.cache.DeleteByPrefix(featuredCachePrefix)
	c.JSON(http.StatusOK, product)
}

// DELETE /v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	product, err := h.engine.DeleteProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not delete product"})
		return
	}

	h.cache.DeleteByPrefix(featuredCachePrefix)
	c.JSON(http.StatusOK, product)
}
