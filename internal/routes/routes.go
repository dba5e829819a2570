package routes

import (
	"net/http"

	"shopzone/internal/cache"
	"shopzone/internal/cart"
	"shopzone/internal/catalog"
	"shopzone/internal/chatbot"
	"shopzone/internal/checkout"
	"shopzone/internal/gallery"
	"shopzone/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired application services the routes operate on.
type Deps struct {
	Engine   *catalog.Engine
	Cart     *cart.Cart
	Checkout *checkout.Session
	Gallery  *gallery.Client
	Bot      *chatbot.Bot
	Cache    *cache.Cache
}

func RegisterRoutes(router *gin.Engine, deps Deps) {
	products := handlers.NewProductHandler(deps.Engine, deps.Cache)
	carts := handlers.NewCartHandler(deps.Cart, deps.Engine)
	checkouts := handlers.NewCheckoutHandler(deps.Checkout)
	site := handlers.NewSiteHandler(deps.Gallery, deps.Bot)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", products.ListProducts)
		v1.GET("/products/featured", products.GetFeatured)
		v1.GET("/products/:id", products.GetProductByID)
		v1.POST("/products", products.CreateProduct)
		v1.PATCH("/products/:id", products.UpdateProduct)
		v1.DELETE("/products/:id", products.DeleteProduct)

		v1.GET("/cart", carts.GetCart)
		v1.POST("/cart/items", carts.AddItem)
		v1.PATCH("/cart/items/:id", carts.SetQuantity)
		v1.DELETE("/cart/items/:id", carts.RemoveItem)
		v1.DELETE("/cart", carts.ClearCart)

		v1.GET("/checkout/summary", checkouts.GetSummary)
		v1.POST("/checkout/shipping", checkouts.SubmitShipping)
		v1.POST("/checkout/payment", checkouts.SubmitPayment)
		v1.POST("/checkout/promo", checkouts.ApplyPromo)
		v1.POST("/checkout/confirm", checkouts.Confirm)

		v1.GET("/gallery", site.GetGallery)
		v1.GET("/chat", site.GetChatHistory)
		v1.POST("/chat", site.PostChatMessage)
	}
}
