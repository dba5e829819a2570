package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"shopzone/internal/cache"
	"shopzone/internal/cart"
	"shopzone/internal/catalog"
	"shopzone/internal/checkout"
	"shopzone/internal/storage"
)

// testApp bundles the services the handler tests exercise against a
// fresh in-memory store.
type testApp struct {
	router  *gin.Engine
	engine  *catalog.Engine
	cart    *cart.Cart
	session *checkout.Session
	cache   *cache.Cache
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	store := storage.NewMemStore()
	engine := catalog.NewEngine(store, logger)
	shoppingCart := cart.New(store, logger)
	session := checkout.NewSession(shoppingCart)
	appCache := cache.New(time.Minute)

	products := NewProductHandler(engine, appCache)
	carts := NewCartHandler(shoppingCart, engine)
	checkouts := NewCheckoutHandler(session)

	router := gin.New()
	router.GET("/v1/products", products.ListProducts)
	router.GET("/v1/products/featured", products.GetFeatured)
	router.GET("/v1/products/:id", products.GetProductByID)
	router.POST("/v1/products", products.CreateProduct)
	router.PATCH("/v1/products/:id", products.UpdateProduct)
	router.DELETE("/v1/products/:id", products.DeleteProduct)

	router.GET("/v1/cart", carts.GetCart)
	router.POST("/v1/cart/items", carts.AddItem)
	router.PATCH("/v1/cart/items/:id", carts.SetQuantity)
	router.DELETE("/v1/cart/items/:id", carts.RemoveItem)
	router.DELETE("/v1/cart", carts.ClearCart)

	router.GET("/v1/checkout/summary", checkouts.GetSummary)
	router.POST("/v1/checkout/shipping", checkouts.SubmitShipping)
	router.POST("/v1/checkout/payment", checkouts.SubmitPayment)
	router.POST("/v1/checkout/promo", checkouts.ApplyPromo)
	router.POST("/v1/checkout/confirm", checkouts.Confirm)

	return &testApp{
		router:  router,
		engine:  engine,
		cart:    shoppingCart,
		session: session,
		cache:   appCache,
	}
}

func (app *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func boolPtr(v bool) *bool { return &v }
