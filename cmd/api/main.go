package main

import (
	"shopzone/internal/cache"
	"shopzone/internal/cart"
	"shopzone/internal/catalog"
	"shopzone/internal/chatbot"
	"shopzone/internal/checkout"
	"shopzone/internal/config"
	"shopzone/internal/database"
	"shopzone/internal/gallery"
	"shopzone/internal/routes"
	"shopzone/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store := openStore(cfg, logger)

	appCache := cache.New(cfg.CacheTTL)
	engine := catalog.NewEngine(store, logger)
	shoppingCart := cart.New(store, logger)
	session := checkout.NewSession(shoppingCart)
	galleryClient := gallery.NewClient(cfg.GalleryURL, appCache)
	bot := chatbot.New(store, logger)

	router := gin.Default()
	routes.RegisterRoutes(router, routes.Deps{
		Engine:   engine,
		Cart:     shoppingCart,
		Checkout: session,
		Gallery:  galleryClient,
		Bot:      bot,
		Cache:    appCache,
	})

	logger.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func openStore(cfg *config.Config, logger *logrus.Logger) storage.Store {
	switch cfg.StoreDriver {
	case "memory":
		return storage.NewMemStore()
	case "mongo":
		client := database.Connect(cfg.MongoURI)
		collection := client.Database(cfg.MongoDB).Collection("kvstore")
		return storage.NewMongoStore(collection)
	default:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.WithError(err).Fatal("cannot open data directory")
		}
		return store
	}
}
