// main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"veloura/config"
	"veloura/controllers"
	"veloura/middleware"
	"veloura/routes"
	"veloura/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()
	utils.InitLogger(cfg.Production(), cfg.LogFile)
	defer zap.L().Sync()

	// Connect to MongoDB
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zap.S().Errorf("disconnecting from MongoDB: %v", err)
		}
	}()

	flash := utils.NewFlash(cfg.SessionSecret)
	emailService := utils.NewEmailService(cfg)
	auth := middleware.NewAuth(
		client.Database(cfg.DBName).Collection("users"),
		[]byte(cfg.JWTKey),
		flash,
	)

	// Initialize controllers
	c := routes.Controllers{
		Shop:     controllers.NewShopController(client, cfg.DBName, auth, flash),
		Cart:     controllers.NewCartController(client, cfg.DBName, flash),
		Wishlist: controllers.NewWishlistController(client, cfg.DBName, flash),
		User:     controllers.NewUserController(client, cfg, flash, emailService),
		Owner:    controllers.NewOwnerController(client, cfg.DBName, flash),
		Product:  controllers.NewProductController(client, cfg.DBName, flash),
		Email:    controllers.NewEmailController(emailService),
	}

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, c)

	// Serve hero images and other static assets
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))

	zap.S().Infof("Veloura is running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zap.S().Fatal(err)
	}
}
