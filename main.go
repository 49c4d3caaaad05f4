package main

import (
	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/config"
	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/routes"
	"context"
	"log"
	"os"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	repo := db.NewRepo(application.DB)
	app.BootstrapFirstAdmin(context.Background(), application.Config, repo)

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
