package main

import (
	"log"
	"time"

	"expense-categorizer-backend/internal/config"
	"expense-categorizer-backend/internal/database"
	"expense-categorizer-backend/internal/models"
	"expense-categorizer-backend/internal/routes"
	"expense-categorizer-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal("database:", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Keyword{},
		&models.Transaction{},
		&models.ImportBatch{},
	); err != nil {
		log.Fatal("migrate:", err)
	}

	uploads, err := storage.New(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("uploads:", err)
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, uploads)

	if err := r.Run(cfg.ListenAddr()); err != nil {
		log.Fatal(err)
	}
}
