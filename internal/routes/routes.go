package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "expense-categorizer-backend/internal/handlers"
	"expense-categorizer-backend/internal/repository"
	"expense-categorizer-backend/internal/services/categorize"
	"expense-categorizer-backend/internal/services/ingest"
	"expense-categorizer-backend/internal/storage"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, uploads *storage.Store) {
	transactionRepo := repository.NewTransactionRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	categorizeService := categorize.NewService(transactionRepo, keywordRepo, categoryRepo)
	ingestService := ingest.NewService(transactionRepo, keywordRepo)

	importHandler := handler.NewImportHandler(ingestService, uploads)
	categoryHandler := handler.NewCategoryHandler(categorizeService, transactionRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Import routes
	imports := api.Group("/imports")
	imports.POST("/upload", importHandler.Upload)
	imports.GET("", importHandler.ListBatches)
	api.GET("/uploads/:name", importHandler.GetUpload)

	// Transaction routes
	tx := api.Group("/transactions")
	tx.GET("", categoryHandler.ListTransactions)
	tx.PUT("/:id/category", categoryHandler.AssignCategory)

	// Category and keyword routes
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", categoryHandler.CreateCategory)
		categories.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	keywords := api.Group("/keywords")
	{
		keywords.POST("", categoryHandler.AddKeyword)
		keywords.DELETE("/:id", categoryHandler.DeleteKeyword)
	}
}
