package handler

import (
	"errors"
	"net/http"
	"strconv"

	"expense-categorizer-backend/internal/repository"
	"expense-categorizer-backend/internal/services/categorize"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	service         *categorize.Service
	transactionRepo *repository.TransactionRepository
}

func NewCategoryHandler(s *categorize.Service, transactionRepo *repository.TransactionRepository) *CategoryHandler {
	return &CategoryHandler{service: s, transactionRepo: transactionRepo}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (h *CategoryHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactionRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": txs})
}

// AssignCategory sets or clears (category_id: null) a transaction's category.
func (h *CategoryHandler) AssignCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payload struct {
		CategoryID *uint `json:"category_id"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := h.service.AssignCategory(id, payload.CategoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	category, err := h.service.CreateCategory(payload.Name)
	if errors.Is(err, categorize.ErrEmptyName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

func (h *CategoryHandler) AddKeyword(c *gin.Context) {
	var payload struct {
		Keyword    string `json:"keyword"`
		CategoryID uint   `json:"category_id"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := h.service.AddKeyword(payload.Keyword, payload.CategoryID)
	if errors.Is(err, categorize.ErrEmptyName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword required"})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "keyword added"})
}

func (h *CategoryHandler) DeleteKeyword(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteKeyword(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "keyword deleted"})
}
