package handler

import (
	"errors"
	"net/http"

	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemHandler struct {
	itemRepo *repository.ItemRepository
}

func NewItemHandler(itemRepo *repository.ItemRepository) *ItemHandler {
	return &ItemHandler{itemRepo: itemRepo}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	activeOnly := c.Query("all") == ""
	items, err := h.itemRepo.List(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var payload struct {
		Name string  `json:"name"`
		Rate float64 `json:"rate"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Rate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate must not be negative"})
		return
	}

	item := models.Item{Name: payload.Name, Rate: payload.Rate, IsActive: true}
	if err := h.itemRepo.Create(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	item, err := h.itemRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var payload struct {
		Name     *string  `json:"name"`
		Rate     *float64 `json:"rate"`
		IsActive *bool    `json:"is_active"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Name != nil {
		item.Name = *payload.Name
	}
	if payload.Rate != nil {
		if *payload.Rate < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate must not be negative"})
			return
		}
		item.Rate = *payload.Rate
	}
	if payload.IsActive != nil {
		item.IsActive = *payload.IsActive
	}

	if err := h.itemRepo.Update(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// SuggestRate proposes a rate from the item's recent billing history so the
// catalog rate can be nudged toward what is actually charged.
func (h *ItemHandler) SuggestRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	item, err := h.itemRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	suggested, err := h.itemRepo.SuggestRate(item.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggested_rate": suggested,
		"current_rate":   item.Rate,
	})
}
