package handlers

import (
	"errors"
	"net/http"

	"cafe-order-api/config"
	"cafe-order-api/models"
	"cafe-order-api/storage"

	"github.com/gin-gonic/gin"
)

// ── Menu management ─────────────────────────────────────────────────────────

// ListMenuAdmin returns the full catalog, unavailable items included
func ListMenuAdmin(c *gin.Context) {
	var items []models.MenuItem
	config.DB.Order("category asc").Order("name asc").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
}

// CreateMenuItem adds a new item to the catalog
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be minuman, makanan or snack"})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   available,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem edits a catalog item. Replacing the image releases the old
// asset.
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be minuman, makanan or snack"})
		return
	}

	oldImage := item.ImageURL

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	if oldImage != "" && oldImage != item.ImageURL {
		storage.Default().RemoveLogged(oldImage)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a catalog item and best-effort releases its image
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	if item.ImageURL != "" {
		storage.Default().RemoveLogged(item.ImageURL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// UploadImage stores a multipart image and returns its public URL. Used by
// both the menu and homepage admin forms before saving the record.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required (field 'file')"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	url, err := storage.Default().Save(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
