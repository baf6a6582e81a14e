package handlers

import (
	"net/http"

	"cafe-order-api/config"
	"cafe-order-api/models"
	"cafe-order-api/storage"

	"github.com/gin-gonic/gin"
)

// ── Homepage content management ─────────────────────────────────────────────

type HomepageImageRequest struct {
	Section  string `json:"section" binding:"required"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url" binding:"required"`
}

// ListHomepageImagesAdmin returns all homepage images ordered by section
func ListHomepageImagesAdmin(c *gin.Context) {
	var images []models.HomepageImage
	config.DB.Order("section asc").Order("created_at desc").Find(&images)
	c.JSON(http.StatusOK, gin.H{"count": len(images), "images": images})
}

// CreateHomepageImage registers an uploaded image under a homepage section
func CreateHomepageImage(c *gin.Context) {
	var req HomepageImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidSection(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Section must be hero, about, facilities or testimonial"})
		return
	}

	image := models.HomepageImage{
		Section:  req.Section,
		Title:    req.Title,
		ImageURL: req.ImageURL,
	}
	if err := config.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save homepage image"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Homepage image added", "image": image})
}

// UpdateHomepageImage edits a homepage image record; a replaced asset is
// released best-effort.
func UpdateHomepageImage(c *gin.Context) {
	var image models.HomepageImage
	if err := config.DB.First(&image, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Homepage image not found"})
		return
	}

	var req HomepageImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidSection(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Section must be hero, about, facilities or testimonial"})
		return
	}

	oldImage := image.ImageURL
	image.Section = req.Section
	image.Title = req.Title
	image.ImageURL = req.ImageURL
	if err := config.DB.Save(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update homepage image"})
		return
	}

	if oldImage != "" && oldImage != image.ImageURL {
		storage.Default().RemoveLogged(oldImage)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Homepage image updated", "image": image})
}

// DeleteHomepageImage removes the record and best-effort deletes the asset
func DeleteHomepageImage(c *gin.Context) {
	var image models.HomepageImage
	if err := config.DB.First(&image, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Homepage image not found"})
		return
	}
	if err := config.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete homepage image"})
		return
	}

	storage.Default().RemoveLogged(image.ImageURL)

	c.JSON(http.StatusOK, gin.H{"message": "Homepage image deleted"})
}
