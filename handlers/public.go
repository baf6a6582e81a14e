package handlers

import (
	"net/http"

	"cafe-order-api/config"
	"cafe-order-api/models"
	"cafe-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the customer-facing menu: available items only, grouped by
// category order
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Where("available = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	query.Order("category asc").Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"menu":  items,
	})
}

// GetOrder returns a single order with its items, for the confirmation view
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetHomepageImages returns storefront images grouped by section (public)
func GetHomepageImages(c *gin.Context) {
	var images []models.HomepageImage
	config.DB.Order("section asc").Find(&images)

	grouped := map[string][]models.HomepageImage{}
	for _, img := range images {
		grouped[img.Section] = append(grouped[img.Section], img)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(images), "sections": grouped})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted},
		"description":     "Cafe Order Lifecycle State Machine",
	})
}
