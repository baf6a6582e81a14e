package handlers

import (
	"net/http"

	"cafe-order-api/config"
	"cafe-order-api/models"
	"cafe-order-api/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	TableNumber  int    `json:"table_number" binding:"required,gt=0"`
	CustomerName string `json:"customer_name"`
	Items        []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder turns a cart into a persisted order. Prices are snapshotted from
// the live catalog here, and the order row plus all item rows are written in
// a single transaction so a half-created order can never exist.
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Build order items and calculate total from snapshot prices
	var orderItems []models.OrderItem
	var total float64

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if !menuItem.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		subtotal := menuItem.Price * float64(reqItem.Quantity)
		total += subtotal
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   reqItem.Quantity,
			Subtotal:   subtotal,
		})
	}

	order := models.Order{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Status:       models.StatusAwaitingPayment,
		TotalAmount:  total,
		Items:        orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: models.StatusAwaitingPayment,
			Note:     "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	realtime.Default.Emit(realtime.Event{
		Table:       realtime.TableOrders,
		Type:        realtime.EventInsert,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
	})
	realtime.Default.Emit(realtime.Event{
		Table:   realtime.TableOrderItems,
		Type:    realtime.EventInsert,
		OrderID: order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}
