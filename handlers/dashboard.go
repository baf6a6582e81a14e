package handlers

import (
	"io"
	"net/http"
	"time"

	"cafe-order-api/config"
	"cafe-order-api/middleware"
	"cafe-order-api/models"
	"cafe-order-api/realtime"
	"cafe-order-api/statemachine"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// StatusBucket is one dashboard column: the orders in a status plus the two
// derived aggregates shown in its header.
type StatusBucket struct {
	Status models.OrderStatus `json:"status"`
	Count  int                `json:"count"`
	Total  float64            `json:"total"`
	Orders []models.Order     `json:"orders"`
}

// startOfToday returns local midnight, the visibility cutoff for completed
// orders.
func startOfToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// visibleOnDashboard hides completed orders from before today; pending and
// paid orders stay visible regardless of age.
func visibleOnDashboard(order models.Order, now time.Time) bool {
	if order.Status != models.StatusCompleted {
		return true
	}
	return !order.CreatedAt.Before(startOfToday(now))
}

// GroupByStatus partitions orders into the three status buckets. Every order
// lands in exactly one bucket.
func GroupByStatus(orders []models.Order) []StatusBucket {
	buckets := []StatusBucket{
		{Status: models.StatusAwaitingPayment, Orders: []models.Order{}},
		{Status: models.StatusPaid, Orders: []models.Order{}},
		{Status: models.StatusCompleted, Orders: []models.Order{}},
	}
	for _, order := range orders {
		for i := range buckets {
			if buckets[i].Status == order.Status {
				buckets[i].Orders = append(buckets[i].Orders, order)
				buckets[i].Count++
				buckets[i].Total += order.TotalAmount
				break
			}
		}
	}
	return buckets
}

// GetDashboard returns all operationally relevant orders grouped by status,
// newest first, with items embedded
func GetDashboard(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	now := time.Now()
	visible := orders[:0]
	for _, order := range orders {
		if visibleOnDashboard(order, now) {
			visible = append(visible, order)
		}
	}

	buckets := GroupByStatus(visible)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(visible),
		"buckets": buckets,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus advances an order along the lifecycle. The write is
// conditional on the current status, so two staff racing on the same order
// get a conflict instead of a silent double transition.
func UpdateOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, prevStatus).
		Update("status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order was updated by someone else, refresh and retry"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  adminID,
		Note:       req.Note,
	}
	config.DB.Create(&history)

	realtime.Default.Emit(realtime.Event{
		Table:       realtime.TableOrders,
		Type:        realtime.EventUpdate,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}

// StreamEvents is the dashboard's change feed: one SSE stream carrying every
// order and order-item change. The client re-fetches the dashboard on any
// event; inserts and updates carry the table number for toasts.
func StreamEvents(c *gin.Context) {
	id, events := realtime.Default.Subscribe()
	defer realtime.Default.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			sse.Encode(w, sse.Event{Event: "change", Data: ev})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
