package models

import "time"

// OrderStatus is the order lifecycle. Transitions only move forward:
// AWAITING_PAYMENT → PAID → COMPLETED.
type OrderStatus string

const (
	StatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	StatusPaid            OrderStatus = "PAID"
	StatusCompleted       OrderStatus = "COMPLETED"
)

func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusAwaitingPayment, StatusPaid, StatusCompleted:
		return true
	}
	return false
}

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	TableNumber   int                  `json:"table_number" gorm:"not null"`
	CustomerName  string               `json:"customer_name"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'AWAITING_PAYMENT'"`
	TotalAmount   float64              `json:"total_amount"` // fixed at creation, never recomputed
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name"`                  // snapshot name at order time
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at order time
	Quantity   int     `json:"quantity" gorm:"not null"`
	Subtotal   float64 `json:"subtotal" gorm:"not null"`
}

// OrderStatusHistory records every status change for auditing.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
