package models

import (
	"time"

	"gorm.io/gorm"
)

type CollectionStatus string

const (
	CollectionPending   CollectionStatus = "pending"
	CollectionCollected CollectionStatus = "collected"
	CollectionOverdue   CollectionStatus = "overdue"
)

// CashCollection tracks money a driver owes back for a cash-on-delivery
// order. Rows are created alongside the delivery and settled from the
// driver's cash screen.
type CashCollection struct {
	gorm.Model
	DeliveryID uint             `json:"deliveryId" gorm:"index"`
	DriverID   uint             `json:"driverId" gorm:"index"`
	Amount     float64          `json:"amount"`
	Status     CollectionStatus `json:"status" gorm:"default:pending"`
	DueDate    time.Time        `json:"dueDate"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	CollectedAt *time.Time `json:"collectedAt,omitempty"`
}

// Derived reports the status a reader should see: a pending collection
// past its due date shows as overdue without being rewritten in place.
func (c *CashCollection) Derived(now time.Time) CollectionStatus {
	if c.Status == CollectionPending && now.After(c.DueDate) {
		return CollectionOverdue
	}
	return c.Status
}
