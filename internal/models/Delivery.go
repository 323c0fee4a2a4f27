package models

import (
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	StatusPending    DeliveryStatus = "pending"
	StatusInProgress DeliveryStatus = "in_progress"
	StatusCompleted  DeliveryStatus = "completed"
	StatusCancelled  DeliveryStatus = "cancelled"
)

// CurrentStatuses and HistoryStatuses are the two status buckets the
// driver app reads: active work vs. finished work.
var (
	CurrentStatuses = []DeliveryStatus{StatusPending, StatusInProgress}
	HistoryStatuses = []DeliveryStatus{StatusCompleted, StatusCancelled}
)

// ValidStatus reports whether s is one of the four recognized statuses.
func ValidStatus(s DeliveryStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Delivery struct {
	gorm.Model
	PickupLocation  string         `json:"pickupLocation"`
	DropoffLocation string         `json:"dropoffLocation"`
	PackageType     string         `json:"packageType"`
	Status          DeliveryStatus `json:"status" gorm:"default:pending"`
	EstimatedTime   string         `json:"estimatedTime"`

	// Weak reference: a delivery may exist before any driver takes it,
	// and deleting a driver does not cascade here.
	DriverID *uint `json:"driverId" gorm:"index"`

	// Path of the stored proof-of-delivery photo, set by the
	// confirmation upload.
	ProofImage string `json:"proofImage,omitempty"`
}
