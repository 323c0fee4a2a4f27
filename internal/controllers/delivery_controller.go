package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

type createDeliveryInput struct {
	PickupLocation  string  `json:"pickupLocation" binding:"required"`
	DropoffLocation string  `json:"dropoffLocation" binding:"required"`
	PackageType     string  `json:"packageType" binding:"required"`
	EstimatedTime   string  `json:"estimatedTime" binding:"required"`
	DriverID        *uint   `json:"driverId"`

	// Cash-on-delivery orders spawn a pending collection for the
	// assigned driver.
	CashAmount    *float64 `json:"cashAmount"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
}

type statusInput struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// ListDeliveries returns every delivery, newest first.
func ListDeliveries(c *gin.Context) {
	var deliveries []models.Delivery
	if err := config.DB.Order("created_at DESC").Find(&deliveries).Error; err != nil {
		logrus.WithError(err).Error("failed to list deliveries")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list deliveries"})
		return
	}

	c.JSON(http.StatusOK, deliveries)
}

// GetDelivery fetches a single delivery by ID.
func GetDelivery(c *gin.Context) {
	deliveryID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid delivery ID"})
		return
	}

	var delivery models.Delivery
	if err := config.DB.First(&delivery, deliveryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Delivery not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch delivery"})
		return
	}

	c.JSON(http.StatusOK, delivery)
}

// GetCurrentDelivery returns the driver's active delivery (pending or
// in progress), or null when the driver has none.
func GetCurrentDelivery(c *gin.Context) {
	driverID, err := parseID(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var delivery models.Delivery
	err = config.DB.
		Where("driver_id = ? AND status IN ?", driverID, models.CurrentStatuses).
		First(&delivery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		logrus.WithError(err).Error("failed to fetch current delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch current delivery"})
		return
	}

	c.JSON(http.StatusOK, delivery)
}

// GetDeliveryHistory returns the driver's completed and cancelled
// deliveries, newest first.
func GetDeliveryHistory(c *gin.Context) {
	driverID, err := parseID(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var deliveries []models.Delivery
	if err := config.DB.
		Where("driver_id = ? AND status IN ?", driverID, models.HistoryStatuses).
		Order("created_at DESC").
		Find(&deliveries).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch delivery history")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch delivery history"})
		return
	}

	c.JSON(http.StatusOK, deliveries)
}

// CreateDelivery registers a new delivery with status pending. When a
// cash amount and driver are present, a pending cash collection due
// the next day is created in the same transaction.
func CreateDelivery(c *gin.Context) {
	var input createDeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	delivery := models.Delivery{
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		PackageType:     input.PackageType,
		EstimatedTime:   input.EstimatedTime,
		Status:          models.StatusPending,
		DriverID:        input.DriverID,
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		if input.CashAmount != nil && input.DriverID != nil {
			collection := models.CashCollection{
				DeliveryID:    delivery.ID,
				DriverID:      *input.DriverID,
				Amount:        *input.CashAmount,
				Status:        models.CollectionPending,
				DueDate:       time.Now().Add(24 * time.Hour),
				CustomerName:  input.CustomerName,
				CustomerPhone: input.CustomerPhone,
			}
			if err := tx.Create(&collection).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to create delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create delivery"})
		return
	}

	c.JSON(http.StatusCreated, delivery)
}

// UpdateDeliveryStatus sets the delivery's status to any of the four
// recognized values. Transitions are deliberately unrestricted; only
// the value itself is validated.
func UpdateDeliveryStatus(c *gin.Context) {
	deliveryID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid delivery ID"})
		return
	}

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status: must be one of pending, in_progress, completed, cancelled"})
		return
	}

	var delivery models.Delivery
	if err := config.DB.First(&delivery, deliveryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Delivery not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch delivery for status update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch delivery"})
		return
	}

	delivery.Status = input.Status
	if err := config.DB.Save(&delivery).Error; err != nil {
		logrus.WithError(err).Error("failed to save delivery status")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, delivery)
}
