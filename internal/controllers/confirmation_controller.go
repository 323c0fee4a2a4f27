package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

// ConfirmDelivery accepts a multipart proof-of-delivery photo, stores
// it under the upload directory, and marks the delivery completed.
// Re-confirming an already-completed delivery replaces the photo.
func ConfirmDelivery(c *gin.Context) {
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
		logrus.WithError(err).Error("failed to fetch delivery for confirmation")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch delivery"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}

	uploadDir := config.GetEnv("UPLOAD_DIR", "./uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logrus.WithError(err).Error("failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store image"})
		return
	}

	// Client filenames are untrusted; only the extension survives.
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logrus.WithError(err).Error("failed to save uploaded image")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store image"})
		return
	}

	delivery.ProofImage = dst
	delivery.Status = models.StatusCompleted
	if err := config.DB.Save(&delivery).Error; err != nil {
		logrus.WithError(err).Error("failed to complete delivery")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to complete delivery"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"delivery_id": delivery.ID,
		"image":       name,
	}).Info("delivery confirmed")

	c.JSON(http.StatusOK, delivery)
}
