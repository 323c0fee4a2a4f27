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

// ListCollectionsForDriver returns the driver's cash collections,
// newest first. Pending rows past their due date are reported as
// overdue without rewriting the stored status.
func ListCollectionsForDriver(c *gin.Context) {
	driverID, err := parseID(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var collections []models.CashCollection
	if err := config.DB.
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&collections).Error; err != nil {
		logrus.WithError(err).Error("failed to list cash collections")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list collections"})
		return
	}

	now := time.Now()
	for i := range collections {
		collections[i].Status = collections[i].Derived(now)
	}

	c.JSON(http.StatusOK, collections)
}

// CollectCashCollection marks a collection as collected and stamps the
// collection time. Already-collected rows are rejected.
func CollectCashCollection(c *gin.Context) {
	collectionID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid collection ID"})
		return
	}

	var collection models.CashCollection
	if err := config.DB.First(&collection, collectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch cash collection")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch collection"})
		return
	}

	if collection.Status == models.CollectionCollected {
		c.JSON(http.StatusBadRequest, gin.H{"message": "collection already collected"})
		return
	}

	now := time.Now()
	collection.Status = models.CollectionCollected
	collection.CollectedAt = &now

	if err := config.DB.Save(&collection).Error; err != nil {
		logrus.WithError(err).Error("failed to save cash collection")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, collection)
}
