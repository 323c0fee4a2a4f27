package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/middleware"
	"driver_dispatch/internal/models"
)

// --- Helper Structs for Request Bodies ---

type registerInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	VehicleType string `json:"vehicleType" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type onlineStatusInput struct {
	IsOnline *bool `json:"isOnline" binding:"required"`
}

type availabilityInput struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type ratingInput struct {
	Rating *float64 `json:"rating" binding:"required"`
}

// updateDriverInput defines the fields a client can send to update a
// driver's profile. Pointers distinguish "absent" from zero values.
type updateDriverInput struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
	VehicleType *string `json:"vehicleType"`
	PlateNumber *string `json:"plateNumber"`
}

// --- Driver Controller Functions ---

// RegisterDriver creates a new driver account. Email uniqueness is a
// store-level constraint; a duplicate surfaces as a validation error.
func RegisterDriver(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !models.ValidVehicleType(input.VehicleType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid vehicle type: must be one of car, bike, van, truck"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
		return
	}

	driver := models.Driver{
		Name:        input.Name,
		Email:       input.Email,
		Password:    hashed,
		PhoneNumber: input.PhoneNumber,
		VehicleType: input.VehicleType,
		PlateNumber: input.PlateNumber,
		IsAvailable: true,
	}

	if err := config.DB.Create(&driver).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email already in use"})
			return
		}
		logrus.WithError(err).Error("failed to create driver")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create driver"})
		return
	}

	token, err := middleware.GenerateToken(driver.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"driver": driver,
	})
}

// LoginDriver authenticates by email and password. Credential
// mismatches return 401; the password hash never leaves the server.
func LoginDriver(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.Where("email = ?", input.Email).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "driver not found or invalid credentials"})
		} else {
			logrus.WithError(err).Error("database error during login")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(driver.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "driver not found or invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(driver.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"driver": driver,
	})
}

// GetDriver fetches a single driver profile by ID.
func GetDriver(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch driver"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// SetOnlineStatus updates the driver's online flag. Availability
// follows the online flag: a driver who goes offline cannot stay
// available for dispatch.
func SetOnlineStatus(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var input onlineStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver for status update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch driver"})
		return
	}

	driver.IsOnline = *input.IsOnline
	driver.IsAvailable = *input.IsOnline

	if err := config.DB.Save(&driver).Error; err != nil {
		logrus.WithError(err).Error("failed to save online status")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// SetAvailability updates only the availability flag.
func SetAvailability(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var input availabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver for availability update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch driver"})
		return
	}

	driver.IsAvailable = *input.IsAvailable

	if err := config.DB.Save(&driver).Error; err != nil {
		logrus.WithError(err).Error("failed to save availability")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateRating folds a new rating into the driver's running mean and
// bumps the delivery count. The read-modify-write runs inside a
// transaction with a row lock so concurrent ratings cannot lose
// updates.
func UpdateRating(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var input ratingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if *input.Rating < 0 || *input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating must be between 0 and 5"})
		return
	}

	var driver models.Driver
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&driver, driverID).Error; err != nil {
			return err
		}

		n := float64(driver.TotalDeliveries)
		driver.Rating = (driver.Rating*n + *input.Rating) / (n + 1)
		driver.TotalDeliveries++

		return tx.Save(&driver).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(txErr).Error("failed to apply rating")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update rating"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateDriver allows modifying profile fields. Only provided fields
// change; a new password is re-hashed before storage.
func UpdateDriver(c *gin.Context) {
	driverID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid driver ID"})
		return
	}

	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.VehicleType != nil && !models.ValidVehicleType(*input.VehicleType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid vehicle type: must be one of car, bike, van, truck"})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver for update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch driver"})
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		driver.PhoneNumber = *input.PhoneNumber
	}
	if input.VehicleType != nil {
		driver.VehicleType = *input.VehicleType
	}
	if input.PlateNumber != nil {
		driver.PlateNumber = *input.PlateNumber
	}
	if input.Password != nil {
		hashed, hashErr := hashPassword(*input.Password)
		if hashErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}
		driver.Password = hashed
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email already in use"})
			return
		}
		logrus.WithError(err).Error("failed to save driver update")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update driver"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// --- Helpers ---

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// isUniqueViolation detects a unique-constraint failure from either
// Postgres (pq error 23505) or the sqlite dialect used in tests.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// lockForUpdate adds a row lock on dialects that support it. sqlite
// has a single writer and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
