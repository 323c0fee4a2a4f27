package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jaswdr/faker"
	"golang.org/x/crypto/bcrypt"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/logger"
	"driver_dispatch/internal/models"
)

var fake = faker.New()

var vehicleTypes = []string{
	models.VehicleCar, models.VehicleBike, models.VehicleVan, models.VehicleTruck,
}

var packageTypes = []string{"Documents", "Food", "Electronics", "Furniture", "Groceries"}

// Seeds the store with sample drivers, deliveries, and cash
// collections so the app has data to show without the client-side
// mocks it used to carry.
func main() {
	logger.Setup()
	config.InitDB()

	for i := 0; i < 5; i++ {
		driver := seedDriver()
		seedDeliveries(driver)
		log.Printf("seeded driver %d (%s)", driver.ID, driver.Email)
	}

	log.Println("seeding complete")
}

func seedDriver() models.Driver {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	driver := models.Driver{
		Name:            fake.Person().Name(),
		Email:           fake.Internet().Email(),
		Password:        string(hash),
		PhoneNumber:     fake.Phone().Number(),
		IsOnline:        fake.Bool(),
		IsAvailable:     true,
		VehicleType:     vehicleTypes[fake.IntBetween(0, len(vehicleTypes)-1)],
		PlateNumber:     fmt.Sprintf("%s %d", fake.RandomStringWithLength(3), fake.IntBetween(100, 999)),
		Rating:          fake.Float64(1, 3, 5),
		TotalDeliveries: fake.IntBetween(0, 200),
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		log.Fatalf("failed to seed driver: %v", err)
	}
	return driver
}

func seedDeliveries(driver models.Driver) {
	statuses := []models.DeliveryStatus{
		models.StatusPending,
		models.StatusCompleted,
		models.StatusCompleted,
		models.StatusCancelled,
	}

	for _, status := range statuses {
		delivery := models.Delivery{
			PickupLocation:  fake.Address().Address(),
			DropoffLocation: fake.Address().Address(),
			PackageType:     packageTypes[fake.IntBetween(0, len(packageTypes)-1)],
			EstimatedTime:   fmt.Sprintf("%d mins", fake.IntBetween(10, 90)),
			Status:          status,
			DriverID:        &driver.ID,
		}
		if err := config.DB.Create(&delivery).Error; err != nil {
			log.Fatalf("failed to seed delivery: %v", err)
		}

		// Roughly half the orders are cash on delivery.
		if fake.Bool() {
			seedCollection(delivery, driver, status)
		}
	}
}

func seedCollection(delivery models.Delivery, driver models.Driver, status models.DeliveryStatus) {
	collection := models.CashCollection{
		DeliveryID:    delivery.ID,
		DriverID:      driver.ID,
		Amount:        fake.Float64(2, 5, 120),
		Status:        models.CollectionPending,
		DueDate:       time.Now().Add(time.Duration(fake.IntBetween(-48, 72)) * time.Hour),
		CustomerName:  fake.Person().Name(),
		CustomerPhone: fake.Phone().Number(),
	}
	if status == models.StatusCompleted && fake.Bool() {
		collected := time.Now().Add(-time.Duration(fake.IntBetween(1, 24)) * time.Hour)
		collection.Status = models.CollectionCollected
		collection.CollectedAt = &collected
	}
	if err := config.DB.Create(&collection).Error; err != nil {
		log.Fatalf("failed to seed cash collection: %v", err)
	}
}
