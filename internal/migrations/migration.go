package migrations

import (
	"log"
	"pos_system/internal/models"
	"pos_system/internal/repository"
	"pos_system/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds the admin account and a starter catalog.
func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	inventoryRepo := repository.NewInventoryRepository(db)
	inventoryService := services.NewInventoryService(inventoryRepo, nil)

	// Check if the admin already exists
	existingUser, err := userService.GetUserByUsername("admin")
	if err == nil && existingUser != nil {
		log.Println("Admin user already exists")
		return nil
	}

	log.Println("Creating default admin user...")
	_, err = userService.CreateUser("admin", "admin@pos.local", "admin123", models.RoleAdmin)
	if err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created successfully")
		log.Println("Username: admin")
		log.Println("Password: admin123")
	}

	log.Println("Creating starter catalog...")
	starter := []struct {
		name  string
		price float64
	}{
		{"Chips", 100},
		{"Soda", 50},
		{"Chapati", 20},
	}
	for _, entry := range starter {
		if _, err := inventoryService.CreateItem(entry.name, entry.price); err != nil {
			log.Printf("Warning: Failed to seed item %s: %v", entry.name, err)
		}
	}

	return nil
}
