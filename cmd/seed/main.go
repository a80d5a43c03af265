package main

import (
	"log"

	"github.com/hustlx/backend/internal/config"
	"github.com/hustlx/backend/internal/database"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/utils"
)

// Seeds a demo homemaker with one active listing and a demo customer, so a
// fresh install has something to browse.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	var existing models.User
	if err := database.DB.Where("email = ?", "amina@example.com").First(&existing).Error; err == nil {
		log.Println("Seed data already present, nothing to do")
		return
	}

	hash, err := utils.HashPassword("ChangeMe123")
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	homemaker := models.User{
		Username:     "amina",
		Email:        "amina@example.com",
		PasswordHash: hash,
		Role:         models.RoleHomemaker,
		FullName:     "Amina K.",
		Bio:          "Home baker specializing in custom cakes.",
		Location:     "Lagos",
	}
	if err := database.DB.Create(&homemaker).Error; err != nil {
		log.Fatal("Failed to create homemaker:", err)
	}

	customer := models.User{
		Username:     "tunde",
		Email:        "tunde@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		FullName:     "Tunde A.",
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		log.Fatal("Failed to create customer:", err)
	}

	listing := models.Listing{
		OwnerID:     homemaker.ID,
		Title:       "Custom Birthday Cake",
		Description: "Two-tier custom cake, flavors of your choice.",
		Price:       15000,
		Type:        models.ListingTypeProduct,
		Category:    "baking",
		Tags:        []string{"cake", "custom", "birthday"},
		Status:      models.ListingStatusActive,
	}
	if err := database.DB.Create(&listing).Error; err != nil {
		log.Fatal("Failed to create listing:", err)
	}

	log.Println("Seed completed:")
	log.Println("   homemaker:", homemaker.Email)
	log.Println("   customer: ", customer.Email)
	log.Println("   listing:  ", listing.Title)
}
