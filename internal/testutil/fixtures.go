package testutil

import (
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/utils"
)

// CreateTestUser builds a user with a properly hashed password.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// DefaultHomemaker returns a ready-to-insert seller account.
func DefaultHomemaker() (*models.User, error) {
	return CreateTestUser("maker", "maker@example.com", "MakerPass123", models.RoleHomemaker)
}

// DefaultCustomer returns a ready-to-insert buyer account.
func DefaultCustomer() (*models.User, error) {
	return CreateTestUser("buyer", "buyer@example.com", "BuyerPass123", models.RoleCustomer)
}

// CreateTestListing builds an active listing owned by ownerID.
func CreateTestListing(ownerID uuid.UUID, title string, price int64) *models.Listing {
	return &models.Listing{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: "test listing",
		Price:       price,
		Type:        models.ListingTypeService,
		Category:    "testing",
		Tags:        []string{"test"},
		Status:      models.ListingStatusActive,
	}
}

// CreateTestOrder builds an order in the given status with a computed total.
func CreateTestOrder(listing *models.Listing, customerID uuid.UUID, quantity int, status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:          uuid.New(),
		ListingID:   listing.ID,
		CustomerID:  customerID,
		HomemakerID: listing.OwnerID,
		Status:      status,
		Quantity:    quantity,
		TotalAmount: listing.Price * int64(quantity),
	}
}
