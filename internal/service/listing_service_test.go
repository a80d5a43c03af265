package service_test

import (
	"testing"

	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/internal/testutil"
	"github.com/hustlx/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ListingServiceTestSuite struct {
	suite.Suite
	testDB         *testutil.TestDatabase
	listingService *service.ListingService

	homemaker *models.User
	customer  *models.User
}

func (s *ListingServiceTestSuite) SetupSuite() {
	require.NoError(s.T(), logger.Init(false))
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.listingService = service.NewListingService(repository.NewListingRepository(s.testDB.DB))
}

func (s *ListingServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *ListingServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	var err error
	s.homemaker, err = testutil.DefaultHomemaker()
	require.NoError(s.T(), err)
	s.customer, err = testutil.DefaultCustomer()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(s.homemaker).Error)
	require.NoError(s.T(), s.testDB.DB.Create(s.customer).Error)
}

func (s *ListingServiceTestSuite) TestCreateRequiresHomemaker() {
	_, err := s.listingService.Create(s.customer.ID, models.RoleCustomer, service.ListingInput{
		Title: "Nope",
		Price: 100,
		Type:  models.ListingTypeService,
	})
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
}

func (s *ListingServiceTestSuite) TestCreateThenGetRoundTrip() {
	created, err := s.listingService.Create(s.homemaker.ID, models.RoleHomemaker, service.ListingInput{
		Title:       "Knitting Lessons",
		Description: "One hour per session",
		Price:       2500,
		Type:        models.ListingTypeService,
		Category:    "crafts",
		Tags:        []string{"knitting", "lessons"},
	})
	require.NoError(s.T(), err)

	got, err := s.listingService.GetByID(created.ID)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), created.ID, got.ID)
	assert.Equal(s.T(), "Knitting Lessons", got.Title)
	assert.Equal(s.T(), int64(2500), got.Price)
	assert.Equal(s.T(), []string{"knitting", "lessons"}, got.Tags)
	assert.Equal(s.T(), models.ListingStatusActive, got.Status)
	assert.False(s.T(), got.CreatedAt.IsZero(), "created_at is server-populated")
}

func (s *ListingServiceTestSuite) TestUpdateByNonOwnerRejected() {
	listing := testutil.CreateTestListing(s.homemaker.ID, "Original", 1000)
	require.NoError(s.T(), s.testDB.DB.Create(listing).Error)

	newTitle := "Hijacked"
	_, err := s.listingService.Update(s.customer.ID, listing.ID, service.ListingUpdate{Title: &newTitle})
	assert.ErrorIs(s.T(), err, service.ErrForbidden)

	var stored models.Listing
	require.NoError(s.T(), s.testDB.DB.First(&stored, "id = ?", listing.ID).Error)
	assert.Equal(s.T(), "Original", stored.Title, "rejected update must leave the row unchanged")
}

func (s *ListingServiceTestSuite) TestDeleteByNonOwnerRejected() {
	listing := testutil.CreateTestListing(s.homemaker.ID, "Keep Me", 1000)
	require.NoError(s.T(), s.testDB.DB.Create(listing).Error)

	err := s.listingService.Delete(s.customer.ID, listing.ID)
	assert.ErrorIs(s.T(), err, service.ErrForbidden)

	var count int64
	s.testDB.DB.Model(&models.Listing{}).Where("id = ?", listing.ID).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *ListingServiceTestSuite) TestOwnerCanUpdateAndDelete() {
	listing := testutil.CreateTestListing(s.homemaker.ID, "Mine", 1000)
	require.NoError(s.T(), s.testDB.DB.Create(listing).Error)

	price := int64(2000)
	updated, err := s.listingService.Update(s.homemaker.ID, listing.ID, service.ListingUpdate{Price: &price})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2000), updated.Price)

	require.NoError(s.T(), s.listingService.Delete(s.homemaker.ID, listing.ID))

	_, err = s.listingService.GetByID(listing.ID)
	assert.ErrorIs(s.T(), err, service.ErrNotFound)
}

func (s *ListingServiceTestSuite) TestSearchFiltersAreConjunctive() {
	mk := func(title, category string, price int64, listingType models.ListingType, status models.ListingStatus) {
		l := testutil.CreateTestListing(s.homemaker.ID, title, price)
		l.Category = category
		l.Type = listingType
		l.Status = status
		require.NoError(s.T(), s.testDB.DB.Create(l).Error)
	}

	mk("Chocolate Cake", "baking", 5000, models.ListingTypeProduct, models.ListingStatusActive)
	mk("Cake Decorating Class", "baking", 8000, models.ListingTypeService, models.ListingStatusActive)
	mk("Chocolate Cookies", "baking", 2000, models.ListingTypeProduct, models.ListingStatusActive)
	mk("Cake Draft", "baking", 5000, models.ListingTypeProduct, models.ListingStatusDraft)

	// Every filter must hold at once: substring AND type AND price range.
	results, err := s.listingService.Search(repository.ListingFilter{
		Query:    "cake",
		Type:     models.ListingTypeProduct,
		MinPrice: 3000,
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), "Chocolate Cake", results[0].Title)
}

func (s *ListingServiceTestSuite) TestSearchExcludesInactive() {
	mk := testutil.CreateTestListing(s.homemaker.ID, "Hidden", 1000)
	mk.Status = models.ListingStatusInactive
	require.NoError(s.T(), s.testDB.DB.Create(mk).Error)

	results, err := s.listingService.Search(repository.ListingFilter{Query: "hidden"})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), results)
}

func TestListingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListingServiceTestSuite))
}
