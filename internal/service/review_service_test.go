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

type ReviewServiceTestSuite struct {
	suite.Suite
	testDB        *testutil.TestDatabase
	reviewService *service.ReviewService

	homemaker *models.User
	customer  *models.User
	listing   *models.Listing
}

func (s *ReviewServiceTestSuite) SetupSuite() {
	require.NoError(s.T(), logger.Init(false))
	s.testDB = testutil.SetupTestDatabase(s.T())

	s.reviewService = service.NewReviewService(
		repository.NewReviewRepository(s.testDB.DB),
		repository.NewListingRepository(s.testDB.DB),
		repository.NewOrderRepository(s.testDB.DB),
	)
}

func (s *ReviewServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *ReviewServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	var err error
	s.homemaker, err = testutil.DefaultHomemaker()
	require.NoError(s.T(), err)
	s.customer, err = testutil.DefaultCustomer()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(s.homemaker).Error)
	require.NoError(s.T(), s.testDB.DB.Create(s.customer).Error)

	s.listing = testutil.CreateTestListing(s.homemaker.ID, "Reviewable", 3000)
	require.NoError(s.T(), s.testDB.DB.Create(s.listing).Error)
}

func (s *ReviewServiceTestSuite) placeOrder() {
	order := testutil.CreateTestOrder(s.listing, s.customer.ID, 1, models.OrderStatusCompleted)
	require.NoError(s.T(), s.testDB.DB.Create(order).Error)
}

func (s *ReviewServiceTestSuite) TestRecipientDerivedFromListingOwner() {
	s.placeOrder()

	review, err := s.reviewService.Create(s.customer.ID, models.RoleCustomer, service.ReviewInput{
		ListingID: s.listing.ID,
		Rating:    5,
		Comment:   "Wonderful",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.homemaker.ID, review.RecipientID, "recipient always comes from the listing owner, never the client")
	assert.Equal(s.T(), s.customer.ID, review.AuthorID)
}

func (s *ReviewServiceTestSuite) TestRejectedWithoutOrderHistory() {
	_, err := s.reviewService.Create(s.customer.ID, models.RoleCustomer, service.ReviewInput{
		ListingID: s.listing.ID,
		Rating:    4,
	})
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
}

func (s *ReviewServiceTestSuite) TestRejectedForNonCustomer() {
	_, err := s.reviewService.Create(s.homemaker.ID, models.RoleHomemaker, service.ReviewInput{
		ListingID: s.listing.ID,
		Rating:    4,
	})
	assert.ErrorIs(s.T(), err, service.ErrForbidden)
}

func (s *ReviewServiceTestSuite) TestRatingBounds() {
	s.placeOrder()

	for _, rating := range []int{0, 6, -1} {
		_, err := s.reviewService.Create(s.customer.ID, models.RoleCustomer, service.ReviewInput{
			ListingID: s.listing.ID,
			Rating:    rating,
		})
		assert.ErrorIs(s.T(), err, service.ErrValidation, "rating %d must be rejected", rating)
	}
}

func (s *ReviewServiceTestSuite) TestSummaryAggregates() {
	s.placeOrder()

	for _, rating := range []int{5, 3} {
		_, err := s.reviewService.Create(s.customer.ID, models.RoleCustomer, service.ReviewInput{
			ListingID: s.listing.ID,
			Rating:    rating,
		})
		require.NoError(s.T(), err)
	}

	summary, err := s.reviewService.SummaryForRecipient(s.homemaker.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), summary.TotalReviews)
	assert.InDelta(s.T(), 4.0, summary.AverageRating, 0.001)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
