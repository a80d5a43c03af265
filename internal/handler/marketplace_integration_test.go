package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustlx/backend/internal/handler"
	"github.com/hustlx/backend/internal/middleware"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/internal/testutil"
	"github.com/hustlx/backend/internal/utils"
	"github.com/hustlx/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret     = "marketplace-test-secret"
	testWebhookSecret = "webhook-test-secret"
)

// MarketplaceIntegrationTestSuite exercises the routed API end to end:
// listings, orders, reviews, the payment webhook and public access rules.
type MarketplaceIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	homemaker *models.User
	customer  *models.User
}

func (s *MarketplaceIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	require.NoError(s.T(), logger.Init(false))

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	listingRepo := repository.NewListingRepository(s.testDB.DB)
	orderRepo := repository.NewOrderRepository(s.testDB.DB)
	reviewRepo := repository.NewReviewRepository(s.testDB.DB)

	userService := service.NewUserService(userRepo)
	listingService := service.NewListingService(listingRepo)
	orderService := service.NewOrderService(orderRepo, listingRepo, nil)
	reviewService := service.NewReviewService(reviewRepo, listingRepo, orderRepo)

	userHandler := handler.NewUserHandler(userService)
	listingHandler := handler.NewListingHandler(listingService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(orderService, testWebhookSecret)

	s.router = gin.New()
	api := s.router.Group("/api")

	public := api.Group("")
	public.Use(middleware.OptionalAuth(testJWTSecret))
	{
		public.GET("/users/:id", userHandler.GetPublicProfile)
		public.GET("/listings", listingHandler.Search)
		public.GET("/listings/:id", listingHandler.GetByID)
		public.GET("/listings/:id/reviews", reviewHandler.ListByListing)
	}

	api.POST("/payments/confirm", paymentHandler.Confirm)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(testJWTSecret))
	{
		protected.POST("/listings", listingHandler.Create)
		protected.PATCH("/listings/:id", listingHandler.Update)
		protected.DELETE("/listings/:id", listingHandler.Delete)
		protected.POST("/orders", orderHandler.Create)
		protected.GET("/orders/:id", orderHandler.GetByID)
		protected.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		protected.POST("/reviews", reviewHandler.Create)
	}
}

func (s *MarketplaceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *MarketplaceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	var err error
	s.homemaker, err = testutil.DefaultHomemaker()
	require.NoError(s.T(), err)
	s.customer, err = testutil.DefaultCustomer()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(s.homemaker).Error)
	require.NoError(s.T(), s.testDB.DB.Create(s.customer).Error)
}

func (s *MarketplaceIntegrationTestSuite) tokenFor(user *models.User) string {
	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	require.NoError(s.T(), err)
	return token
}

func (s *MarketplaceIntegrationTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MarketplaceIntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *MarketplaceIntegrationTestSuite) createListing(price int64) *models.Listing {
	listing := testutil.CreateTestListing(s.homemaker.ID, "Custom Cake", price)
	require.NoError(s.T(), s.testDB.DB.Create(listing).Error)
	return listing
}

// Full lifecycle: order totals 2x5000, webhook pays it, seller completes it,
// buyer cannot cancel afterwards.
func (s *MarketplaceIntegrationTestSuite) TestOrderLifecycleScenario() {
	listing := s.createListing(5000)
	customerToken := s.tokenFor(s.customer)
	homemakerToken := s.tokenFor(s.homemaker)

	// Customer orders qty 2; a forged amount field is ignored.
	w := s.do(http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"listing_id":   listing.ID.String(),
		"quantity":     2,
		"total_amount": 1,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	order := s.decode(w)["order"].(map[string]interface{})
	assert.Equal(s.T(), float64(10000), order["total_amount"], "total must be computed server-side")
	assert.Equal(s.T(), "pending", order["status"])
	orderID := order["id"].(string)

	// Homemaker cannot complete an unpaid order.
	w = s.do(http.MethodPatch, "/api/orders/"+orderID+"/status", homemakerToken,
		map[string]string{"status": "completed"})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	// Neither role may set paid through the status route.
	w = s.do(http.MethodPatch, "/api/orders/"+orderID+"/status", customerToken,
		map[string]string{"status": "paid"})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	// The payment webhook moves it to paid.
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(map[string]string{"order_id": orderID})
	req, _ := http.NewRequest(http.MethodPost, "/api/payments/confirm", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", testWebhookSecret)
	paid := httptest.NewRecorder()
	s.router.ServeHTTP(paid, req)
	require.Equal(s.T(), http.StatusOK, paid.Code, paid.Body.String())

	// Customer cannot complete; homemaker can.
	w = s.do(http.MethodPatch, "/api/orders/"+orderID+"/status", customerToken,
		map[string]string{"status": "completed"})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/api/orders/"+orderID+"/status", homemakerToken,
		map[string]string{"status": "completed"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	// Completed is terminal: the customer can no longer cancel.
	w = s.do(http.MethodPatch, "/api/orders/"+orderID+"/status", customerToken,
		map[string]string{"status": "canceled"})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *MarketplaceIntegrationTestSuite) TestPaymentWebhookRejectsBadSecret() {
	listing := s.createListing(5000)
	order := testutil.CreateTestOrder(listing, s.customer.ID, 1, models.OrderStatusPending)
	require.NoError(s.T(), s.testDB.DB.Create(order).Error)

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(map[string]string{"order_id": order.ID.String()})
	req, _ := http.NewRequest(http.MethodPost, "/api/payments/confirm", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "wrong")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *MarketplaceIntegrationTestSuite) TestPublicListingAccess() {
	listing := s.createListing(4000)

	// No token at all.
	w := s.do(http.MethodGet, "/api/listings/"+listing.ID.String(), "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// A garbage token degrades to anonymous instead of failing the GET.
	w = s.do(http.MethodGet, "/api/listings/"+listing.ID.String(), "garbage.token.here", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *MarketplaceIntegrationTestSuite) TestPublicProfileOmitsPrivateFields() {
	w := s.do(http.MethodGet, "/api/users/"+s.homemaker.ID.String(), "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(s.T(), body, s.homemaker.Email)
	assert.NotContains(s.T(), body, "password")
	assert.NotContains(s.T(), body, "phone")
}

func (s *MarketplaceIntegrationTestSuite) TestListingMutationByNonOwner() {
	listing := s.createListing(4000)
	customerToken := s.tokenFor(s.customer)

	w := s.do(http.MethodPatch, "/api/listings/"+listing.ID.String(), customerToken,
		map[string]string{"title": "Hijacked"})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	var stored models.Listing
	require.NoError(s.T(), s.testDB.DB.First(&stored, "id = ?", listing.ID).Error)
	assert.Equal(s.T(), "Custom Cake", stored.Title)

	w = s.do(http.MethodDelete, "/api/listings/"+listing.ID.String(), customerToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *MarketplaceIntegrationTestSuite) TestListingCreationRequiresAuth() {
	w := s.do(http.MethodPost, "/api/listings", "", map[string]interface{}{
		"title": "No Auth", "price": 100, "type": "service",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *MarketplaceIntegrationTestSuite) TestReviewRecipientIgnoresClientInput() {
	listing := s.createListing(4000)
	order := testutil.CreateTestOrder(listing, s.customer.ID, 1, models.OrderStatusCompleted)
	require.NoError(s.T(), s.testDB.DB.Create(order).Error)

	customerToken := s.tokenFor(s.customer)

	// A forged recipient_id field must be ignored.
	w := s.do(http.MethodPost, "/api/reviews", customerToken, map[string]interface{}{
		"listing_id":   listing.ID.String(),
		"rating":       5,
		"comment":      "great",
		"recipient_id": s.customer.ID.String(),
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	review := s.decode(w)["review"].(map[string]interface{})
	assert.Equal(s.T(), s.homemaker.ID.String(), review["recipient_id"])

	// Reviews are publicly readable.
	w = s.do(http.MethodGet, fmt.Sprintf("/api/listings/%s/reviews", listing.ID), "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestMarketplaceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceIntegrationTestSuite))
}
