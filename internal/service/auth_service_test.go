package service_test

import (
	"testing"
	"time"

	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/internal/testutil"
	"github.com/hustlx/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	authService *service.AuthService
}

func (s *AuthServiceTestSuite) SetupSuite() {
	require.NoError(s.T(), logger.Init(false))
	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(userRepo, "test-secret-key", time.Hour, "development")
}

func (s *AuthServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		Email:    "new@example.com",
		Username: "newuser",
		Password: "SecurePass123",
		Role:     models.RoleHomemaker,
	}
}

func (s *AuthServiceTestSuite) TestRegisterSuccess() {
	user, token, err := s.authService.Register(validRegisterInput())

	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token)
	assert.Equal(s.T(), models.RoleHomemaker, user.Role)
	assert.NotEqual(s.T(), "SecurePass123", user.PasswordHash, "password must be stored hashed")
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmailInsertsNothing() {
	_, _, err := s.authService.Register(validRegisterInput())
	require.NoError(s.T(), err)

	in := validRegisterInput()
	in.Username = "different"
	_, _, err = s.authService.Register(in)
	assert.ErrorIs(s.T(), err, service.ErrEmailAlreadyExists)

	var count int64
	s.testDB.DB.Model(&models.User{}).Count(&count)
	assert.Equal(s.T(), int64(1), count, "duplicate registration must not insert a row")
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateUsernameInsertsNothing() {
	_, _, err := s.authService.Register(validRegisterInput())
	require.NoError(s.T(), err)

	in := validRegisterInput()
	in.Email = "other@example.com"
	_, _, err = s.authService.Register(in)
	assert.ErrorIs(s.T(), err, service.ErrUsernameAlreadyExists)

	var count int64
	s.testDB.DB.Model(&models.User{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

// A registration can lose the race between the duplicate lookups and the
// insert; the unique index then rejects the row and the failure must still
// surface as a conflict, not a raw database error. A soft-deleted account
// reproduces the gap deterministically: both lookups miss it, the index
// does not.
func (s *AuthServiceTestSuite) TestRegisterLosingDuplicateRaceIsAConflict() {
	user, _, err := s.authService.Register(validRegisterInput())
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Delete(user).Error)

	_, _, err = s.authService.Register(validRegisterInput())
	assert.ErrorIs(s.T(), err, service.ErrUsernameAlreadyExists)
}

func (s *AuthServiceTestSuite) TestDuplicateInsertTranslatesToDuplicatedKey() {
	userRepo := repository.NewUserRepository(s.testDB.DB)

	first, err := testutil.CreateTestUser("taken", "taken@example.com", "TakenPass123", models.RoleCustomer)
	require.NoError(s.T(), err)
	require.NoError(s.T(), userRepo.Create(first))

	dup, err := testutil.CreateTestUser("taken", "else@example.com", "TakenPass123", models.RoleCustomer)
	require.NoError(s.T(), err)
	assert.ErrorIs(s.T(), userRepo.Create(dup), gorm.ErrDuplicatedKey)
}

func (s *AuthServiceTestSuite) TestRegisterRejectsUnknownRole() {
	in := validRegisterInput()
	in.Role = "admin"
	_, _, err := s.authService.Register(in)
	assert.ErrorIs(s.T(), err, service.ErrValidation)
}

// Wrong password and unknown email must be externally indistinguishable,
// so login failures cannot be used to enumerate accounts.
func (s *AuthServiceTestSuite) TestLoginFailuresIndistinguishable() {
	_, _, err := s.authService.Register(validRegisterInput())
	require.NoError(s.T(), err)

	_, _, wrongPassErr := s.authService.Login("new@example.com", "WrongPass123")
	_, _, noUserErr := s.authService.Login("ghost@example.com", "WrongPass123")

	assert.ErrorIs(s.T(), wrongPassErr, service.ErrInvalidCredentials)
	assert.ErrorIs(s.T(), noUserErr, service.ErrInvalidCredentials)
	assert.Equal(s.T(), wrongPassErr.Error(), noUserErr.Error())
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	_, _, err := s.authService.Register(validRegisterInput())
	require.NoError(s.T(), err)

	user, token, err := s.authService.Login("new@example.com", "SecurePass123")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token)
	assert.Equal(s.T(), "newuser", user.Username)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
