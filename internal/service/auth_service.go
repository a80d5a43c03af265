package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/utils"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterInput carries everything a new account needs. Role is fixed at
// creation and cannot be changed through any profile path.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     models.Role
	FullName string
	Bio      string
	Location string
	Phone    string
}

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, environment string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	start := time.Now()

	logger.Log.Debug("Processing user registration",
		zap.String("username", in.Username),
		zap.String("email", in.Email),
		zap.String("role", string(in.Role)),
	)

	if err := validateRegisterInput(in); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", in.Username),
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(in.Email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Warn("Email already exists", zap.String("email", in.Email))
		return nil, "", ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.GetByUsername(in.Username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", in.Username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Warn("Username already exists", zap.String("username", in.Username))
		return nil, "", ErrUsernameAlreadyExists
	}

	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}
	hashDuration := time.Since(hashStart)

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Role:         in.Role,
		FullName:     in.FullName,
		Bio:          in.Bio,
		Location:     in.Location,
		Phone:        in.Phone,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip between the lookups above and
		// the insert; the unique index is the final arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Log.Warn("Registration lost a duplicate-identity race",
				zap.String("username", in.Username),
				zap.String("email", in.Email),
			)
			if existing, lookupErr := s.userRepo.GetByEmail(in.Email); lookupErr == nil && existing != nil {
				return nil, "", ErrEmailAlreadyExists
			}
			return nil, "", ErrUsernameAlreadyExists
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("username", in.Username),
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, "", err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", in.Username),
		zap.String("role", string(in.Role)),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

// Login authenticates by email. An unknown email and a wrong password are
// deliberately indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	start := time.Now()

	logger.Log.Debug("Processing user login", zap.String("email", email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

func validateRegisterInput(in RegisterInput) error {
	if len(in.Username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	if len(in.Username) > 50 {
		return fmt.Errorf("%w: username must be at most 50 characters", ErrValidation)
	}

	if !emailRegex.MatchString(in.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(in.Email) > 100 {
		return fmt.Errorf("%w: email too long", ErrValidation)
	}

	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if len(in.Password) > 128 {
		return fmt.Errorf("%w: password too long", ErrValidation)
	}

	if !models.ValidRole(in.Role) {
		return fmt.Errorf("%w: role must be homemaker, customer or mentor", ErrValidation)
	}

	return nil
}
