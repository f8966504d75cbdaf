package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "storefront/common/errors"
	"storefront/identifier"
	"storefront/models"
	"storefront/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login. Some imported accounts still
// carry plaintext passwords; those are re-hashed transparently on the first
// successful login.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *apperrors.Error)
	Login(ctx context.Context, email, password string) (string, *models.User, *apperrors.Error)
}

type authServiceImpl struct {
	users     repository.UserRepository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *apperrors.Error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.New(http.StatusConflict, "A user with this email already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, apperrors.NewPersistence("Registration failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewPersistence("Registration failed", err)
	}

	user := &models.User{
		ID:           identifier.NewID(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		RegisteredAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.NewPersistence("Registration failed", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *models.User, *apperrors.Error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.New(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		s.logger.Error("Failed to load user for login", zap.Error(err))
		return "", nil, apperrors.NewPersistence("Login failed", err)
	}

	if isBcryptHash(user.PasswordHash) {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", nil, apperrors.New(http.StatusUnauthorized, "Invalid email or password", nil)
		}
	} else {
		// Legacy plaintext credential: verify directly, then upgrade it.
		if user.PasswordHash != password {
			return "", nil, apperrors.New(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		if hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); hashErr == nil {
			if updErr := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); updErr != nil {
				s.logger.Warn("Failed to upgrade legacy password hash", zap.Error(updErr))
			} else {
				user.PasswordHash = string(hash)
			}
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, apperrors.NewPersistence("Login failed", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *authServiceImpl) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
