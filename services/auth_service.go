package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"github.com/tracklite/repositories"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration, login and JWT issuance.
type AuthService struct {
	userRepo  *repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: []byte(jwtSecret)}
}

// Register creates a new user account
func (s *AuthService) Register(req dto.RegisterRequest) (models.User, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return models.User{}, errs.NewAlreadyExists(fmt.Sprintf("email %q already registered", req.Email))
	} else if !errs.IsNotFound(err) {
		return models.User{}, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return models.User{}, err
	}

	user.Password = ""
	return user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return dto.AuthResponse{}, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, errors.New("invalid email or password")
	}

	token, expiresAt, err := s.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user.Password = ""
	return dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id string) (models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(userID, email, role string) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, errors.New("JWT secret is not configured")
	}

	// Token expires in 24 hours
	expiresAt := time.Now().Add(24 * time.Hour)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	claims := &dto.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}
