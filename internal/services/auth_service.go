package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/repositories"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	validate      *validator.Validate
}

// NewAuthService creates a new AuthService. The access token is short-lived;
// the refresh token lives longer and is signed with its own secret.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		validate:      validator.New(),
	}
}

// RefreshTTL reports the configured refresh token lifetime, so callers
// issuing cookies can match their expiry to the token's.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Signup registers a new user, hashes their password, and saves them to the
// database. The returned user never carries the password hash.
func (s *AuthService) Signup(input models.SignupInput) (*models.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(input.Email); err != nil {
		return nil, apperrors.Internal("failed to check email", err)
	} else if existing != nil {
		return nil, apperrors.Conflict("User already exists")
	}
	if existing, err := s.userRepo.FindByFullname(input.Fullname); err != nil {
		return nil, apperrors.Internal("failed to check fullname", err)
	} else if existing != nil {
		return nil, apperrors.Conflict("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	role := input.Role
	if role == "" {
		role = "user"
	}
	user := &models.User{
		Fullname: input.Fullname,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal("failed to register user", err)
	}

	user.Password = ""
	return user, nil
}

// Login authenticates a user by email and password and issues an access and
// a refresh token bound to {userId, email, role}.
func (s *AuthService) Login(input models.LoginInput) (*models.TokenPair, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.Authentication("Password is incorrect")
	}

	accessToken, err := s.signToken(user, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}
	refreshToken, err := s.signToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh issues a fresh access token from a valid refresh token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", apperrors.Authentication("invalid refresh token")
	}

	userID, _ := claims["user_id"].(string)
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return "", apperrors.NotFound("User does not exist")
	}

	accessToken, err := s.signToken(user, s.jwtSecret, s.accessTTL)
	if err != nil {
		return "", apperrors.Internal("failed to generate access token", err)
	}
	return accessToken, nil
}

// ValidateToken parses and validates an access token, returning the claims
// if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := s.parseToken(tokenString, s.jwtSecret)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, apperrors.Authentication("invalid token")
	}
	return claims, nil
}

func (s *AuthService) signToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(secret)
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
