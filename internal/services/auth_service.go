package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"lumina/internal/models"
	"lumina/internal/repositories"
	"lumina/pkg/simulate"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const userKeyPrefix = "user:"

// AuthService handles registration, login, and token validation. There is
// no real identity provider behind it: credentials are checked locally and
// login goes through a simulated round-trip delay before completing.
type AuthService struct {
	userRepo   repositories.UserRepository
	snapshots  repositories.SnapshotRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	loginDelay time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, snapshots repositories.SnapshotRepository, jwtSecret string, loginDelay time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		snapshots:  snapshots,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		loginDelay: loginDelay,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// A missing display name defaults to the email's local part, matching the
// storefront's sign-up form.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	if user.Name == "" {
		user.Name = emailLocalPart(user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
// The simulated provider round-trip runs first; cancelling ctx while it is
// pending aborts the login without issuing a token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email is registered.
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	task := simulate.After(ctx, s.loginDelay, func() {})
	<-task.Done()
	if !task.Fired() {
		return "", nil, fmt.Errorf("login cancelled: %w", ctx.Err())
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.saveUserSnapshot(user)
	user.Password = ""
	return tokenString, user, nil
}

// Logout removes the persisted user snapshot for the session.
func (s *AuthService) Logout(userID string) error {
	if err := s.snapshots.Delete(userKeyPrefix + userID); err != nil {
		return fmt.Errorf("failed to remove user snapshot: %w", err)
	}
	return nil
}

// GetProfile returns the user's profile without the password hash.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// saveUserSnapshot persists the identity under the session's user key.
// Written on every identity change, removed on logout.
func (s *AuthService) saveUserSnapshot(user *models.User) {
	snapshot := *user
	snapshot.Password = ""
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Failed to marshal user snapshot for %s: %v", user.ID, err)
		return
	}
	if err := s.snapshots.Save(userKeyPrefix+user.ID, data); err != nil {
		log.Printf("Failed to persist user snapshot for %s: %v", user.ID, err)
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
