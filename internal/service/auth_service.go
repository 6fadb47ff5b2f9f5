package service

import (
	"context"
	"errors"
	"strings"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

// AuthService registers and authenticates users and issues session tokens.
type AuthService struct {
	store    *repository.Store
	issuer   *jwt.Issuer
	validate *validator.Validate
}

func NewAuthService(store *repository.Store, issuer *jwt.Issuer) *AuthService {
	return &AuthService{store: store, issuer: issuer, validate: validator.New()}
}

// Register creates the account and returns it with a fresh session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Profile, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Var(in.Email, "required,email"); err != nil {
		return nil, "", apperr.Validation("Invalid email")
	}
	if weakPassword(in.Password) {
		return nil, "", apperr.Validation("Password is weak")
	}
	if in.Username == "" {
		return nil, "", apperr.Validation("Username is required")
	}

	// The two lookups and the insert are not atomic; the unique indexes catch
	// the remaining race and it surfaces as a conflict below.
	if _, err := s.store.Users().FindByUsername(ctx, in.Username); err == nil {
		return nil, "", apperr.Conflict("Username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.Unexpected(err)
	}
	if _, err := s.store.Users().FindByEmail(ctx, in.Email); err == nil {
		return nil, "", apperr.Conflict("Email is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.Unexpected(err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     in.Username,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("Username or email is already taken")
		}
		return nil, "", apperr.Unexpected(err)
	}

	token, err := s.issuer.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperr.Unexpected(err)
	}
	return &Profile{User: *user, Followers: []string{}, Following: []string{}, LikedPosts: []string{}}, token, nil
}

// Login verifies the credentials. Unknown users and wrong passwords share one
// message so the response does not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Profile, string, error) {
	user, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.NotFound("Wrong Username or Password")
	}
	if err != nil {
		return nil, "", apperr.Unexpected(err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, "", apperr.Auth("Wrong Username or Password")
	}

	token, err := s.issuer.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperr.Unexpected(err)
	}
	profile, err := loadProfile(ctx, s.store, user)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// Authenticate resolves a session token to a user ID.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", apperr.Auth("Unauthorized: No Token Provided")
	}
	userID, err := s.issuer.ParseToken(token)
	if errors.Is(err, jwt.ErrExpiredToken) {
		return "", apperr.Auth("Unauthorized: Token Expired")
	}
	if err != nil {
		return "", apperr.Auth("Unauthorized: Invalid Token")
	}
	return userID, nil
}

// Me builds the profile of a user the session has already loaded.
func (s *AuthService) Me(ctx context.Context, user *models.User) (*Profile, error) {
	return loadProfile(ctx, s.store, user)
}
