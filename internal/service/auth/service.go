// Package auth registers accounts, checks passwords and issues bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

const (
	bcryptCost      = 10
	defaultLanguage = "en"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Session is a user together with a freshly issued token.
type Session struct {
	User  *models.User
	Token string
}

// Registration is the input to Register.
type Registration struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// ProfileUpdate is the input to UpdateMe. A password change needs both
// passwords.
type ProfileUpdate struct {
	Name               *string
	PhoneNumber        *string
	LanguagePreference *string
	CurrentPassword    string
	NewPassword        string
}

// Service handles account operations.
type Service struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(users repository.UserRepository, tokens *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Tokens exposes the issuer so the HTTP layer can verify bearer tokens.
func (s *Service) Tokens() *TokenIssuer { return s.tokens }

func (s *Service) Register(ctx context.Context, in Registration) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, models.ConflictError("User already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:               strings.TrimSpace(in.Name),
		Email:              email,
		PasswordHash:       hash,
		PhoneNumber:        strings.TrimSpace(in.PhoneNumber),
		LanguagePreference: defaultLanguage,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("id", user.ID.Hex()))
	return s.session(user)
}

// Login checks the email and password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.UnauthorizedError("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, models.UnauthorizedError("Invalid email or password")
	}
	return s.session(user)
}

func (s *Service) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

// UpdateMe applies profile changes and an optional password change. The
// returned message lists what changed.
func (s *Service) UpdateMe(ctx context.Context, userID primitive.ObjectID, in ProfileUpdate) (*models.User, string, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	var patch models.UserPatch
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			patch.Name = &name
		}
	}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		patch.PhoneNumber = &phone
	}
	patch.LanguagePreference = in.LanguagePreference

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, "", models.ValidationError("Current password is required to change password")
		}
		if !CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return nil, "", models.UnauthorizedError("Current password is incorrect")
		}
		hash, err := HashPassword(in.NewPassword)
		if err != nil {
			return nil, "", err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.users.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, "", err
	}

	var changed []string
	if in.Name != nil {
		changed = append(changed, "profile")
	}
	if in.NewPassword != "" {
		changed = append(changed, "password")
	}
	message := "No changes made"
	if len(changed) > 0 {
		message = "Updated: " + strings.Join(changed, ", ")
	}
	return updated, message, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// HashPassword hashes a plain password with bcrypt. Passwords longer than
// MaxPasswordBytes are a validation error.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", models.ValidationError("Password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
