// Package bootstrap prepares a fresh store at process start: it makes sure the
// default owner account exists and seeds the crop catalogue.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// CropSeeder seeds the crop catalogue when it is empty.
type CropSeeder interface {
	SeedIfEmpty(ctx context.Context, ownerID primitive.ObjectID) (int, error)
}

// EnsureDefaultOwner finds the account registered under cfg.Email or creates
// it. The returned id is the owner used for requests without a token.
func EnsureDefaultOwner(ctx context.Context, users repository.UserRepository, cfg config.DefaultOwnerConfig, logger *zap.Logger) (primitive.ObjectID, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	user, err := users.FindUserByEmail(ctx, cfg.Email)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return primitive.NilObjectID, fmt.Errorf("look up default owner: %w", err)
	}

	// The default owner cannot log in: its hash matches no password.
	user = &models.User{
		Name:               cfg.Name,
		Email:              cfg.Email,
		PasswordHash:       models.PlaceholderPasswordHash,
		PhoneNumber:        cfg.Phone,
		LanguagePreference: "en",
	}
	if err := users.CreateUser(ctx, user); err != nil {
		// Another instance may have created it in the meantime.
		if errors.Is(err, models.ErrConflict) {
			existing, findErr := users.FindUserByEmail(ctx, cfg.Email)
			if findErr == nil {
				return existing.ID, nil
			}
		}
		return primitive.NilObjectID, fmt.Errorf("create default owner: %w", err)
	}

	logger.Info("default owner created", zap.String("id", user.ID.Hex()), zap.String("email", user.Email))
	return user.ID, nil
}

// Run ensures the default owner and seeds crops for it.
func Run(ctx context.Context, users repository.UserRepository, crops CropSeeder, cfg config.DefaultOwnerConfig, logger *zap.Logger) (primitive.ObjectID, error) {
	ownerID, err := EnsureDefaultOwner(ctx, users, cfg, logger)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := crops.SeedIfEmpty(ctx, ownerID); err != nil {
		return primitive.NilObjectID, fmt.Errorf("seed crops: %w", err)
	}
	return ownerID, nil
}
