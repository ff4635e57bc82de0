package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	found, err := s.findOne(ctx, usersColl, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("User")
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	found, err := s.findOne(ctx, usersColl, bson.M{"_id": id}, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("User")
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if _, err := s.db.Collection(usersColl).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ConflictError("User already exists")
		}
		return err
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.PhoneNumber != nil {
		set["phoneNumber"] = *patch.PhoneNumber
	}
	if patch.LanguagePreference != nil {
		set["languagePreference"] = *patch.LanguagePreference
	}
	if patch.PasswordHash != nil {
		set["passwordHash"] = *patch.PasswordHash
	}

	var user models.User
	found, err := s.update(ctx, usersColl, bson.M{"_id": id}, set, nil, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("User")
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.find(ctx, usersColl, bson.M{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}
