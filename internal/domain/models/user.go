package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns farm records.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"passwordHash,omitempty" json:"-"`
	PhoneNumber        string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	LanguagePreference string             `bson:"languagePreference" json:"languagePreference"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlaceholderPasswordHash marks the seeded default owner. It is not a bcrypt
// hash, so no password matches it.
const PlaceholderPasswordHash = "dummy-hash"

// Placeholder reports whether u is the seeded default owner rather than a
// registered account.
func (u User) Placeholder() bool {
	return u.PasswordHash == PlaceholderPasswordHash
}

// UserPatch lists profile fields that may change.
type UserPatch struct {
	Name               *string
	PhoneNumber        *string
	LanguagePreference *string
	PasswordHash       *string
}
