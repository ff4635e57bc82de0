package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
)

func newTestService() *Service {
	return NewService(memory.NewStore(), NewTokenIssuer("test-secret", time.Hour), nil)
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, err := svc.Register(ctx, Registration{Name: "Aline", Email: " Aline@Farm.rw ", Password: "s3cret!!"})
	require.NoError(t, err)
	require.Equal(t, "aline@farm.rw", session.User.Email)
	require.Equal(t, "en", session.User.LanguagePreference)
	require.NotEqual(t, "s3cret!!", session.User.PasswordHash)

	id, err := svc.Tokens().Parse(session.Token)
	require.NoError(t, err)
	require.Equal(t, session.User.ID, id)

	_, err = svc.Register(ctx, Registration{Name: "Dup", Email: "aline@farm.rw", Password: "x"})
	require.ErrorIs(t, err, models.ErrConflict)
	require.EqualError(t, err, "User already exists")

	_, err = svc.Login(ctx, "aline@farm.rw", "wrong")
	require.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@farm.rw", "s3cret!!")
	require.ErrorIs(t, err, models.ErrUnauthorized)

	session, err = svc.Login(ctx, "ALINE@farm.rw", "s3cret!!")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
}

func TestService_UpdateMePasswordChange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	session, err := svc.Register(ctx, Registration{Name: "Eric", Email: "eric@farm.rw", Password: "old-pass"})
	require.NoError(t, err)
	userID := session.User.ID

	_, _, err = svc.UpdateMe(ctx, userID, ProfileUpdate{NewPassword: "new-pass"})
	require.ErrorIs(t, err, models.ErrValidation)

	_, _, err = svc.UpdateMe(ctx, userID, ProfileUpdate{CurrentPassword: "nope", NewPassword: "new-pass"})
	require.ErrorIs(t, err, models.ErrUnauthorized)

	name := " Eric N. "
	user, message, err := svc.UpdateMe(ctx, userID, ProfileUpdate{Name: &name, CurrentPassword: "old-pass", NewPassword: "new-pass"})
	require.NoError(t, err)
	require.Equal(t, "Updated: profile, password", message)
	require.Equal(t, "Eric N.", user.Name)

	_, err = svc.Login(ctx, "eric@farm.rw", "new-pass")
	require.NoError(t, err)

	_, message, err = svc.UpdateMe(ctx, userID, ProfileUpdate{})
	require.NoError(t, err)
	require.Equal(t, "No changes made", message)
}

func TestTokenIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	issuer.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, models.ErrUnauthorized)

	other := NewTokenIssuer("other-secret", time.Hour)
	foreign, err := other.Issue(primitive.NewObjectID())
	require.NoError(t, err)
	_, err = NewTokenIssuer("secret", time.Hour).Parse(foreign)
	require.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = issuer.Parse("not-a-token")
	require.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestHashPassword_RejectsOverlongPasswords(t *testing.T) {
	// "é" is two bytes in UTF-8
	_, err := HashPassword(strings.Repeat("é", 36))
	require.NoError(t, err)

	_, err = HashPassword(strings.Repeat("é", 37))
	require.ErrorIs(t, err, models.ErrValidation)
	require.EqualError(t, err, "Password must be at most 72 bytes")
}
