package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

const (
	ownerKey         = "ownerId"
	authenticatedKey = "authenticated"
)

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	Parse(token string) (primitive.ObjectID, error)
}

// Owner decides whose records a request acts on. A bearer token selects its
// user and a bad token is rejected. Without a token the request falls back to
// the default owner.
func Owner(tokens TokenParser, defaultOwner primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Set(ownerKey, defaultOwner)
			c.Next()
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ownerKey, userID)
		c.Set(authenticatedKey, true)
		c.Next()
	}
}

// RequireUser rejects requests that did not present a valid bearer token.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(authenticatedKey) {
			_ = c.Error(models.UnauthorizedError("Not authorized, no token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnerID returns the owner chosen by Owner.
func OwnerID(c *gin.Context) primitive.ObjectID {
	if id, ok := c.Get(ownerKey); ok {
		if oid, ok := id.(primitive.ObjectID); ok {
			return oid
		}
	}
	return primitive.NilObjectID
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
