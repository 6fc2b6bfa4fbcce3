package transport

import (
	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
)

const currentUserKey = "current_user"

// Authenticator resolves bearer tokens to stored users. The role is read from
// storage on every request so role changes apply to live tokens.
type Authenticator struct {
	issuer *auth.Issuer
	users  storage.UserStorage
}

func NewAuthenticator(issuer *auth.Issuer, users storage.UserStorage) *Authenticator {
	return &Authenticator{issuer: issuer, users: users}
}

func (a *Authenticator) resolve(c *gin.Context) (*storage.User, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, "missing bearer token"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "malformed authorization header"
	}

	claims, err := a.issuer.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, "invalid token"
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, "invalid token"
	}
	user, err := a.users.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logging.Log.Errorf("AUTH: failed to load user %d: %v", id, err)
		}
		return nil, "user no longer exists"
	}
	return user, ""
}

// Required rejects requests without a valid token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, reason := a.resolve(c)
		if user == nil {
			logging.Log.Debugf("AUTH: rejected %s: %s", c.Request.URL.Path, reason)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Failure(reason))
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// Optional attaches the user when a valid token is present and never rejects.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := a.resolve(c); user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireRole must run after Required.
func RequireRole(roles ...storage.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Failure("authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		logging.Log.Warnf("AUTH: user %s (%s) denied on %s", user.Username, user.Role, c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusForbidden, models.Failure("insufficient permissions"))
	}
}

func CurrentUser(c *gin.Context) (*storage.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*storage.User)
	return user, ok && user != nil
}

// CurrentActor is the zero Actor for anonymous requests.
func CurrentActor(c *gin.Context) competition.Actor {
	user, ok := CurrentUser(c)
	if !ok {
		return competition.Actor{}
	}
	return competition.ActorFrom(user)
}
