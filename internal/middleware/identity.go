package middleware

import (
	"net/http"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the authenticated caller, built once per request by the session gate.
type Identity struct {
	UserID    int64
	Role      domain.UserRole
	SessionID string
	User      *domain.User
}

func (i *Identity) Is(role domain.UserRole) bool {
	return i != nil && i.Role == role
}

func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
	// user_id/role stay available for request logging.
	c.Set("user_id", id.UserID)
	c.Set("role", string(id.Role))
}

func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

// RequireIdentity is CurrentIdentity for handlers mounted behind the session gate.
// It writes a 401 and returns false when no identity is attached.
func RequireIdentity(c *gin.Context) (*Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return nil, false
	}
	return id, true
}
