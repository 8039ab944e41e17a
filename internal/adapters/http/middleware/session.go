package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
)

// ContextKeyUser is the gin context key of the signed in user.
const ContextKeyUser = "user"

// SessionSource reports the held session.
type SessionSource interface {
	Session() (domain.Session, bool)
}

// RequireSession stops the request with 401 and a login redirect when no
// session is held. Otherwise the user is stored for handlers and the
// context logger.
func RequireSession(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessions.Session()
		if !ok {
			dto.Abort(c, dto.ErrorCodeUnauthorized, app.MsgSessionExpired)
			return
		}

		c.Set(ContextKeyUser, s.User)
		c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), s.User.ID))
		c.Next()
	}
}

// RequireRole stops the request with 403 unless the user stored by
// RequireSession has role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			dto.Abort(c, dto.ErrorCodeUnauthorized, app.MsgSessionExpired)
			return
		}

		if user.Role != role {
			dto.Abort(c, dto.ErrorCodeForbidden, "insufficient permissions: role "+role+" required")
			return
		}

		c.Next()
	}
}

// GetUser returns the user stored by RequireSession.
func GetUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return domain.User{}, false
	}

	user, ok := v.(domain.User)

	return user, ok
}
