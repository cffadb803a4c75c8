package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webapp/internal/domain"
	"webapp/internal/security"
	"webapp/internal/service"
)

const (
	principalKey = "principal"
	basicRealm   = `Basic realm="webapp"`
)

// BasicAuthMiddleware valida credenciales Basic y guarda el principal en
// el contexto. Un header mal formado se rechaza sin consultar el store.
func BasicAuthMiddleware(logger *zap.Logger, userServ *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, err := security.ParseBasicAuth(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := userServ.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				unauthorized(c)
				return
			}
			logger.Error("authenticate failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not authenticate"})
			return
		}

		c.Set(principalKey, user)
		c.Request = c.Request.WithContext(security.WithPrincipal(c.Request.Context(), user))
		c.Next()
	}
}

// GetPrincipal obtiene el usuario autenticado desde el contexto.
func GetPrincipal(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(principalKey)
	if !ok {
		return security.PrincipalFrom(c.Request.Context())
	}
	user, ok := val.(domain.User)
	return user, ok
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", basicRealm)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
}
