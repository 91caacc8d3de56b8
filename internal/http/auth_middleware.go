package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lingua-link/internal/domain"
	"lingua-link/internal/repository"
	"lingua-link/internal/service"
)

const currentUserKey = "current_user"

// AuthRequired valida el token de sesión de la cookie y carga el usuario
// autenticado en el contexto.
func AuthRequired(tokenServ *service.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenServ == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			c.Abort()
			return
		}

		token, err := c.Cookie(service.SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - No token provided"})
			c.Abort()
			return
		}

		claims, err := tokenServ.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid token"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser obtiene el usuario autenticado desde el contexto.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
