package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingua-link/internal/repository"
	"lingua-link/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	tokenServ *service.TokenService,
	users repository.UserRepository,
	authH *AuthHandler,
	userH *UserHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	protected := AuthRequired(tokenServ, users)

	auth := r.Group("/api/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/signin", authH.Signin)
	auth.POST("/logout", authH.Logout)
	auth.POST("/onboarding", protected, authH.Onboard)
	auth.GET("/me", protected, authH.Me)

	usersGroup := r.Group("/api/users", protected)
	usersGroup.GET("", userH.GetRecommendedUsers)
	usersGroup.GET("/friends", userH.GetMyFriends)
	usersGroup.POST("/friend-request/:id", userH.SendFriendRequest)
	usersGroup.PUT("/friend-request/:id/accept", userH.AcceptFriendRequest)
	usersGroup.GET("/outgoing-friend-requests", userH.GetOutgoingFriendRequests)
	usersGroup.GET("/friend-requests", userH.GetFriendRequests)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
