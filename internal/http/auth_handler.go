package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingua-link/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger    *zap.Logger
	authServ  *service.AuthService
	tokenServ *service.TokenService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, tokenServ *service.TokenService) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		authServ:  authServ,
		tokenServ: tokenServ,
	}
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.authServ.Signup(c.Request.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			resp := gin.H{"message": vErr.Message}
			if len(vErr.MissingFields) > 0 {
				resp["missingFields"] = vErr.MissingFields
			}
			c.JSON(http.StatusBadRequest, resp)
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use, please use a different one"})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	token, err := h.tokenServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	http.SetCookie(c.Writer, h.tokenServ.SessionCookie(token))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
		"message": "User created successfully",
	})
}

// Signin maneja POST /api/auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signin request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.authServ.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many attempts, try again later"})
		default:
			h.logger.Error("signin failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	token, err := h.tokenServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	http.SetCookie(c.Writer, h.tokenServ.SessionCookie(token))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"message": "User signed in successfully",
	})
}

// Logout maneja POST /api/auth/logout. Es idempotente: limpiar sin sesión
// activa no es un error.
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.tokenServ.ClearCookie())
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// Onboard maneja POST /api/auth/onboarding.
func (h *AuthHandler) Onboard(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req struct {
		FullName         string `json:"fullName"`
		Bio              string `json:"bio"`
		NativeLanguage   string `json:"nativeLanguage"`
		LearningLanguage string `json:"learningLanguage"`
		Location         string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid onboarding request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.authServ.Onboard(c.Request.Context(), user.ID, service.OnboardInput{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			resp := gin.H{"message": vErr.Message}
			if len(vErr.MissingFields) > 0 {
				resp["missingFields"] = vErr.MissingFields
			}
			c.JSON(http.StatusBadRequest, resp)
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.logger.Error("onboarding failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// Me maneja GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
