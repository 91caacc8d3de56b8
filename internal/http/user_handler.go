package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingua-link/internal/domain"
	"lingua-link/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios y amistades.
type UserHandler struct {
	logger        *zap.Logger
	friendServ    *service.FriendService
	recommendServ *service.RecommendService
}

func NewUserHandler(logger *zap.Logger, friendServ *service.FriendService, recommendServ *service.RecommendService) *UserHandler {
	return &UserHandler{
		logger:        logger,
		friendServ:    friendServ,
		recommendServ: recommendServ,
	}
}

// GetRecommendedUsers maneja GET /api/users.
func (h *UserHandler) GetRecommendedUsers(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	users, err := h.recommendServ.Recommend(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("recommend users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendedUsers": users})
}

// GetMyFriends maneja GET /api/users/friends.
func (h *UserHandler) GetMyFriends(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	friends, err := h.friendServ.ListFriends(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list friends failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "friends": friends})
}

// SendFriendRequest maneja POST /api/users/friend-request/:id.
func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	recipientID := c.Param("id")

	fr, err := h.friendServ.SendRequest(c.Request.Context(), user.ID, recipientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfRequest):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You can't send a friend request to yourself"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Recipient user not found"})
		case errors.Is(err, service.ErrAlreadyFriends):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You are already friends with this user"})
		case errors.Is(err, service.ErrRequestExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "A friend request already exists between you and this user"})
		default:
			h.logger.Error("send friend request failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "friendRequest": fr})
}

// AcceptFriendRequest maneja PUT /api/users/friend-request/:id/accept.
func (h *UserHandler) AcceptFriendRequest(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	requestID := c.Param("id")

	fr, err := h.friendServ.AcceptRequest(c.Request.Context(), requestID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Friend request not found"})
		case errors.Is(err, service.ErrNotRecipient):
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to accept this request"})
		default:
			h.logger.Error("accept friend request failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "friendRequest": fr})
}

// GetOutgoingFriendRequests maneja GET /api/users/outgoing-friend-requests.
func (h *UserHandler) GetOutgoingFriendRequests(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	outgoing, err := h.friendServ.ListOutgoing(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list outgoing requests failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "outgoingRequests": outgoing})
}

// GetFriendRequests maneja GET /api/users/friend-requests: solicitudes
// pendientes recibidas más las enviadas que ya fueron aceptadas.
func (h *UserHandler) GetFriendRequests(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	incoming, err := h.friendServ.ListIncoming(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list incoming requests failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	accepted, err := h.friendServ.ListAcceptedSent(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list accepted requests failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"incomingRequests": incoming,
		"acceptedRequests": accepted,
	})
}
