package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lingua-link/internal/domain"
	"lingua-link/internal/repository"
)

var (
	ErrSelfRequest     = errors.New("cannot send a friend request to yourself")
	ErrRequestExists   = errors.New("friend request already exists")
	ErrAlreadyFriends  = errors.New("users are already friends")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrNotRecipient    = errors.New("acting user is not the request recipient")
)

// FriendService mantiene las invariantes del grafo de amistades: a lo sumo
// una solicitud pendiente por par ordenado y aceptación simétrica.
type FriendService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	friends repository.FriendRepository
}

func NewFriendService(logger *zap.Logger, users repository.UserRepository, friends repository.FriendRepository) *FriendService {
	return &FriendService{
		logger:  logger,
		users:   users,
		friends: friends,
	}
}

// SendRequest crea una arista pendiente de fromID hacia toID.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID string) (domain.FriendRequest, error) {
	if fromID == toID {
		return domain.FriendRequest{}, ErrSelfRequest
	}

	if _, err := s.users.GetByID(ctx, toID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, ErrUserNotFound
		}
		return domain.FriendRequest{}, err
	}

	accepted, err := s.friends.HasAccepted(ctx, fromID, toID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if accepted {
		return domain.FriendRequest{}, ErrAlreadyFriends
	}

	pending, err := s.friends.HasPending(ctx, fromID, toID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if pending {
		return domain.FriendRequest{}, ErrRequestExists
	}

	now := time.Now().UTC()
	fr := domain.FriendRequest{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Status:    domain.FriendRequestPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.friends.Create(ctx, fr); err != nil {
		// El índice único parcial del store resuelve la carrera entre envíos
		// concurrentes del mismo par ordenado.
		if errors.Is(err, repository.ErrDuplicateRequest) {
			return domain.FriendRequest{}, ErrRequestExists
		}
		return domain.FriendRequest{}, err
	}
	return fr, nil
}

// AcceptRequest transiciona pending → accepted. Solo el destinatario puede aceptar.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, actingUserID string) (domain.FriendRequest, error) {
	fr, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, ErrRequestNotFound
		}
		return domain.FriendRequest{}, err
	}
	if fr.ToID != actingUserID {
		return domain.FriendRequest{}, ErrNotRecipient
	}
	if fr.Status != domain.FriendRequestPending {
		return domain.FriendRequest{}, ErrRequestNotFound
	}

	accepted, err := s.friends.Accept(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, ErrRequestNotFound
		}
		return domain.FriendRequest{}, err
	}
	return accepted, nil
}

// ListFriends devuelve los usuarios conectados por aristas aceptadas en
// cualquier dirección.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]domain.User, error) {
	return s.friends.ListFriends(ctx, userID)
}

// ListOutgoing devuelve las solicitudes pendientes enviadas por el usuario.
func (s *FriendService) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.friends.ListOutgoingPending(ctx, userID)
}

// ListIncoming devuelve las solicitudes pendientes recibidas por el usuario.
func (s *FriendService) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.friends.ListIncomingPending(ctx, userID)
}

// ListAcceptedSent devuelve las solicitudes enviadas por el usuario que ya
// fueron aceptadas (vista de notificaciones).
func (s *FriendService) ListAcceptedSent(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.friends.ListAcceptedSent(ctx, userID)
}
