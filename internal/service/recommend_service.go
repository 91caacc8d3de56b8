package service

import (
	"context"

	"lingua-link/internal/domain"
	"lingua-link/internal/repository"
)

// RecommendService computa el conjunto de usuarios sugeribles como nuevas
// conexiones. El resultado se recalcula en cada llamada; no hay caché.
type RecommendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
}

func NewRecommendService(users repository.UserRepository, friends repository.FriendRepository) *RecommendService {
	return &RecommendService{
		users:   users,
		friends: friends,
	}
}

// Recommend devuelve todos los usuarios onboarded menos el propio usuario,
// sus amigos y los destinatarios de sus solicitudes pendientes, ordenados
// por id. La exclusión se resuelve en una sola lectura filtrada del store.
func (s *RecommendService) Recommend(ctx context.Context, userID string) ([]domain.User, error) {
	friendIDs, err := s.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.friends.ListOutgoingPending(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := make([]string, 0, len(friendIDs)+len(outgoing)+1)
	exclude = append(exclude, userID)
	exclude = append(exclude, friendIDs...)
	for _, fr := range outgoing {
		exclude = append(exclude, fr.ToID)
	}

	return s.users.ListCandidates(ctx, exclude)
}
