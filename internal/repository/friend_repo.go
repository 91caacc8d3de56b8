package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lingua-link/internal/domain"
)

// ErrDuplicateRequest indica una violación del índice único parcial sobre
// solicitudes pendientes (from_id, to_id).
var ErrDuplicateRequest = errors.New("duplicate friend request")

// FriendRepository define el contrato de persistencia para el grafo de amistades.
type FriendRepository interface {
	Create(ctx context.Context, fr domain.FriendRequest) error
	GetByID(ctx context.Context, id string) (domain.FriendRequest, error)
	Accept(ctx context.Context, id string) (domain.FriendRequest, error)
	HasAccepted(ctx context.Context, a, b string) (bool, error)
	HasPending(ctx context.Context, fromID, toID string) (bool, error)
	ListFriends(ctx context.Context, userID string) ([]domain.User, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	ListOutgoingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListIncomingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListAcceptedSent(ctx context.Context, userID string) ([]domain.FriendRequest, error)
}

// PgFriendRepository implementa FriendRepository usando pgxpool.
type PgFriendRepository struct {
	pool *pgxpool.Pool
}

func NewPgFriendRepository(pool *pgxpool.Pool) *PgFriendRepository {
	return &PgFriendRepository{pool: pool}
}

const friendRequestColumns = `id, from_id, to_id, status, created_at, updated_at`

func (r *PgFriendRepository) Create(ctx context.Context, fr domain.FriendRequest) error {
	const query = `
		INSERT INTO friend_requests (` + friendRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		fr.ID,
		fr.FromID,
		fr.ToID,
		fr.Status,
		fr.CreatedAt,
		fr.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateRequest
	}
	return err
}

func (r *PgFriendRepository) GetByID(ctx context.Context, id string) (domain.FriendRequest, error) {
	const query = `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE id = $1
	`
	return r.scanRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *PgFriendRepository) Accept(ctx context.Context, id string) (domain.FriendRequest, error) {
	const query = `
		UPDATE friend_requests
		SET status = 'accepted', updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + friendRequestColumns + `
	`
	return r.scanRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *PgFriendRepository) HasAccepted(ctx context.Context, a, b string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE status = 'accepted'
			  AND ((from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1))
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&exists)
	return exists, err
}

func (r *PgFriendRepository) HasPending(ctx context.Context, fromID, toID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE status = 'pending' AND from_id = $1 AND to_id = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, fromID, toID).Scan(&exists)
	return exists, err
}

// ListFriends devuelve los usuarios conectados por una arista aceptada en
// cualquier dirección, resueltos en una sola consulta con join.
func (r *PgFriendRepository) ListFriends(ctx context.Context, userID string) ([]domain.User, error) {
	const query = `
		SELECT u.id, u.email, u.password_hash, u.full_name, u.profile_pic, u.bio,
		       u.native_language, u.learning_language, u.location, u.is_onboarded,
		       u.created_at, u.updated_at
		FROM friend_requests fr
		JOIN users u
		  ON u.id = CASE WHEN fr.from_id = $1 THEN fr.to_id ELSE fr.from_id END
		WHERE fr.status = 'accepted'
		  AND (fr.from_id = $1 OR fr.to_id = $1)
		ORDER BY u.id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.FullName,
			&u.ProfilePic,
			&u.Bio,
			&u.NativeLanguage,
			&u.LearningLanguage,
			&u.Location,
			&u.IsOnboarded,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgFriendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT CASE WHEN from_id = $1 THEN to_id ELSE from_id END
		FROM friend_requests
		WHERE status = 'accepted'
		  AND (from_id = $1 OR to_id = $1)
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgFriendRepository) ListOutgoingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	const query = `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE status = 'pending' AND from_id = $1
		ORDER BY created_at
	`
	return r.listRequests(ctx, query, userID)
}

func (r *PgFriendRepository) ListIncomingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	const query = `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE status = 'pending' AND to_id = $1
		ORDER BY created_at
	`
	return r.listRequests(ctx, query, userID)
}

func (r *PgFriendRepository) ListAcceptedSent(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	const query = `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE status = 'accepted' AND from_id = $1
		ORDER BY updated_at
	`
	return r.listRequests(ctx, query, userID)
}

func (r *PgFriendRepository) listRequests(ctx context.Context, query, userID string) ([]domain.FriendRequest, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.FriendRequest
	for rows.Next() {
		fr, err := r.scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, fr)
	}
	return requests, rows.Err()
}

func (r *PgFriendRepository) scanRequest(row pgx.Row) (domain.FriendRequest, error) {
	var fr domain.FriendRequest
	err := row.Scan(
		&fr.ID,
		&fr.FromID,
		&fr.ToID,
		&fr.Status,
		&fr.CreatedAt,
		&fr.UpdatedAt,
	)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	return fr, nil
}
