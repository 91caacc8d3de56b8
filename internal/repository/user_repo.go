package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lingua-link/internal/domain"
)

// ErrDuplicateEmail indica una violación del índice único sobre users.email.
var ErrDuplicateEmail = errors.New("duplicate email")

// ProfileUpdate agrupa los campos de perfil aplicados durante el onboarding.
type ProfileUpdate struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	IsOnboarded      bool
}

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, id string, fields ProfileUpdate) (domain.User, error)
	ListCandidates(ctx context.Context, excludeIDs []string) ([]domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, profile_pic, bio,
	native_language, learning_language, location, is_onboarded, created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ProfilePic,
		user.Bio,
		user.NativeLanguage,
		user.LearningLanguage,
		user.Location,
		user.IsOnboarded,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, fields ProfileUpdate) (domain.User, error) {
	const query = `
		UPDATE users
		SET full_name = $2,
		    bio = $3,
		    native_language = $4,
		    learning_language = $5,
		    location = $6,
		    is_onboarded = $7,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns + `
	`
	return r.scanUser(r.pool.QueryRow(ctx, query,
		id,
		fields.FullName,
		fields.Bio,
		fields.NativeLanguage,
		fields.LearningLanguage,
		fields.Location,
		fields.IsOnboarded,
	))
}

// ListCandidates devuelve usuarios onboarded fuera del conjunto de exclusión,
// como una sola lectura filtrada ordenada por id.
func (r *PgUserRepository) ListCandidates(ctx context.Context, excludeIDs []string) ([]domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_onboarded
		  AND NOT (id = ANY($1))
		ORDER BY id
	`
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	rows, err := r.pool.Query(ctx, query, excludeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
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
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
