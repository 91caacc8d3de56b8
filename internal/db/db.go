package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lingua-link/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// schema define las tablas del núcleo. Los índices únicos sostienen las
// invariantes de unicidad bajo concurrencia: email único por usuario y a lo
// sumo una solicitud pendiente por par ordenado.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                TEXT PRIMARY KEY,
	email             TEXT NOT NULL,
	password_hash     TEXT NOT NULL,
	full_name         TEXT NOT NULL,
	profile_pic       TEXT NOT NULL DEFAULT '',
	bio               TEXT NOT NULL DEFAULT '',
	native_language   TEXT NOT NULL DEFAULT '',
	learning_language TEXT NOT NULL DEFAULT '',
	location          TEXT NOT NULL DEFAULT '',
	is_onboarded      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email));

CREATE TABLE IF NOT EXISTS friend_requests (
	id         TEXT PRIMARY KEY,
	from_id    TEXT NOT NULL REFERENCES users (id),
	to_id      TEXT NOT NULL REFERENCES users (id),
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS friend_requests_pending_pair_key
	ON friend_requests (from_id, to_id) WHERE status = 'pending';

CREATE INDEX IF NOT EXISTS friend_requests_to_id_idx ON friend_requests (to_id);
`

// EnsureSchema aplica el esquema del núcleo de forma idempotente.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
