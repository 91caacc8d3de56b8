package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lingua-link/internal/directory"
	"lingua-link/internal/domain"
	"lingua-link/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrRateLimited        = errors.New("rate limited")
)

// ValidationError describe entrada malformada o incompleta del cliente.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("%s: missing %s", e.Message, strings.Join(e.MissingFields, ", "))
	}
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

const avatarGallerySize = 100

// AuthService orquesta signup, signin y onboarding contra el store de
// credenciales y el directorio externo.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	dir     directory.Client
	limiter LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, dir directory.Client, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		logger:  logger,
		users:   users,
		dir:     dir,
		limiter: limiter,
	}
}

type SignupInput struct {
	Email    string
	Password string
	FullName string
}

type OnboardInput struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

// Signup valida los datos, persiste el usuario y refleja la identidad en el
// directorio. La falla del directorio aquí se propaga aunque la fila de
// usuario ya quedó persistida.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	password := input.Password

	var missing []string
	if emailAddr == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if fullName == "" {
		missing = append(missing, "fullName")
	}
	if len(missing) > 0 {
		return domain.User{}, &ValidationError{
			Message:       "All fields are required",
			MissingFields: missing,
		}
	}
	if len(password) < minPasswordLength {
		return domain.User{}, &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	if !emailPattern.MatchString(emailAddr) {
		return domain.User{}, &ValidationError{Message: "Invalid email format"}
	}

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	passwordHash, err := domain.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		PasswordHash: passwordHash,
		FullName:     fullName,
		ProfilePic:   randomAvatarURL(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// El índice único del store decide bajo concurrencia, no el pre-chequeo.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	if err := s.syncDirectory(ctx, user); err != nil {
		s.logger.Error("directory upsert failed after signup",
			zap.Error(err), zap.String("user_id", user.ID))
		return domain.User{}, err
	}

	return user, nil
}

// Signin autentica por email y contraseña. El error es deliberadamente
// uniforme para no distinguir email inexistente de contraseña incorrecta.
func (s *AuthService) Signin(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !user.MatchPassword(password) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Onboard aplica los cinco campos de perfil y marca el usuario como
// onboarded en un solo update. El re-espejo al directorio es best-effort.
func (s *AuthService) Onboard(ctx context.Context, userID string, input OnboardInput) (domain.User, error) {
	fields := map[string]string{
		"fullName":         strings.TrimSpace(input.FullName),
		"bio":              strings.TrimSpace(input.Bio),
		"nativeLanguage":   strings.TrimSpace(input.NativeLanguage),
		"learningLanguage": strings.TrimSpace(input.LearningLanguage),
		"location":         strings.TrimSpace(input.Location),
	}
	var missing []string
	for _, name := range []string{"fullName", "bio", "nativeLanguage", "learningLanguage", "location"} {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.User{}, &ValidationError{
			Message:       "All fields are required",
			MissingFields: missing,
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, repository.ProfileUpdate{
		FullName:         fields["fullName"],
		Bio:              fields["bio"],
		NativeLanguage:   fields["nativeLanguage"],
		LearningLanguage: fields["learningLanguage"],
		Location:         fields["location"],
		IsOnboarded:      true,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := s.syncDirectory(ctx, user); err != nil {
		s.logger.Warn("directory upsert failed after onboarding",
			zap.Error(err), zap.String("user_id", user.ID))
	}

	return user, nil
}

func (s *AuthService) syncDirectory(ctx context.Context, user domain.User) error {
	if s.dir == nil {
		return nil
	}
	return s.dir.Upsert(ctx, directory.Identity{
		ID:    user.ID,
		Name:  user.FullName,
		Image: user.ProfilePic,
	})
}

func randomAvatarURL() string {
	idx := rand.Intn(avatarGallerySize) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginRateLimiter limita la frecuencia de intentos de signin por clave.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type loginRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewLoginRateLimiter crea un rate limiter en memoria.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &loginRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *loginRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}
