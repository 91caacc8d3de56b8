package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName es el nombre de la cookie que transporta el token de sesión.
const SessionCookieName = "jwt"

const defaultSessionTTL = 7 * 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// SessionClaims son los claims firmados dentro del token de sesión.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService emite y valida tokens de sesión sin estado. No hay lista de
// revocación: el logout es únicamente la limpieza de la cookie del cliente.
type TokenService struct {
	secret        []byte
	ttl           time.Duration
	secureCookies bool
}

func NewTokenService(secret string, ttl time.Duration, secureCookies bool) *TokenService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &TokenService{
		secret:        []byte(secret),
		ttl:           ttl,
		secureCookies: secureCookies,
	}
}

// Issue firma un token que liga el userID con una expiración fija.
func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(userID) == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma y expiración y devuelve los claims del token.
func (s *TokenService) Parse(tokenString string) (SessionClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

// SessionCookie arma la cookie de sesión con los mismos atributos que usará
// ClearCookie, para que el borrado sea efectivo en navegadores estrictos.
func (s *TokenService) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.secureCookies,
	}
}

// ClearCookie arma la directiva que elimina la cookie de sesión.
func (s *TokenService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.secureCookies,
	}
}
