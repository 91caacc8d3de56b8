package service

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestTokenServiceIssueParse(t *testing.T) {
	svc := NewTokenService("secret", 7*24*time.Hour, false)

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Subject != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	if got := expires.Sub(issued); got != 7*24*time.Hour {
		t.Fatalf("expected 7 day lifetime, got %v", got)
	}
}

func TestTokenServiceParse_WrongSecret(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, false)
	other := NewTokenService("another", time.Hour, false)

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenServiceParse_Expired(t *testing.T) {
	svc := &TokenService{secret: []byte("secret"), ttl: -time.Minute}

	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenServiceIssue_EmptyUser(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, false)
	if _, err := svc.Issue("  "); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty user id, got %v", err)
	}
}

func TestTokenServiceSessionCookie(t *testing.T) {
	svc := NewTokenService("secret", 7*24*time.Hour, true)

	cookie := svc.SessionCookie("tok")
	if cookie.Name != SessionCookieName || cookie.Value != "tok" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode || !cookie.Secure {
		t.Fatalf("expected httpOnly, sameSite strict and secure, got %+v", cookie)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("expected maxAge 7 days, got %d", cookie.MaxAge)
	}
}

func TestTokenServiceClearCookie_MatchesAttributes(t *testing.T) {
	svc := NewTokenService("secret", 7*24*time.Hour, true)

	set := svc.SessionCookie("tok")
	clear := svc.ClearCookie()
	if clear.Name != set.Name || clear.Path != set.Path {
		t.Fatalf("expected matching name/path for deletion, got %+v vs %+v", clear, set)
	}
	if clear.HttpOnly != set.HttpOnly || clear.SameSite != set.SameSite || clear.Secure != set.Secure {
		t.Fatalf("expected matching attributes for deletion, got %+v vs %+v", clear, set)
	}
	if clear.MaxAge != -1 || clear.Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", clear)
	}
}

func TestTokenServiceSessionCookie_InsecureInDevelopment(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, false)
	if svc.SessionCookie("tok").Secure {
		t.Fatalf("expected secure=false outside production")
	}
}
