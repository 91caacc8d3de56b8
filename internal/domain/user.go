package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User representa la identidad de un usuario de la plataforma.
// PasswordHash nunca se serializa hacia clientes.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FullName         string    `json:"fullName"`
	ProfilePic       string    `json:"profilePic,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	NativeLanguage   string    `json:"nativeLanguage,omitempty"`
	LearningLanguage string    `json:"learningLanguage,omitempty"`
	Location         string    `json:"location,omitempty"`
	IsOnboarded      bool      `json:"isOnboarded"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HashPassword genera el hash bcrypt de una contraseña en claro.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// MatchPassword compara una contraseña en claro contra el hash almacenado.
func (u User) MatchPassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
