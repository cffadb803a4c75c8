// Package security agrupa el hashing de contraseñas, el parseo de
// credenciales Basic y el principal autenticado.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher oculta el algoritmo de hashing a los servicios.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify devuelve nil solo si password corresponde a hash.
	Verify(password, hash string) error
}

// ErrPasswordMismatch indica que la contraseña no corresponde al hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// BcryptHasher implementa PasswordHasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher crea un hasher; un costo fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify usa la comparacion de tiempo constante de bcrypt.
func (h *BcryptHasher) Verify(password, hash string) error {
	if hash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
