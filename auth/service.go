// Package auth guards the dictionary management surface with a single admin
// credential. The game rooms themselves are open: players are identified by
// the opaque ids the registry hands out.
package auth

import (
	"errors"
	"time"
)

const adminSubject = "admin"

var ErrIncorrectPassword = errors.New("incorrect-password")

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenManager interface {
	Generate(id string, now time.Time) (string, error)
	Verify(token string) (string, error)
}

type service struct {
	adminPasswordHash string
	passwordHasher    PasswordHasher
	tokenManager      TokenManager
}

func NewService(adminPasswordHash string, passwordHasher PasswordHasher, tokenManager TokenManager) *service {
	return &service{
		adminPasswordHash: adminPasswordHash,
		passwordHasher:    passwordHasher,
		tokenManager:      tokenManager,
	}
}

func (as *service) Login(password string, now time.Time) (string, error) {
	match, err := as.passwordHasher.Compare(as.adminPasswordHash, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrIncorrectPassword
	}
	return as.tokenManager.Generate(adminSubject, now)
}

// VerifyToken returns nil only for a valid token carrying the admin subject.
func (as *service) VerifyToken(token string) error {
	id, err := as.tokenManager.Verify(token)
	if err != nil {
		return err
	}
	if id != adminSubject {
		return ErrIncorrectPassword
	}
	return nil
}
