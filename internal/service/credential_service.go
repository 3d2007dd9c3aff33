package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// Registration describes a new account.
type Registration struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// CredentialService registers users and exchanges credentials for tokens.
type CredentialService struct {
	users  UserGateway
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewCredentialService(users UserGateway, hasher PasswordHasher, tokens TokenIssuer) *CredentialService {
	return &CredentialService{users: users, hasher: hasher, tokens: tokens}
}

// Register hashes the password and stores the user. Without roles the
// account becomes a task owner.
func (s *CredentialService) Register(ctx context.Context, reg Registration) (*model.User, error) {
	user, err := s.newUser(reg)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("[error] register user %q: %v", user.Username, err)
		return nil, wrapError(ErrRegistration, err, "username %q", user.Username)
	}
	log.Printf("[info] user %q registered with roles %v", user.Username, user.RoleNames())
	return user, nil
}

func (s *CredentialService) newUser(reg Registration) (*model.User, error) {
	username := strings.TrimSpace(reg.Username)
	if username == "" {
		return nil, newError(ErrInvalidInput, "username is required")
	}
	if reg.Password == "" {
		return nil, newError(ErrInvalidInput, "password is required")
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, wrapError(ErrRegistration, err, "hash password for %q", username)
	}

	names := reg.Roles
	if len(names) == 0 {
		names = []string{model.RoleTaskOwner}
	}
	seen := make(map[string]bool, len(names))
	roles := make([]model.Role, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		roles = append(roles, model.Role{Name: name})
	}
	if len(roles) == 0 {
		return nil, newError(ErrInvalidInput, "at least one role is required")
	}

	return &model.User{
		Username: username,
		Email:    strings.TrimSpace(reg.Email),
		Password: hash,
		Roles:    roles,
	}, nil
}

// Login verifies the password and issues a token for the username.
func (s *CredentialService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("[warn] login for unknown user %q", username)
		return "", newError(ErrUserNotFound, "username %q", username)
	case err != nil:
		return "", fmt.Errorf("find user %q: %w", username, err)
	}

	if !s.hasher.Compare(user.Password, password) {
		log.Printf("[warn] invalid password for user %q", username)
		return "", newError(ErrInvalidCredentials, "username %q", username)
	}

	token, err := s.tokens.Issue(user.Username, user.RoleNames())
	if err != nil {
		return "", fmt.Errorf("issue token for %q: %w", username, err)
	}
	log.Printf("[info] user %q logged in", username)
	return token, nil
}
