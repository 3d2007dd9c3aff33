package service

import (
	"context"
	"fmt"
	"log"

	"task-manager/internal/model"
)

// DemoAccounts are the built-in users available in development setups.
var DemoAccounts = []Registration{
	{Username: "leonardo", Email: "leonardo@taskmanager.com", Password: "password123", Roles: []string{model.RoleTaskOwner}},
	{Username: "michelangelo", Email: "michelangelo@taskmanager.com", Password: "password123", Roles: []string{model.RoleTaskOwner}},
	{Username: "guest-owns-no-cards", Email: "guest@taskmanager.com", Password: "qrs456", Roles: []string{model.RoleNonOwner}},
}

// Seed registers accounts when the user store is still empty.
func (s *CredentialService) Seed(ctx context.Context, accounts []Registration) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Printf("[info] user store holds %d users, skip seeding", n)
		return nil
	}
	for _, acc := range accounts {
		if _, err := s.Register(ctx, acc); err != nil {
			return err
		}
	}
	return nil
}

// StaticUsers hashes accounts into user records for a fixed user store.
func StaticUsers(hasher PasswordHasher, accounts []Registration) ([]model.User, error) {
	s := &CredentialService{hasher: hasher}
	users := make([]model.User, 0, len(accounts))
	for _, acc := range accounts {
		u, err := s.newUser(acc)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
