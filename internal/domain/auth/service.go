package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type credential struct {
	email string
	hash  string
	name  string
}

// Service checks one fixed credential per role. This is the demo gate in
// front of the two dashboards, not a user directory.
type Service struct {
	secret   string
	tokenTTL time.Duration
	byRole   map[string]credential
}

type Credentials struct {
	AdminEmail       string
	AdminPassword    string
	EmployeeEmail    string
	EmployeePassword string
}

func New(secret string, tokenTTL time.Duration, creds Credentials) (*Service, error) {
	adminHash, err := HashPassword(creds.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	employeeHash, err := HashPassword(creds.EmployeePassword)
	if err != nil {
		return nil, fmt.Errorf("hash employee password: %w", err)
	}
	return &Service{
		secret:   secret,
		tokenTTL: tokenTTL,
		byRole: map[string]credential{
			RoleAdmin:    {email: creds.AdminEmail, hash: adminHash, name: "Admin"},
			RoleEmployee: {email: creds.EmployeeEmail, hash: employeeHash, name: "John Doe"},
		},
	}, nil
}

// Login validates the role's credential pair and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password, role string) (string, error) {
	cred, ok := s.byRole[role]
	if !ok || cred.email != email {
		return "", ErrInvalidCredentials
	}
	if err := CheckPassword(cred.hash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(s.secret, Claims{Role: role, Name: cred.name}, s.tokenTTL)
}

func (s *Service) Secret() string {
	return s.secret
}
