package voter

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCredentialsMissing = errors.New("email and password required")
	ErrEmailTaken         = errors.New("email already taken")
	ErrNotFound           = errors.New("voter not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidNationalID  = errors.New("national id must have exactly 8 digits")
	ErrNotInRegistry      = errors.New("national id not found in registry")
	ErrNationalIDTaken    = errors.New("national id already linked to another account")
	ErrAlreadyVerified    = errors.New("identity already verified")
)

var nationalIDPattern = regexp.MustCompile(`^\d{8}$`)

type Service struct {
	repo     Repository
	registry Registry
}

func NewService(repo Repository, registry Registry) *Service {
	return &Service{repo: repo, registry: registry}
}

func (s *Service) Register(ctx context.Context, email, password string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrCredentialsMissing
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleVoter,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Profile, error) {
	p, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) error {
	if role != RoleVoter && role != RoleAdmin {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Lookup checks the format of nationalID and resolves the registered name
// so the voter can confirm it before it is stored.
func (s *Service) Lookup(ctx context.Context, nationalID string) (string, error) {
	nationalID = strings.TrimSpace(nationalID)
	if !nationalIDPattern.MatchString(nationalID) {
		return "", ErrInvalidNationalID
	}
	return s.registry.Lookup(ctx, nationalID)
}

// Verify links nationalID and its registered name to the voter's profile.
func (s *Service) Verify(ctx context.Context, userID, nationalID string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Verified() {
		return nil, ErrAlreadyVerified
	}

	nationalID = strings.TrimSpace(nationalID)
	name, err := s.Lookup(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateIdentity(ctx, userID, nationalID, name); err != nil {
		return nil, err
	}

	p.NationalID = &nationalID
	p.FullName = &name
	return p, nil
}

func (s *Service) IsVerified(ctx context.Context, userID string) (bool, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return p.Verified(), nil
}
